package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/catshell/catshell/core"
	"github.com/catshell/catshell/core/logger"
)

var runLogPath string

// runCmd starts the shell on the local terminal.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the shell interactively on the local terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

func runShell(cmd *cobra.Command) error {
	cmd.SilenceUsage = true

	configuration, err := loadConfig()
	if err != nil {
		return err
	}

	sessionLog := logger.Discard().Sessionless()
	if runLogPath != "" {
		logFd, err := os.OpenFile(runLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		defer logFd.Close()
		sessionLog = logger.NewJSONLinesRecorder(logFd).NewSession()
	}

	fi, _ := os.Stdin.Stat()
	isTerminal := fi != nil && fi.Mode()&os.ModeCharDevice != 0

	shell, err := core.NewShell(core.ShellOptions{
		Prompt:      color.New(color.FgGreen).Sprint(configuration.Prompt),
		HistorySize: configuration.HistorySize,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		IsTerminal:  isTerminal,
		Log:         sessionLog,
	})
	if err != nil {
		return err
	}
	defer shell.Close()

	shell.Greet(configuration.Motd)
	return shell.Run()
}

func init() {
	runCmd.Flags().StringVar(&runLogPath, "log", "", "append JSON event logs to this file")
	rootCmd.AddCommand(runCmd)
}
