package cmd

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/catshell/catshell/core/config"
)

var cfgPath string

// loadConfig returns the configuration from --config, or the built-in
// defaults when no config file exists. The interactive shell needs no
// configuration to run.
func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(afero.NewOsFs(), cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return configuration, err
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "catshell",
	Short: "An interactive command shell with bang-style history recall.",
	Long: `An interactive command shell that dispatches commands to external
programs, supports background execution with a trailing &, and keeps a
fixed-size command history that can be replayed with !N.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
