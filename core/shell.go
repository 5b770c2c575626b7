package core

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/catshell/catshell/core/logger"
)

// DefaultPrompt is used when the configuration does not set one. The
// escapes \u, \h, \w and \$ expand to the username, hostname, working
// directory and privilege marker.
const DefaultPrompt = "catshell> "

// ShellOptions configures one interactive session.
type ShellOptions struct {
	// Prompt is the prompt template; empty means DefaultPrompt.
	Prompt string
	// HistorySize is the ring capacity; values below one fall back to
	// DefaultHistorySize.
	HistorySize int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal tells the line editor whether it may emit control
	// sequences.
	IsTerminal bool
	// Width reports the terminal width, if known.
	Width func() int

	// Log receives structured session events. Nil discards them.
	Log *logger.SessionLogger
}

// Shell is the read-eval-print driver. It owns the history ring and the
// executor for the lifetime of one session and runs on a single goroutine;
// concurrency exists only at the OS-process level between the shell and its
// children.
type Shell struct {
	History  *History
	Executor *Executor
	Readline *readline.Instance

	prompt   string
	username string
	hostname string
	log      *logger.SessionLogger
	toClose  listCloser
}

// NewShell builds a session around the given I/O. Close releases the line
// editor when the session is over.
func NewShell(opts ShellOptions) (*Shell, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(opts.Stdin),
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
		FuncIsTerminal: func() bool {
			return opts.IsTerminal
		},
	}
	if opts.Width != nil {
		cfg.FuncGetWidth = opts.Width
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	shell := &Shell{
		History: NewHistory(opts.HistorySize),
		Executor: &Executor{
			Stdin:  opts.Stdin,
			Stdout: opts.Stdout,
			Stderr: opts.Stderr,
		},
		Readline: rl,
		prompt:   prompt,
		log:      opts.Log,
	}
	shell.toClose = append(shell.toClose, rl)

	if u, err := user.Current(); err == nil {
		shell.username = u.Username
	}
	shell.hostname, _ = os.Hostname()

	return shell, nil
}

// Prompt expands the prompt template for the current iteration.
func (s *Shell) Prompt() string {
	prompt := s.prompt
	prompt = strings.ReplaceAll(prompt, `\u`, s.username)
	prompt = strings.ReplaceAll(prompt, `\h`, s.hostname)

	if strings.Contains(prompt, `\w`) {
		pwd, _ := os.Getwd()
		if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(pwd, home) {
			pwd = "~" + strings.TrimPrefix(pwd, home)
		}
		prompt = strings.ReplaceAll(prompt, `\w`, pwd)
	}

	if os.Geteuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return prompt
}

// Run reads and interprets lines until input closes, the exit builtin runs,
// or process plumbing fails. Foreground commands block the loop; the next
// prompt is not printed until they finish.
func (s *Shell) Run() error {
	for {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			return err
		}

		outcome, err := s.Interpret(line)
		if err != nil {
			return err
		}
		if outcome == Terminate {
			return nil
		}
	}
}

// Interpret runs one raw input line: tokenize, dispatch, then record the
// raw text for every non-terminating outcome. Recall lines ("!N") record
// the recalled text rather than themselves.
func (s *Shell) Interpret(line string) (Outcome, error) {
	argv, background := Tokenize(line)
	if len(argv) == 0 {
		// A lone "&" yields no tokens but is not blank; Record applies the
		// shared whitespace guard either way.
		s.History.Record(line)
		return Success, nil
	}

	if strings.HasPrefix(argv[0], "!") {
		return s.Recall(argv[0])
	}

	outcome, err := s.Dispatch(argv, background)
	if err != nil {
		return outcome, err
	}
	if outcome != Terminate {
		s.History.Record(line)
	}
	s.logCommand(line, argv, background, outcome)
	return outcome, nil
}

// Dispatch consumes one execution request: builtins first, then the PATH.
func (s *Shell) Dispatch(argv []string, background bool) (Outcome, error) {
	if len(argv) == 0 {
		return Success, nil
	}
	if builtin, ok := AllBuiltins[argv[0]]; ok {
		return builtin.Main(s, argv), nil
	}
	return s.Executor.Execute(argv, background)
}

func (s *Shell) Stdout() io.Writer {
	return s.Executor.Stdout
}

func (s *Shell) Stderr() io.Writer {
	return s.Executor.Stderr
}

func (s *Shell) Close() error {
	return s.toClose.Close()
}

func (s *Shell) logCommand(raw string, argv []string, background bool, outcome Outcome) {
	if s.log == nil {
		return
	}
	s.log.RecordEvent(logger.Event{
		Command: &logger.Command{
			Raw:        raw,
			Argv:       argv,
			Background: background,
			Outcome:    outcome.String(),
		},
	})
}

func (s *Shell) logRecallMiss(token string) {
	if s.log == nil {
		return
	}
	s.log.RecordEvent(logger.Event{
		RecallMiss: &logger.RecallMiss{Token: token},
	})
}

// Greet writes the message of the day, if any.
func (s *Shell) Greet(motd string) {
	if motd != "" {
		fmt.Fprintln(s.Stdout(), motd)
	}
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
