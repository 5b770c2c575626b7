package core

import (
	"fmt"

	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds every registered shell builtin keyed by name. Builtins
// are reserved words: they shadow any external program of the same name and
// run without spawning a process.
var AllBuiltins = make(map[string]Builtin)

type Builtin interface {
	Main(s *Shell, args []string) Outcome
}

type BuiltinFunc func(s *Shell, args []string) Outcome

func (f BuiltinFunc) Main(s *Shell, args []string) Outcome {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// Exit requests a cooperative shutdown. The driver owns process lifetime,
// so the builtin only reports Terminate and the loop obeys it.
func Exit(s *Shell, args []string) Outcome {
	return Terminate
}

// ShowHistory prints the surviving history entries oldest first, each as
// "<id> <text> ", with a single newline after the whole listing.
func ShowHistory(s *Shell, args []string) Outcome {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: history [-c]")
		fmt.Fprintln(w, "Display or clear the history list.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		return Success
	}

	if *clear {
		s.History.Clear()
		return Success
	}

	w := s.Stdout()
	for _, entry := range s.History.Enumerate() {
		fmt.Fprintf(w, "%d %s ", entry.ID, entry.Text)
	}
	fmt.Fprintln(w)
	return Success
}

func init() {
	AllBuiltins["exit"] = BuiltinFunc(Exit)
	AllBuiltins["history"] = BuiltinFunc(ShowHistory)
}
