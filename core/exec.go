package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
)

// Outcome is the result of dispatching one command. It is deliberately
// distinct from the child's raw exit code, which cannot tell "program not
// found" apart from "program ran and failed".
type Outcome int

const (
	// Success means the command completed with a zero exit status, or was a
	// no-op (blank line, builtin that ran cleanly).
	Success Outcome = iota
	// ProgramNotFound means the program could not be resolved on the PATH.
	ProgramNotFound
	// RuntimeFailure means the program ran and exited non-zero. Only
	// reported for foreground commands.
	RuntimeFailure
	// Dispatched means a background command was started without waiting.
	Dispatched
	// EventNotFound means a history recall named an ID that was never
	// issued or has been overwritten.
	EventNotFound
	// Terminate means the exit builtin ran. The driver must obey it
	// unconditionally; the executor never ends the process itself.
	Terminate
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case ProgramNotFound:
		return "program_not_found"
	case RuntimeFailure:
		return "runtime_failure"
	case Dispatched:
		return "dispatched"
	case EventNotFound:
		return "event_not_found"
	case Terminate:
		return "terminate"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Executor spawns external processes on behalf of the shell. It owns the
// child handle only until the child is awaited (foreground) or handed to the
// reaper goroutine (background).
type Executor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Execute resolves argv[0] on the PATH and runs it with argv as its full
// argument list, verbatim. Foreground commands block until the child exits;
// background commands return Dispatched immediately and are reaped
// asynchronously.
//
// A non-nil error means process plumbing itself failed (exhausted OS
// resources, not a bad command) and the session should end with a
// diagnostic.
func (e *Executor) Execute(argv []string, background bool) (Outcome, error) {
	if len(argv) == 0 {
		return Success, nil
	}

	path, err := exec.LookPath(argv[0])
	switch {
	case err == nil:
	case background:
		// Nothing waits on a background command, so resolution failures
		// surface later or not at all.
		return Dispatched, nil
	case errors.Is(err, fs.ErrPermission):
		fmt.Fprintf(e.Stdout, "%s: permission denied\n", argv[0])
		return ProgramNotFound, nil
	default:
		fmt.Fprintf(e.Stdout, "%s: command not found\n", argv[0])
		return ProgramNotFound, nil
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdout: e.Stdout,
		Stderr: e.Stderr,
	}
	// Only a real file can be handed to the child as stdin without a copying
	// goroutine that would tie the child's lifetime to the session reader.
	// Remote sessions keep their reader for line editing; their children get
	// no stdin.
	if f, ok := e.Stdin.(*os.File); ok {
		cmd.Stdin = f
	}

	if err := cmd.Start(); err != nil {
		return Success, fmt.Errorf("starting %s: %w", argv[0], err)
	}

	// One-shot handoff from the reaper to the caller. The buffer lets the
	// reaper deliver and exit even when nobody reads the channel, so
	// background children are never left as zombies.
	wait := make(chan error, 1)
	go func() { wait <- cmd.Wait() }()

	if background {
		return Dispatched, nil
	}

	if err := <-wait; err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return RuntimeFailure, nil
		}
		return RuntimeFailure, fmt.Errorf("waiting for %s: %w", argv[0], err)
	}

	return Success, nil
}
