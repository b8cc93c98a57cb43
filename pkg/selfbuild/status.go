package selfbuild

import (
	"errors"
	"os/exec"
)

// Status is the completion status of a subprocess.
type Status struct {
	// Exited is false when the process ended without an exit code (signal).
	Exited bool
	Code   int
}

// Success reports whether the process exited with code 0.
func (s Status) Success() bool {
	return s.Exited && s.Code == 0
}

// ExitCode returns the exit code, or ExitUnknown when there is none.
func (s Status) ExitCode() int {
	if !s.Exited {
		return ExitUnknown
	}
	return s.Code
}

// StatusFromError converts the result of exec.Cmd.Run into a Status.
// Errors other than *exec.ExitError mean the process never ran and are returned.
func StatusFromError(err error) (Status, error) {
	if err == nil {
		return Status{Exited: true}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Status{}, err
	}
	ps := exitErr.ProcessState
	if ps == nil || !ps.Exited() {
		return Status{Code: ExitUnknown}, nil
	}
	return Status{Exited: true, Code: ps.ExitCode()}, nil
}
