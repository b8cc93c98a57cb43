package selfbuild

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/AndreyAkinshin/selfbuild/pkg/shquote"
)

// Invocation is a subprocess to launch.
type Invocation struct {
	Program string
	Args    []string
	Dir     string   // empty means the current directory
	Env     []string // extra KEY=VALUE pairs on top of the inherited environment
}

// Runner traces and runs invocations synchronously.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Status, error)
}

// ExecRunner runs invocations with os/exec after writing a "[CMD] ..." trace
// line. Nil fields fall back to the process's standard streams.
type ExecRunner struct {
	Trace  io.Writer
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run writes the trace line and then runs inv, waiting for it to finish.
// A trace write failure aborts before the subprocess is started. A non-zero
// exit is reported through Status, not as an error.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Status, error) {
	if err := shquote.WriteCommand(orWriter(r.Trace, os.Stdout), inv.Program, inv.Args); err != nil {
		return Status{}, fmt.Errorf("write trace: %w", err)
	}

	// #nosec G204 - running the compiler and the rebuilt program is the point
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Dir = inv.Dir
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)

	return StatusFromError(cmd.Run())
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
