package selfbuild

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestExecRunner(t *testing.T) {
	requireUnixShell(t)

	var trace, stdout bytes.Buffer
	r := &ExecRunner{Trace: &trace, Stdout: &stdout, Stderr: &stdout}

	st, err := r.Run(context.Background(), Invocation{
		Program: "sh",
		Args:    []string{"-c", "echo \"$0 $GREETING\"; exit 3", "big world"},
		Env:     []string{"GREETING=hi"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st.ExitCode() != 3 {
		t.Errorf("ExitCode() = %d, want 3", st.ExitCode())
	}
	wantTrace := "[CMD] sh -c 'echo \"$0 $GREETING\"; exit 3' 'big world'\n"
	if trace.String() != wantTrace {
		t.Errorf("trace = %q, want %q", trace.String(), wantTrace)
	}
	if stdout.String() != "big world hi\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestExecRunner_Dir(t *testing.T) {
	requireUnixShell(t)

	dir := t.TempDir()
	var stdout bytes.Buffer
	r := &ExecRunner{Trace: &bytes.Buffer{}, Stdout: &stdout}
	if _, err := r.Run(context.Background(), Invocation{Program: "pwd", Dir: dir}); err != nil {
		t.Fatal(err)
	}
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestExecRunner_Signal(t *testing.T) {
	requireUnixShell(t)

	r := &ExecRunner{Trace: &bytes.Buffer{}}
	st, err := r.Run(context.Background(), Invocation{Program: "sh", Args: []string{"-c", "kill -9 $$"}})
	if err != nil {
		t.Fatal(err)
	}
	if st.ExitCode() != ExitUnknown {
		t.Errorf("ExitCode() = %d, want %d", st.ExitCode(), ExitUnknown)
	}
}

func TestExecRunner_TraceFailureAborts(t *testing.T) {
	requireUnixShell(t)

	marker := filepath.Join(t.TempDir(), "ran")
	r := &ExecRunner{Trace: failingWriter{}}
	_, err := r.Run(context.Background(), Invocation{Program: "touch", Args: []string{marker}})
	if err == nil {
		t.Fatal("expected trace error")
	}
	if _, statErr := os.Stat(marker); !os.IsNotExist(statErr) {
		t.Error("command ran despite trace failure")
	}
}

func TestExecRunner_NotFound(t *testing.T) {
	r := &ExecRunner{Trace: &bytes.Buffer{}}
	_, err := r.Run(context.Background(), Invocation{Program: filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatal("expected launch error")
	}
}
