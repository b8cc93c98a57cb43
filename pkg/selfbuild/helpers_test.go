package selfbuild

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func setMtime(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

// staleProgram creates a program older than its source in a temp dir.
func staleProgram(t *testing.T) (program, source string) {
	t.Helper()
	dir := t.TempDir()
	program = filepath.Join(dir, "hello")
	source = filepath.Join(dir, "hello.c")
	writeFile(t, program, "old binary", 0o755)
	writeFile(t, source, "int main(void) { return 0; }\n", 0o644)

	now := time.Now()
	setMtime(t, program, now.Add(-time.Hour))
	setMtime(t, source, now)
	return program, source
}

// freshProgram creates a program newer than its source in a temp dir.
func freshProgram(t *testing.T) (program, source string) {
	t.Helper()
	program, source = staleProgram(t)
	setMtime(t, program, time.Now().Add(time.Hour))
	return program, source
}

func requireUnixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

// fakeRunner records invocations. The first call is treated as the compiler:
// unless compileCode is non-zero it writes the output file named after "-o".
type fakeRunner struct {
	calls       []Invocation
	compileCode int
	runCode     int
	compileErr  error
	runErr      error
	onCompile   func()
}

func (f *fakeRunner) Run(_ context.Context, inv Invocation) (Status, error) {
	f.calls = append(f.calls, inv)
	if len(f.calls) == 1 {
		if f.onCompile != nil {
			f.onCompile()
		}
		if f.compileErr != nil {
			return Status{}, f.compileErr
		}
		if f.compileCode != 0 {
			return Status{Exited: true, Code: f.compileCode}, nil
		}
		for i, arg := range inv.Args {
			if arg == "-o" && i+1 < len(inv.Args) {
				if err := os.WriteFile(inv.Args[i+1], []byte("new binary"), 0o755); err != nil {
					return Status{}, err
				}
			}
		}
		return Status{Exited: true}, nil
	}
	if f.runErr != nil {
		return Status{}, f.runErr
	}
	return Status{Exited: true, Code: f.runCode}, nil
}
