// Package integration contains end-to-end tests that drive a built selfbuild
// binary against real files and subprocesses.
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// selfbuildBin is the CLI built once for the whole package.
var selfbuildBin string

func TestMain(m *testing.M) {
	os.Exit(runMain(m))
}

func runMain(m *testing.M) int {
	if runtime.GOOS == "windows" {
		fmt.Println("integration tests require a POSIX shell; skipping")
		return 0
	}

	dir, err := os.MkdirTemp("", "selfbuild-integration-")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer os.RemoveAll(dir)

	_, filename, _, _ := runtime.Caller(0)
	pkg := filepath.Join(filepath.Dir(filename), "..", "..", "cmd", "selfbuild")
	selfbuildBin = filepath.Join(dir, "selfbuild")

	build := exec.Command("go", "build", "-o", selfbuildBin, ".")
	build.Dir = pkg
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build selfbuild: %v\n%s", err, out)
		return 1
	}
	return m.Run()
}

// fixture is a stale shell "program" with a shell "compiler" that copies its
// source into place, counting its invocations in a log file.
type fixture struct {
	dir      string
	program  string
	source   string
	compiler string
	log      string
}

func newFixture(t *testing.T, body string, compileDelay time.Duration) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:      dir,
		program:  filepath.Join(dir, "prog"),
		source:   filepath.Join(dir, "prog.sh"),
		compiler: filepath.Join(dir, "fakecc"),
		log:      filepath.Join(dir, "compiles.log"),
	}

	compiler := fmt.Sprintf("#!/bin/sh\necho \"$1\" >> %q\nsleep %.2f\ncp \"$1\" \"$3\" && chmod +x \"$3\"\n",
		f.log, compileDelay.Seconds())
	mustWrite(t, f.compiler, compiler, 0o755)
	mustWrite(t, f.program, "#!/bin/sh\necho stale\nexit 99\n", 0o755)
	mustWrite(t, f.source, "#!/bin/sh\n"+body, 0o644)
	mustWrite(t, filepath.Join(dir, "selfbuild.yaml"), "compiler:\n  program: "+f.compiler+"\n", 0o644)

	now := time.Now()
	mustChtimes(t, f.source, now.Add(-time.Minute))
	mustChtimes(t, f.program, now.Add(-time.Hour))
	return f
}

// compiles returns how many times the fake compiler ran.
func (f *fixture) compiles(t *testing.T) int {
	t.Helper()
	data, err := os.ReadFile(f.log)
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}

// selfbuild runs the CLI and returns stdout, stderr and the exit code.
func selfbuild(t *testing.T, env []string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(selfbuildBin, args...)
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if err != nil {
		// Called from goroutines, so no t.Fatal.
		t.Errorf("failed to run selfbuild: %v", err)
		code = -1
	}
	return stdout.String(), stderr.String(), code
}

func mustWrite(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func mustChtimes(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}
