package output

import (
	"bytes"
	"errors"
	"testing"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter() (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	w := &Writer{
		out:   stdout,
		err:   stderr,
		color: false, // Disable color for predictable test output
	}
	return w, stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.out == nil {
		t.Error("out writer is nil")
	}
	if w.err == nil {
		t.Error("err writer is nil")
	}
}

func TestWriter_Println(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Println("hello %s", "world")

	if got := stdout.String(); got != "hello world\n" {
		t.Errorf("Println() = %q, want %q", got, "hello world\n")
	}
}

func TestWriter_Info(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	if err := w.Info("renaming %s -> %s", "./app", "./app.old"); err != nil {
		t.Fatalf("Info() error = %v", err)
	}

	if got := stdout.String(); got != "[INFO] renaming ./app -> ./app.old\n" {
		t.Errorf("Info() = %q", got)
	}
	if stderr.Len() != 0 {
		t.Errorf("Info() wrote to stderr: %q", stderr.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriter_InfoReportsWriteError(t *testing.T) {
	w := NewWithWriters(failingWriter{}, &bytes.Buffer{}, false)
	if err := w.Info("x"); err == nil {
		t.Error("Info() error = nil, want write error")
	}
	if err := w.Command("cc", nil); err == nil {
		t.Error("Command() error = nil, want write error")
	}
}

func TestWriter_Command(t *testing.T) {
	w, stdout, _ := newTestWriter()

	if err := w.Command("rustc", []string{"my prog.rs", "-o", "./prog"}); err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	if got := stdout.String(); got != "[CMD] rustc 'my prog.rs' -o ./prog\n" {
		t.Errorf("Command() = %q", got)
	}
}

func TestWriter_Error(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	w.Error("cannot rebuild self due to lack of program path")

	if got := stderr.String(); got != "[ERROR] cannot rebuild self due to lack of program path\n" {
		t.Errorf("Error() = %q", got)
	}
	if stdout.Len() != 0 {
		t.Errorf("Error() wrote to stdout: %q", stdout.String())
	}
}

func TestWriter_ErrorColor(t *testing.T) {
	stderr := &bytes.Buffer{}
	w := NewWithWriters(&bytes.Buffer{}, stderr, true)

	w.Error("boom")

	if got := stderr.String(); got != red+ErrorPrefix+reset+"boom\n" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWriter_Warning(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.Warning("unknown field %q", "x")

	if got := stderr.String(); got != "[WARN] unknown field \"x\"\n" {
		t.Errorf("Warning() = %q", got)
	}
}

func TestWriter_Table(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Table([]string{"Name", "Program"}, [][]string{
		{"cc", "cc"},
		{"rustc", "rustc"},
	})

	want := "Name   Program\n" +
		"-----  -------\n" +
		"cc     cc\n" +
		"rustc  rustc\n"
	if got := stdout.String(); got != want {
		t.Errorf("Table() =\n%s\nwant\n%s", got, want)
	}
}
