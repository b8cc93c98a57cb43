package shquote

import "io"

// TracePrefix starts every command trace line.
const TracePrefix = "[CMD] "

type flusher interface {
	Flush() error
}

// AppendCommand appends the trace line for program and args, without the
// trailing newline, to dst.
func AppendCommand(dst []byte, program string, args []string) []byte {
	dst = append(dst, TracePrefix...)
	dst = Append(dst, []byte(program))
	for _, arg := range args {
		dst = append(dst, ' ')
		dst = Append(dst, []byte(arg))
	}
	return dst
}

// WriteCommand writes one "[CMD] program arg..." line to w and flushes w when
// it buffers. The line is complete on return, so a subprocess started
// afterwards cannot get its output in front of it.
func WriteCommand(w io.Writer, program string, args []string) error {
	line := append(AppendCommand(nil, program, args), '\n')
	if _, err := w.Write(line); err != nil {
		return err
	}
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
