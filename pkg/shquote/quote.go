// Package shquote renders arbitrary byte strings as single POSIX sh words.
//
// A token made only of safe bytes is written verbatim. Anything else is
// wrapped in single quotes, with each embedded single quote rendered as
// '"'"' (close the quote, emit a double-quoted quote, reopen the quote).
// Input is treated as opaque bytes; nothing here assumes valid UTF-8.
package shquote

import (
	"bytes"
	"io"
	"strings"
)

// safePunct lists the punctuation that needs no quoting in sh.
const safePunct = "@%+=:,./-"

// escapedQuote replaces an embedded single quote inside a single-quoted word.
const escapedQuote = `'"'"'`

// IsSafe reports whether b can appear unquoted in a shell word.
func IsSafe(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	return strings.IndexByte(safePunct, b) >= 0
}

func allSafe(s []byte) bool {
	for _, b := range s {
		if !IsSafe(b) {
			return false
		}
	}
	return true
}

// Append appends the quoted form of s to dst and returns the extended buffer.
func Append(dst, s []byte) []byte {
	if len(s) == 0 {
		return append(dst, "''"...)
	}
	if allSafe(s) {
		return append(dst, s...)
	}

	dst = append(dst, '\'')
	for {
		i := bytes.IndexByte(s, '\'')
		if i < 0 {
			break
		}
		dst = append(dst, s[:i]...)
		dst = append(dst, escapedQuote...)
		s = s[i+1:]
	}
	dst = append(dst, s...)
	return append(dst, '\'')
}

// Quote returns s as a single shell-safe word.
func Quote(s []byte) string {
	return string(Append(nil, s))
}

// QuoteString is Quote for string input.
func QuoteString(s string) string {
	return Quote([]byte(s))
}

// Write writes the quoted form of s to w. Errors from w are returned as-is.
func Write(w io.Writer, s []byte) error {
	_, err := w.Write(Append(nil, s))
	return err
}

// Join quotes every argument and joins them with single spaces.
func Join(args []string) string {
	var buf []byte
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = Append(buf, []byte(arg))
	}
	return string(buf)
}
