package toolchain

import (
	"path/filepath"
	"strings"
)

// Detect picks a built-in toolchain from the source file extension.
// Returns the toolchain name and true if detected, empty string and false otherwise.
func Detect(source string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(source))
	if ext == "" {
		return "", false
	}
	for _, name := range List() {
		for _, e := range builtinToolchains[name].Extensions {
			if e == ext {
				return name, true
			}
		}
	}
	return "", false
}

// DetectOrDefault is Detect falling back to DefaultName.
func DetectOrDefault(source string) string {
	if name, ok := Detect(source); ok {
		return name
	}
	return DefaultName
}
