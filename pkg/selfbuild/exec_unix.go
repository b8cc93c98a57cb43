//go:build unix

package selfbuild

import "golang.org/x/sys/unix"

const canReplaceProcess = true

// replaceProcess replaces the current process image. It only returns on failure.
func replaceProcess(argv0 string, argv, env []string) error {
	return unix.Exec(argv0, argv, env)
}
