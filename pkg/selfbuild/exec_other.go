//go:build !unix

package selfbuild

import "errors"

const canReplaceProcess = false

func replaceProcess(string, []string, []string) error {
	return errors.New("process replacement is not supported on this platform")
}
