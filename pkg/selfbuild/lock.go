package selfbuild

import (
	"github.com/gofrs/flock"
)

// LockSuffix is appended to the program path to name the rebuild lock file.
// The lock file is left in place after use.
const LockSuffix = ".lock"

// rebuildLock serialises rebuilds of one program across processes.
type rebuildLock struct {
	fl   *flock.Flock
	held bool
}

func acquireLock(path string) (*rebuildLock, error) {
	fl := flock.New(path)
	if err := fl.Lock(); err != nil {
		return nil, err
	}
	return &rebuildLock{fl: fl, held: true}, nil
}

// release is safe to call more than once and on a nil lock.
func (l *rebuildLock) release() error {
	if l == nil || !l.held {
		return nil
	}
	l.held = false
	return l.fl.Unlock()
}
