package selfbuild

import (
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
)

func TestRebuildLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog"+LockSuffix)

	lk, err := acquireLock(path)
	if err != nil {
		t.Fatalf("acquireLock() error = %v", err)
	}

	other := flock.New(path)
	if ok, err := other.TryLock(); err != nil || ok {
		t.Fatalf("TryLock() while held = %v, %v; want false", ok, err)
	}

	if err := lk.release(); err != nil {
		t.Fatalf("release() error = %v", err)
	}
	if err := lk.release(); err != nil {
		t.Errorf("second release() error = %v", err)
	}

	ok, err := other.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock() after release = %v, %v; want true", ok, err)
	}
	_ = other.Unlock()
}

func TestRebuildLock_NilRelease(t *testing.T) {
	var lk *rebuildLock
	if err := lk.release(); err != nil {
		t.Errorf("nil release() error = %v", err)
	}
}
