package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	lockTimeout = 10 * time.Second
	lockRetry   = 100 * time.Millisecond

	lockDirMode os.FileMode = 0755
)

// Lock is a directory-based lock. Creating the directory is atomic, so only
// one process holds it at a time.
type Lock struct {
	dir     string
	timeout time.Duration
}

// NewLock creates a new lock at the given directory path.
func NewLock(dir string) *Lock {
	return &Lock{dir: dir, timeout: lockTimeout}
}

// Acquire attempts to acquire the lock, retrying until timeout.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.dir), lockDirMode); err != nil {
		return fmt.Errorf("create lock parent: %w", err)
	}
	start := time.Now()
	for {
		err := os.Mkdir(l.dir, lockDirMode)
		if err == nil {
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock directory: %w", err)
		}
		if time.Since(start) > l.timeout {
			return fmt.Errorf("lock %s still held after %s", l.dir, l.timeout)
		}
		time.Sleep(lockRetry)
	}
}

// Release releases the lock by removing the directory.
func (l *Lock) Release() error {
	return os.Remove(l.dir)
}

// WithLock executes fn while holding the lock.
func WithLock(dir string, fn func() error) error {
	lock := NewLock(dir)
	if err := lock.Acquire(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer lock.Release()
	return fn()
}
