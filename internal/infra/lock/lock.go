// Package lock garantiza una sola instancia del bot por carpeta de config.
package lock

import (
	"errors"
	"fmt"
	"os"
)

var ErrLocked = errors.New("queuebot is already running")

type FileLock struct {
	path string
	file *os.File
}

func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

func (fl *FileLock) Path() string { return fl.path }

// TryLock no bloquea: si otro proceso tiene el lock devuelve ErrLocked.
func (fl *FileLock) TryLock() error {
	if fl.file != nil {
		return nil
	}
	f, err := os.OpenFile(fl.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	if err := tryLock(f); err != nil {
		f.Close()
		return err
	}

	// PID para diagnóstico
	if err := f.Truncate(0); err == nil {
		_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
		_ = f.Sync()
	}

	fl.file = f
	return nil
}

func (fl *FileLock) Unlock() error {
	if fl.file == nil {
		return nil
	}
	f := fl.file
	fl.file = nil

	if err := unlock(f); err != nil {
		f.Close()
		return fmt.Errorf("release lock: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close lock file: %w", err)
	}
	return nil
}
