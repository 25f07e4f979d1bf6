package lcu

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrBadLockfile = errors.New("malformed lockfile")
)

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lcu api status %d: %s", e.Status, e.Body)
}
