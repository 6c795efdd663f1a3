package errors

import (
	"errors"
	"fmt"
)

var (
	ErrTailIO               = errors.New("tail read failed")
	ErrSessionNotFound      = errors.New("no active tail session for path")
	ErrSessionActive        = errors.New("tail session already active for path")
	ErrWatchFailed          = errors.New("filesystem watch failed")
	ErrConfigInvalid        = errors.New("invalid configuration")
	ErrInvalidStartPosition = errors.New("invalid start position")
	ErrFilterInvalid        = errors.New("invalid filter expression")
	ErrRegistryClosed       = errors.New("tail registry closed")
)

// NewTailError wraps an I/O failure on an active session with its path.
func NewTailError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrTailIO, path, err)
}

func NewWatchError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrWatchFailed, path, err)
}

func NewSessionError(path string) error {
	return fmt.Errorf("%w: %s", ErrSessionNotFound, path)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

func NewPositionError(pos string) error {
	return fmt.Errorf("%w: %q (want start, end or resume)", ErrInvalidStartPosition, pos)
}

func NewFilterError(src string, err error) error {
	return fmt.Errorf("%w: %q: %v", ErrFilterInvalid, src, err)
}
