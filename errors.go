package wiivff

import (
	"errors"
	"fmt"
)

// Structural errors. Any of these means the image geometry can no longer be
// trusted, except ErrChainCycle and ErrDanglingChain which are scoped to a
// single entry when that entry is deleted.
var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrTruncatedImage  = errors.New("image truncated")
	ErrChainCycle      = errors.New("cluster chain cycle")
	ErrDanglingChain   = errors.New("dangling cluster chain")
)

// Recognized but unhandled structures.
var (
	ErrLongName      = errors.New("long filename entries are not supported")
	ErrWc24Container = errors.New("WC24 containers are not supported")
)

// FormatError reports an image that does not conform to the expected
// VFF/FAT16 layout. It wraps one of the structural sentinel errors so
// callers can use errors.Is.
type FormatError struct {
	Err    error
	Detail string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("vff: %v: %s", e.Err, e.Detail)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErrf(sentinel error, format string, args ...interface{}) error {
	return &FormatError{Err: sentinel, Detail: fmt.Sprintf(format, args...)}
}

// UnsupportedError reports a structure this tool recognizes but deliberately
// does not handle. It wraps ErrLongName or ErrWc24Container.
type UnsupportedError struct {
	Err    error
	Detail string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("vff: unsupported: %v: %s", e.Err, e.Detail)
}

func (e *UnsupportedError) Unwrap() error {
	return e.Err
}

func unsupportedErrf(sentinel error, format string, args ...interface{}) error {
	return &UnsupportedError{Err: sentinel, Detail: fmt.Sprintf(format, args...)}
}
