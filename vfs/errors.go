package vfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// Error kinds. Every failure returned by this module matches exactly one of
// these with errors.Is.
var (
	ErrNotFound               = errors.New("not found")
	ErrNotADirectory          = errors.New("not a directory")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrAlreadyExists          = errors.New("already exists")
	ErrConflict               = errors.New("conflict")
	ErrInvalidArchive         = errors.New("invalid archive")
	ErrUnsupportedCompression = errors.New("unsupported compression")
	ErrExtractionFailed       = errors.New("extraction failed")
	ErrUnsupported            = errors.New("unsupported")
	ErrPartialMove            = errors.New("partial move")
	ErrCrossDevice            = errors.New("cross-device")
	ErrCancelled              = errors.New("cancelled")
)

// errIO covers failures no kind describes (disk full, short reads).
var errIO = errors.New("i/o error")

var kinds = []error{
	ErrNotFound, ErrNotADirectory, ErrPermissionDenied, ErrAlreadyExists, ErrConflict,
	ErrInvalidArchive, ErrUnsupportedCompression, ErrExtractionFailed, ErrUnsupported,
	ErrPartialMove, ErrCrossDevice, ErrCancelled,
}

// PathError records a failed operation on one path. It unwraps to both its
// kind and the underlying cause.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil || e.Err == e.Kind {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, unwrapPath(e.Err))
}

func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// unwrapPath strips the *fs.PathError wrapper so the path is not printed twice.
func unwrapPath(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}

// NewError builds a PathError of the given kind.
func NewError(op, path string, kind, cause error) error {
	return &PathError{Op: op, Path: path, Kind: kind, Err: cause}
}

// Classify maps an OS error onto an error kind and wraps it. Errors that
// already carry a kind are returned unchanged.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}
	var kind error
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = ErrCancelled
	case errors.Is(err, syscall.EXDEV):
		kind = ErrCrossDevice
	case errors.Is(err, syscall.ENOTDIR):
		kind = ErrNotADirectory
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, fs.ErrExist), errors.Is(err, syscall.ENOTEMPTY):
		kind = ErrAlreadyExists
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS):
		kind = ErrPermissionDenied
	default:
		kind = errIO
	}
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

// KindOf returns the kind sentinel carried by err, or nil.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// FailedPath returns the path recorded by the outermost PathError in err.
func FailedPath(err error) string {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Path
	}
	return ""
}
