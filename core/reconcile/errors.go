package reconcile

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
)

// Precondition errors. These are the only errors Reconcile returns.
var (
	// ErrInvalidParent indicates a zero parent id.
	ErrInvalidParent = errors.New("reconcile: parent id is required")

	// ErrInvalidChild indicates a zero child id in the baseline or desired set.
	ErrInvalidChild = errors.New("reconcile: child ids must be non-zero")

	// ErrMissingFactory indicates a nil link or unlink factory.
	ErrMissingFactory = errors.New("reconcile: link and unlink factories are required")
)

// Failure taxonomy. Stores wrap their errors with these sentinels so callers can use errors.Is.
var (
	// ErrNetwork indicates a transport level failure, including timeouts.
	ErrNetwork = errors.New("network failure")

	// ErrConflict indicates the link already exists.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates the link to remove does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCanceled indicates the operation was never started because the context was cancelled.
	ErrCanceled = errors.New("operation canceled")
)

// errNilOperation is recorded when a factory returns no operation.
var errNilOperation = errors.New("reconcile: factory returned a nil operation")

// FailureClass is a coarse category of a failed operation.
type FailureClass string

// Failure classes returned by Classify, one per sentinel error.
const (
	// ClassNetwork covers transport errors and timeouts.
	ClassNetwork FailureClass = "network"
	// ClassConflict means the link already exists.
	ClassConflict FailureClass = "conflict"
	// ClassNotFound means the link to remove was absent.
	ClassNotFound FailureClass = "not_found"
	// ClassCanceled marks operations never started because the context ended.
	ClassCanceled FailureClass = "canceled"
	// ClassUnknown is everything else.
	ClassUnknown FailureClass = "unknown"
)

// Classify maps an error to its failure class.
func Classify(err error) FailureClass {
	var netErr net.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCanceled), errors.Is(err, context.Canceled):
		return ClassCanceled
	case errors.Is(err, ErrConflict):
		return ClassConflict
	case errors.Is(err, ErrNotFound):
		return ClassNotFound
	case errors.Is(err, ErrNetwork),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &netErr):
		return ClassNetwork
	default:
		return ClassUnknown
	}
}
