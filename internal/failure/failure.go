// Package failure defines the closed set of runtime error kinds shared by the
// codec, modem and file pipelines.
//
// NOTE: These live in an internal package because internal packages cannot
// import the main bpsk package (would create import cycle). The root package
// re-exports them as aliases.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a runtime failure. The set is closed.
type Kind int

const (
	// KindIO covers unreadable sources and unwritable destinations.
	KindIO Kind = iota + 1

	// KindAllocation covers buffers that cannot be sized or allocated.
	KindAllocation

	// KindMalformedContainer covers containers whose declared payload is unusable.
	KindMalformedContainer
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindAllocation:
		return "allocation error"
	case KindMalformedContainer:
		return "malformed container"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is matching. An *Error matches the sentinel of its kind.
var (
	ErrIO                 = errors.New("io error")
	ErrAllocation         = errors.New("allocation error")
	ErrMalformedContainer = errors.New("malformed container")
)

// Error is a failure of one operation. Every Error is terminal for that
// operation: nothing is retried and partial output is left as is.
type Error struct {
	Kind Kind
	Op   string // operation, e.g. "read container"
	Path string // file involved, empty for in-memory operations
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return sentinel(e.Kind) == target
}

func sentinel(k Kind) error {
	switch k {
	case KindIO:
		return ErrIO
	case KindAllocation:
		return ErrAllocation
	case KindMalformedContainer:
		return ErrMalformedContainer
	default:
		return nil
	}
}

// IO returns a KindIO error.
func IO(op, path string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

// Allocation returns a KindAllocation error.
func Allocation(op string, err error) *Error {
	return &Error{Kind: KindAllocation, Op: op, Err: err}
}

// Malformed returns a KindMalformedContainer error.
func Malformed(op, path string, err error) *Error {
	return &Error{Kind: KindMalformedContainer, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
