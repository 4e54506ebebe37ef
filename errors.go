package bpsk

import "github.com/tphakala/go-bpsk/internal/failure"

// ErrorKind classifies runtime failures. The set is closed:
// KindIO, KindAllocation and KindMalformedContainer.
type ErrorKind = failure.Kind

// Error is the concrete error returned by signal and container operations.
// Use errors.Is with ErrIO, ErrAllocation or ErrMalformedContainer, or
// errors.As to inspect Kind, Op and Path.
type Error = failure.Error

// Error kinds.
const (
	KindIO                 = failure.KindIO
	KindAllocation         = failure.KindAllocation
	KindMalformedContainer = failure.KindMalformedContainer
)

// Sentinels matched by every *Error of the corresponding kind.
var (
	// ErrIO indicates an unreadable source or unwritable destination.
	ErrIO = failure.ErrIO

	// ErrAllocation indicates a signal too large to size or allocate.
	ErrAllocation = failure.ErrAllocation

	// ErrMalformedContainer indicates a container whose declared payload
	// size is not positive.
	ErrMalformedContainer = failure.ErrMalformedContainer
)

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	return failure.KindOf(err)
}
