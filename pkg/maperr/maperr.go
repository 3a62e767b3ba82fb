// Package maperr holds the typed error kinds shared across the road-map core.
package maperr

import "errors"

// Kind classifies a core error so callers can branch on cause without
// string matching.
type Kind int

const (
	// InvalidInput marks a degenerate or malformed construction argument.
	InvalidInput Kind = iota
	// NumericalFailure marks a non-finite result from a numerical solve.
	NumericalFailure
	// NotFound marks an absent query result (no path, no nearest point, no cache entry).
	NotFound
	// CacheIOError marks a persistent-store read/write failure.
	CacheIOError
	// FeedFormatError marks a malformed feed record, skipped during ingestion.
	FeedFormatError
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NumericalFailure:
		return "numerical_failure"
	case NotFound:
		return "not_found"
	case CacheIOError:
		return "cache_io_error"
	case FeedFormatError:
		return "feed_format_error"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an *Error without a wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error around an existing cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err (or one it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
