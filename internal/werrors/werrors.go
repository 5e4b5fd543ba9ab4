// Package werrors defines the error kinds used across the transform
// pipeline: invalid input, skippable content problems, fatal unexpected
// failures, and bad results from an external API.
package werrors

import "fmt"

// Kind classifies how a caller should react to an error.
type Kind int

const (
	// KindInvalidInput means the caller passed something malformed; it
	// should surface immediately, not be retried.
	KindInvalidInput Kind = iota
	// KindContentError means a specific piece of content (a citation, a
	// pipeline step over one item) could not be processed; callers should log and skip it,
	// continuing with the rest of the pass.
	KindContentError
	// KindUnexpectedError means an invariant was violated; it is fatal
	// and should abort the whole pass.
	KindUnexpectedError
	// KindAPIResult means an external API call completed but returned a
	// result that fails validation; it should surface without retry.
	KindAPIResult
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindContentError:
		return "content_error"
	case KindUnexpectedError:
		return "unexpected_error"
	case KindAPIResult:
		return "api_result_error"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind so driver code can decide
// whether to surface, log-and-skip, or abort.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// InvalidInput builds a KindInvalidInput error.
func InvalidInput(format string, args ...any) *Error {
	return newErr(KindInvalidInput, format, args...)
}

// ContentError builds a KindContentError error.
func ContentError(format string, args ...any) *Error {
	return newErr(KindContentError, format, args...)
}

// UnexpectedError builds a KindUnexpectedError error, optionally wrapping
// a cause.
func UnexpectedError(cause error, format string, args ...any) *Error {
	e := newErr(KindUnexpectedError, format, args...)
	e.err = cause
	return e
}

// APIResultError builds a KindAPIResult error.
func APIResultError(format string, args ...any) *Error {
	return newErr(KindAPIResult, format, args...)
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if as, ok := err.(*Error); ok {
		e = as
		return e.kind == kind
	}
	return false
}
