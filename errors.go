package gopage

import (
	"fmt"
)

// ErrorKind enumerates the closed set of failures the library produces.
// Every error escaping the package is an *Error carrying one of these kinds;
// gorm execution errors pass through wrapped as causes.
type ErrorKind uint8

const (
	// ErrorKindInvalidPageablePair - conflicting or incomplete
	// page/position/size combination supplied to the request provider.
	ErrorKindInvalidPageablePair ErrorKind = iota + 1
	// ErrorKindInvalidOrderDirection - a sort token's direction segment is
	// not ASC/DESC.
	ErrorKindInvalidOrderDirection
	// ErrorKindMissingSortDirective - a sort token is blank.
	ErrorKindMissingSortDirective
	// ErrorKindInvalidSortDirective - a directive's table qualifier or field
	// name does not exist within the query's tables.
	ErrorKindInvalidSortDirective
	// ErrorKindAmbiguousSortField - a field name matches more than one table
	// column or more than one expression alias.
	ErrorKindAmbiguousSortField
)

// Code returns the stable machine-readable code for the kind.
func (k ErrorKind) Code() string {
	switch k {
	case ErrorKindInvalidPageablePair:
		return "INVALID_PAGEABLE_PAIR"
	case ErrorKindInvalidOrderDirection:
		return "INVALID_ORDER_DIRECTION"
	case ErrorKindMissingSortDirective:
		return "MISSING_SORT_DIRECTIVE"
	case ErrorKindInvalidSortDirective:
		return "INVALID_SORT_DIRECTIVE"
	case ErrorKindAmbiguousSortField:
		return "AMBIGUOUS_SORT_FIELD"
	default:
		return "UNKNOWN"
	}
}

// Description returns the human description for the kind.
func (k ErrorKind) Description() string {
	switch k {
	case ErrorKindInvalidPageablePair:
		return "conflicting or incomplete page/position/size combination"
	case ErrorKindInvalidOrderDirection:
		return "sort direction must be ASC or DESC"
	case ErrorKindMissingSortDirective:
		return "sort directive is blank"
	case ErrorKindInvalidSortDirective:
		return "sort directive does not match the query"
	case ErrorKindAmbiguousSortField:
		return "sort field matches more than one column or alias"
	default:
		return "unknown error"
	}
}

// Error is the only error shape produced by the package. All kinds are
// deterministic caller-input failures and must not be retried.
type Error struct {
	Kind   ErrorKind
	Reason string
	cause  error
}

func newError(kind ErrorKind, reason string) *Error {
	return &Error{
		Kind:   kind,
		Reason: reason,
	}
}

func newErrorf(kind ErrorKind, format string, args ...any) *Error {
	return newError(kind, fmt.Sprintf(format, args...))
}

// Error - implements error.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind.Code(), e.Kind.Description())
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}

	return msg
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same kind, so that
//
//	errors.Is(err, ErrAmbiguousSortField)
//
// works regardless of the reason text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}

// WithCause attaches a wrapped cause and returns the error.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// Kind sentinels for errors.Is checks.
var (
	ErrInvalidPageablePair   = &Error{Kind: ErrorKindInvalidPageablePair}
	ErrInvalidOrderDirection = &Error{Kind: ErrorKindInvalidOrderDirection}
	ErrMissingSortDirective  = &Error{Kind: ErrorKindMissingSortDirective}
	ErrInvalidSortDirective  = &Error{Kind: ErrorKindInvalidSortDirective}
	ErrAmbiguousSortField    = &Error{Kind: ErrorKindAmbiguousSortField}
)

var _ error = (*Error)(nil)
