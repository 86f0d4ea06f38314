// internal/errors/errors.go
package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies which of the two fatal error taxonomies (spec.md §7) an
// error belongs to. There are no recoverable errors in this system: every
// error aborts the current invocation.
type Kind string

const (
	ParseErrorKind Kind = "ParseError"
	IoErrorKind    Kind = "IoError"
)

// ParseError is raised by the parser when brackets don't balance. Offset
// is the byte offset of the offending `]`, or of the `[` that never finds
// its match.
type ParseError struct {
	Offset int
	Reason string
}

// NewUnbalancedBrackets builds the ParseError spec.md §4.1 calls
// UnbalancedBrackets.
func NewUnbalancedBrackets(offset int, reason string) *ParseError {
	return &ParseError{Offset: offset, Reason: reason}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s at byte offset %d", ParseErrorKind, e.Reason, e.Offset)
}

// IoError wraps a read/write failure of the source file or the program's
// input/output streams. The cause is preserved with github.com/pkg/errors
// so %+v on the returned error prints the stack captured where
// NewIoError was called, alongside this system's framing of it.
type IoError struct {
	what  string
	cause error
}

func NewIoError(what string, cause error) *IoError {
	return &IoError{what: what, cause: pkgerrors.WithStack(cause)}
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s: %s: %v", IoErrorKind, e.what, e.cause)
}

func (e *IoError) Unwrap() error {
	return e.cause
}

// Format implements fmt.Formatter so %+v surfaces the stack trace
// pkg/errors attached in NewIoError.
func (e *IoError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %s:%+v", IoErrorKind, e.what, e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}
