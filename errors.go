package tuplekey

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// BadValueError reports a value that Encode refuses: the HIGH sentinel
// appearing where a caller-supplied value was expected, or a zero Value that
// no constructor produced. NaN numbers and invalid timestamps never reach
// Encode: package value's constructors reject them with value.BadValueError.
type BadValueError struct {
	Reason string
}

func (e *BadValueError) Error() string { return fmt.Sprintf("bad value: %s", e.Reason) }

// UnsupportedError reports a runtime value the codec has no variant for.
type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string { return fmt.Sprintf("unsupported: %s", e.Reason) }

// MalformedError reports invalid encoded bytes: an unknown tag, a truncated
// scalar, a missing terminator, a bad escape sequence, or trailing bytes
// after a complete top-level value.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string { return fmt.Sprintf("malformed: %s", e.Reason) }

// TooDeepError reports composite nesting beyond the configured limit.
type TooDeepError struct {
	MaxDepth int
}

func (e *TooDeepError) Error() string {
	return fmt.Sprintf("too deep: exceeds max depth %d", e.MaxDepth)
}

func badValue(format string, args ...any) error {
	return errors.WithStack(&BadValueError{Reason: fmt.Sprintf(format, args...)})
}

func unsupported(format string, args ...any) error {
	return errors.WithStack(&UnsupportedError{Reason: fmt.Sprintf(format, args...)})
}

func malformed(format string, args ...any) error {
	return errors.WithStack(&MalformedError{Reason: fmt.Sprintf(format, args...)})
}

func tooDeep(max int) error {
	return errors.WithStack(&TooDeepError{MaxDepth: max})
}

// IsBadValue reports whether err is or wraps a BadValueError.
func IsBadValue(err error) bool {
	var e *BadValueError
	return errors.As(err, &e)
}

// IsUnsupported reports whether err is or wraps an UnsupportedError.
func IsUnsupported(err error) bool {
	var e *UnsupportedError
	return errors.As(err, &e)
}

// IsMalformed reports whether err is or wraps a MalformedError.
func IsMalformed(err error) bool {
	var e *MalformedError
	return errors.As(err, &e)
}

// IsTooDeep reports whether err is or wraps a TooDeepError.
func IsTooDeep(err error) bool {
	var e *TooDeepError
	return errors.As(err, &e)
}
