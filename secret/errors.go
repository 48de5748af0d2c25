package secret

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotANumber = errors.New("length is not a number")
	ErrOutOfRange = errors.New("length is out of range")
)

// ErrorKind classifies a rejected length argument.
type ErrorKind int

const (
	NotANumber ErrorKind = iota
	OutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case NotANumber:
		return "not_a_number"
	case OutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// ValidationError is returned by Generate when the requested length is
// rejected. It is an expected outcome and is rendered to the user, not logged.
type ValidationError struct {
	Kind   ErrorKind
	Raw    string
	Length LengthSpec
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid length %q: must be a number between %d and %d", e.Raw, e.Length.Min, e.Length.Max)
}

func (e *ValidationError) Unwrap() error {
	if e.Kind == NotANumber {
		return ErrNotANumber
	}
	return ErrOutOfRange
}

// IsValidationError reports whether err (or anything it wraps) is a
// *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
