package eligibility

import (
	"errors"
	"fmt"
)

// Error kinds returned by the calculator. Shortfalls and "no tier" outcomes are
// regular results and never surface as errors.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownCategory  = errors.New("unknown badge category")
	ErrUnknownRank      = errors.New("unknown rank")
	ErrInvalidSelection = errors.New("invalid category/rank selection")
)

// InputError reports a rejected numeric field. It matches ErrInvalidInput.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidField(field, value, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}
