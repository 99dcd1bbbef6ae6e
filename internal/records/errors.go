package records

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord marks input that does not fit a record type.
var ErrInvalidRecord = errors.New("invalid record")

// DecodeError reports which record of an input failed and why.
type DecodeError struct {
	Kind  string
	Index int
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s #%d: %v", e.Kind, e.Index, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidRecord, e.Cause}
}
