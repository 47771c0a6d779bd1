package rangeset

import (
	"errors"
	"fmt"
)

// InvalidRangeError is returned when a range endpoint is not a well-formed
// integer. A call that fails with it leaves the set unchanged.
type InvalidRangeError struct {
	Input  string
	Reason string
	Err    error
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range %q: %s", e.Input, e.Reason)
}

func (e *InvalidRangeError) Unwrap() error { return e.Err }

func IsInvalidRange(err error) bool {
	var e *InvalidRangeError
	return errors.As(err, &e)
}
