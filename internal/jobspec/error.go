package jobspec

import (
	"errors"
	"fmt"
)

var (
	// ErrInputClosed indicates the operator's input ended while a required answer was pending
	ErrInputClosed = errors.New("input closed before a partition was selected")

	// ErrNotANumber indicates an answer that is not a non-negative integer
	ErrNotANumber = errors.New("not a non-negative integer")
)

// RangeError represents a numeric answer outside its allowed bounds
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %d is outside [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// IsRangeError checks if an error is a RangeError
func IsRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}
