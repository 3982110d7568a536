package jobspec

import (
	"fmt"
	"strings"

	"github.com/Dvegrod/little-toolset/internal/utils"
)

// ParseBounded parses answer as a non-negative integer within [min, max].
func ParseBounded(field, answer string, min, max int) (int, error) {
	n, err := utils.ParseCount(answer)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q", field, ErrNotANumber, strings.TrimSpace(answer))
	}
	if n < min || n > max {
		return 0, &RangeError{Field: field, Value: n, Min: min, Max: max}
	}
	return n, nil
}

// CountOrOne applies the node/task rule: a valid answer is kept, anything
// else becomes 1. The error explains the replacement and is nil for valid
// or empty answers.
func CountOrOne(field, answer string, max int) (int, error) {
	if strings.TrimSpace(answer) == "" {
		return 1, nil
	}
	n, err := ParseBounded(field, answer, 1, max)
	if err != nil {
		return 1, err
	}
	return n, nil
}

// MemoryOrUnset applies the memory rule: a valid answer is kept, anything
// else becomes MemoryUnset.
func MemoryOrUnset(answer string, max int) (int, error) {
	if strings.TrimSpace(answer) == "" {
		return MemoryUnset, nil
	}
	n, err := ParseBounded("memory", answer, 1, max)
	if err != nil {
		return MemoryUnset, err
	}
	return n, nil
}

// ParseMailTypes normalises a comma separated mail type answer.
// An empty answer yields DefaultMailTypes.
func ParseMailTypes(answer string) []string {
	types := utils.SplitList(strings.ToUpper(answer))
	if len(types) == 0 {
		return append([]string(nil), DefaultMailTypes...)
	}
	return utils.UniqueStrings(types)
}
