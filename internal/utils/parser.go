package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizeRe = regexp.MustCompile(`^(\d+)(G|GB|M|MB|T|TB)?$`)

// ParseSizeToMB converts strings like "10G", "500M", "1024" into Megabytes (int).
// Default unit is MB if no suffix is provided. A trailing "+" (as printed by
// sinfo for heterogeneous partitions) is ignored.
func ParseSizeToMB(sizeStr string) (int, error) {
	s := strings.TrimSpace(strings.ToUpper(sizeStr))
	s = strings.TrimSuffix(s, "+")

	matches := sizeRe.FindStringSubmatch(s)
	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s (expected '10G', '500M', etc.)", sizeStr)
	}

	val, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", matches[1])
	}

	switch matches[2] {
	case "G", "GB":
		return val * 1024, nil
	case "T", "TB":
		return val * 1048576, nil
	default:
		return val, nil
	}
}

// IsAffirmative reports whether an answer to a yes/no question means yes.
// Only a single "y" or "Y" counts; everything else, including "yes", is no.
func IsAffirmative(answer string) bool {
	return answer == "y" || answer == "Y"
}

// ParseCount parses a non-negative decimal integer.
// Signs, whitespace inside the number and unit suffixes are rejected.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a non-negative integer: %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return n, nil
}

// SplitList splits a comma separated list, trimming blanks and dropping
// empty items. Order is preserved.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// UniqueStrings removes duplicates and empty strings while keeping first-seen order.
func UniqueStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
