package utils

import (
	"strconv"
)

// ParseID parses a positive database id. ok is false for anything else.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ParsePage reads a 0-based page number. An empty string is page 0.
// Negative values are returned as-is so callers can reject them.
func ParsePage(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	page, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return page, true
}
