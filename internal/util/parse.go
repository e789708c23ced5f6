package util

import (
	"strconv"
)

// ParseInt parses a string to an integer, returning defaultValue if parsing fails
func ParseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(s); err == nil {
		return val
	}
	return defaultValue
}

// ParseID parses a positive primary key from a path parameter
func ParseID(s string) (uint, bool) {
	val, err := strconv.ParseUint(s, 10, 0)
	if err != nil || val == 0 {
		return 0, false
	}
	return uint(val), true
}
