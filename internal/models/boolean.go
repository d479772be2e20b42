package models

import "strings"

// ParseBool reads the purchased column. Accepted literals are
// case-insensitive true/false, t/f, yes/no, y/n and 1/0. The second return
// value is false for anything else.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true, true
	case "false", "f", "no", "n", "0":
		return false, true
	}
	return false, false
}

// FormatBool renders the canonical True/False literal.
func FormatBool(b bool) string {
	if b {
		return BoolTrue
	}
	return BoolFalse
}
