package prosperworks

import (
	"slices"
	"sort"
	"time"
)

// ValidateFields fails on the first key of fields that is not in allowed.
// Keys are checked in sorted order so the reported field is deterministic.
// label names the operation ("create", "search") in the error.
func ValidateFields(fields map[string]any, allowed []string, label string) error {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		if !slices.Contains(allowed, key) {
			return &InvalidFieldError{Field: key, Operation: label}
		}
	}

	return nil
}

// Timestamp converts t to the whole Unix seconds the search endpoints expect
// for date filters. Fractions are truncated toward zero.
func Timestamp(t time.Time) int64 {
	sec := t.Unix()
	if sec < 0 && t.Nanosecond() > 0 {
		sec++
	}

	return sec
}

// TimestampFloat converts t to Unix seconds keeping the fractional part.
func TimestampFloat(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}
