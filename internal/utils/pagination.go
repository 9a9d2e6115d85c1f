// Package utils holds small helpers shared across layers, free of any
// domain knowledge.
package utils

import "strconv"

// Page is the standard envelope for paginated listings. Total is the full
// unfiltered count for the scope, independent of Limit and Offset.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ClampLimit normalizes a caller-supplied page size: non-positive values
// fall back to def, values above max are capped at max.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// AtoiDefault parses s as an int, returning def when s is empty or not a
// number. Handy for query parameters.
func AtoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
