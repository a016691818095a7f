// Package author locates a researcher inside free-text author lists.
package author

import (
	"strings"
)

// Query is a researcher name split into first and last parts.
type Query struct {
	First string // First name (may be empty for last-name-only queries)
	Last  string // Last name
}

// ParseQuery parses a researcher name.
//
// Supported formats:
//   - "Horcas"              → last="Horcas" (single word = last name only)
//   - "Jose Miguel Horcas"  → first="Jose Miguel", last="Horcas"
//   - "Horcas, Jose Miguel" → first="Jose Miguel", last="Horcas"
//
// Names are trimmed but case is preserved.
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	// "Last, First"
	if idx := strings.Index(input, ","); idx > 0 {
		last := strings.TrimSpace(input[:idx])
		first := strings.TrimSpace(input[idx+1:])
		return Query{First: first, Last: last}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Query{Last: parts[0]}
	}

	last := parts[len(parts)-1]
	first := strings.Join(parts[:len(parts)-1], " ")
	return Query{First: first, Last: last}
}

// FullName returns the name in "First Last" order, the order author lists
// are compared in.
func (q Query) FullName() string {
	if q.First == "" {
		return q.Last
	}
	return q.First + " " + q.Last
}

// IsEmpty reports whether the query has no name at all.
func (q Query) IsEmpty() bool {
	return q.First == "" && q.Last == ""
}
