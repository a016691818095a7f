package publication

import "strings"

// RawRecord is one bibliography entry as produced by a citation parser.
// Field names are lower-case.
type RawRecord struct {
	Key       string            `json:"key"`
	EntryType string            `json:"entry_type"`
	Fields    map[string]string `json:"fields"`
}

// Get returns the value of a field, or "" if absent.
func (r RawRecord) Get(name string) string {
	return r.Fields[strings.ToLower(name)]
}

// Lookup returns the value of a field and whether it is present.
func (r RawRecord) Lookup(name string) (string, bool) {
	v, ok := r.Fields[strings.ToLower(name)]
	return v, ok
}

// FirstOf returns the first non-empty value among the named fields.
func (r RawRecord) FirstOf(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(r.Get(n)); v != "" {
			return v
		}
	}
	return ""
}
