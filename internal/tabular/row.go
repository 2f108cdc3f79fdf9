package tabular

import "strings"

// Row is one record of tabular input: an ordered mapping from header name to
// scalar value. Keys preserve their first-seen order so downstream documents
// can reproduce the curator's column ordering.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// Get returns the raw value for key, or the empty string when absent.
func (r *Row) Get(key string) string {
	return r.values[key]
}

// Has reports whether key is present with a non-blank value.
func (r *Row) Has(key string) bool {
	return strings.TrimSpace(r.values[key]) != ""
}

// Set stores value under key, appending the key to the ordering when new.
// Existing keys keep their original position.
func (r *Row) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// SetDefault stores value under key only when the key is absent or blank.
func (r *Row) SetDefault(key, value string) {
	if r.Has(key) {
		return
	}
	r.Set(key, value)
}

// Keys returns the row's keys in first-seen order.
func (r *Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of keys on the row.
func (r *Row) Len() int {
	return len(r.keys)
}
