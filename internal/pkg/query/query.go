// Package query derives filtered, sorted views from in-memory record lists.
//
// A Schema describes, for one record type, which fields take part in free-text
// search, which categorical dimensions can be filtered on and which sort keys
// exist. Applying a Criteria to a source slice never modifies the source.
package query

import (
	"slices"
	"strings"
)

// All is the sentinel filter value meaning "no constraint".
const All = "all"

// Criteria is the user-controlled filter state for one list view.
type Criteria struct {
	Query   string            `json:"query,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	Sort    string            `json:"sort,omitempty"`
}

// WithFilter returns a copy of c with one more dimension constraint.
func (c Criteria) WithFilter(dimension, value string) Criteria {
	filters := make(map[string]string, len(c.Filters)+1)
	for k, v := range c.Filters {
		filters[k] = v
	}
	filters[dimension] = value
	c.Filters = filters
	return c
}

// Dimension extracts a categorical attribute. ok is false when the record has no
// value for it.
type Dimension[T any] func(item T) (value string, ok bool)

// Schema describes how records of type T are searched, filtered and sorted.
type Schema[T any] struct {
	Text       func(item T) []string
	Dimensions map[string]Dimension[T]
	Sorts      map[string]Comparator[T]
}

// IsSentinel reports whether a filter value places no constraint.
func IsSentinel(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, All)
}

// MatchesText is a case-insensitive substring test of query against fields.
// An empty query matches everything; empty fields never match.
func MatchesText(fields []string, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// MatchesDimension reports whether a record's attribute satisfies a filter value.
func MatchesDimension(value string, present bool, want string) bool {
	if IsSentinel(want) {
		return true
	}
	if !present {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(want))
}

// Matches is the AND of the text predicate and every filter in c. Filters naming
// a dimension the schema does not know exclude nothing.
func (s Schema[T]) Matches(item T, c Criteria) bool {
	ok := s.matchText(item, c.Query)
	for name, want := range c.Filters {
		dim, known := s.Dimensions[name]
		if !known {
			continue
		}
		value, present := dim(item)
		ok = MatchesDimension(value, present, want) && ok
	}
	return ok
}

func (s Schema[T]) matchText(item T, q string) bool {
	if strings.TrimSpace(q) == "" {
		return true
	}
	if s.Text == nil {
		return false
	}
	return MatchesText(s.Text(item), q)
}

// Filter returns the records of items that match c, in source order.
func (s Schema[T]) Filter(items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if s.Matches(item, c) {
			out = append(out, item)
		}
	}
	return out
}

// Apply filters items by c and orders the result by c.Sort. An unknown or empty
// sort key keeps source order. The returned slice never aliases items.
func (s Schema[T]) Apply(items []T, c Criteria) []T {
	out := s.Filter(items, c)
	if cmp, ok := s.Sorts[strings.ToLower(strings.TrimSpace(c.Sort))]; ok && cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// SortKeys lists the sort keys the schema supports.
func (s Schema[T]) SortKeys() []string {
	keys := make([]string, 0, len(s.Sorts))
	for k := range s.Sorts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Fields is a small helper for Text functions that flattens scalar fields and
// slices into one list.
func Fields(values ...any) []string {
	var out []string
	for _, v := range values {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case []string:
			out = append(out, t...)
		}
	}
	return out
}
