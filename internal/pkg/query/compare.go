package query

import (
	"cmp"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two records; negative means a sorts before b.
type Comparator[T any] func(a, b T) int

// Collators are not safe for concurrent use, so each sort borrows one.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.English, collate.IgnoreCase, collate.Loose)
	},
}

// CompareText is a locale-aware comparison of two strings.
func CompareText(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(a, b)
}

// ByText sorts ascending by a string field using locale-aware collation.
func ByText[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int {
		return CompareText(field(a), field(b))
	}
}

// ByIntDesc sorts by a numeric counter, largest first.
func ByIntDesc[T any](field func(T) int) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(field(b), field(a))
	}
}

// ByIntAsc sorts by a numeric field, smallest first.
func ByIntAsc[T any](field func(T) int) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// ByTimeDesc sorts most recent first. Zero times sort last.
func ByTimeDesc[T any](field func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		ta, tb := field(a), field(b)
		switch {
		case ta.IsZero() && tb.IsZero():
			return 0
		case ta.IsZero():
			return 1
		case tb.IsZero():
			return -1
		}
		return tb.Compare(ta)
	}
}

// ByTimeAsc sorts earliest first. Zero times sort last.
func ByTimeAsc[T any](field func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		ta, tb := field(a), field(b)
		switch {
		case ta.IsZero() && tb.IsZero():
			return 0
		case ta.IsZero():
			return 1
		case tb.IsZero():
			return -1
		}
		return ta.Compare(tb)
	}
}

// ParseTimestamp parses the timestamp layouts accepted from clients. The zero
// time is returned for values that do not parse.
func ParseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
