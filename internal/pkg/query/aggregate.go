package query

import "math"

// Count returns how many items satisfy pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// SumInt adds up a numeric field.
func SumInt[T any](items []T, field func(T) int) int {
	total := 0
	for _, item := range items {
		total += field(item)
	}
	return total
}

// Percentage returns num/den as a percentage rounded to one decimal. A zero
// denominator yields 0.
func Percentage(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)*1000/float64(den)) / 10
}

// Average returns total/n rounded to one decimal, or 0 for n == 0.
func Average(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(float64(total)*10/float64(n)) / 10
}

// GroupCount counts items per key. Items whose key is empty are skipped.
func GroupCount[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, item := range items {
		if k := key(item); k != "" {
			out[k]++
		}
	}
	return out
}

// Find returns the first item satisfying pred.
func Find[T any](items []T, pred func(T) bool) (T, bool) {
	for _, item := range items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
