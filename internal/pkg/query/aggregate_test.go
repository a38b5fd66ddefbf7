package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.False(t, math.IsNaN(Percentage(0, 0)))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 33.3, Percentage(1, 3))
	assert.Equal(t, 66.7, Percentage(2, 3))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(10, 0))
	assert.Equal(t, 2.5, Average(5, 2))
}

func TestCountAndSum(t *testing.T) {
	likes := []int{5, 20, 3}

	assert.Equal(t, 2, Count(likes, func(n int) bool { return n > 4 }))
	assert.Equal(t, 28, SumInt(likes, func(n int) int { return n }))
	assert.Equal(t, 0, Count([]int(nil), func(int) bool { return true }))
	assert.Equal(t, 0, SumInt([]int(nil), func(n int) int { return n }))
}

func TestGroupCount(t *testing.T) {
	statuses := []string{"pending", "accepted", "pending", ""}
	assert.Equal(t, map[string]int{"pending": 2, "accepted": 1}, GroupCount(statuses, func(s string) string { return s }))
}

func TestFind(t *testing.T) {
	v, ok := Find([]string{"a", "b"}, func(s string) bool { return s == "b" })
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = Find([]string{"a"}, func(s string) bool { return s == "z" })
	assert.False(t, ok)
}
