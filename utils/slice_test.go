package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	even := Filter([]int{1, 2, 3, 4, 5}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
	assert.Empty(t, Filter([]int{}, func(n int) bool { return true }))
}

func TestMap(t *testing.T) {
	labels := Map([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, labels)
}

func TestFind(t *testing.T) {
	items := []string{"a", "b", "c"}
	found := Find(items, func(s *string) bool { return *s == "b" })
	assert.NotNil(t, found)
	assert.Equal(t, "b", *found)
	assert.Nil(t, Find(items, func(s *string) bool { return *s == "z" }))
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy([]int{1, 2, 3, 4, 5}, func(n int) int { return n % 2 })
	assert.Equal(t, []int{2, 4}, groups[0])
	assert.Equal(t, []int{1, 3, 5}, groups[1])
}

func TestUniq(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, Uniq([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, Uniq([]int(nil)))
}
