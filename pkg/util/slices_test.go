package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueByKeepsFirstOccurrence(t *testing.T) {
	type row struct {
		code  int
		label string
	}

	rows := []row{{1, "a"}, {2, "b"}, {1, "c"}, {3, "d"}, {2, "e"}}

	unique := UniqueBy(rows, func(r row) int { return r.code })

	assert.Equal(t, []row{{1, "a"}, {2, "b"}, {3, "d"}}, unique)
}

func TestFilterLeavesInputUntouched(t *testing.T) {
	input := []int{1, 2, 3, 4}

	even := Filter(input, func(i int) bool { return i%2 == 0 })

	assert.Equal(t, []int{2, 4}, even)
	assert.Equal(t, []int{1, 2, 3, 4}, input)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "10.06,Home-Work", SafeFilename("10.06,Home/Work"))
	assert.Equal(t, "a-b-c", SafeFilename(" a\\b:c "))
}
