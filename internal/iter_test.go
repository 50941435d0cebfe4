package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	first := slices.All([]string{"a", "b"})
	second := slices.All([]string{"c"})

	var keys []int
	var values []string
	for key, value := range IterSeq2Concat(first, second) {
		keys = append(keys, key)
		values = append(values, value)
	}
	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"a", "b", "c"}, values)

	merged := maps.Collect(IterSeq2Concat(
		maps.All(map[string]int{"x": 1}),
		maps.All(map[string]int{"x": 2, "y": 3}),
	))
	assert.Equal(map[string]int{"x": 2, "y": 3}, merged)

	count := 0
	for range IterSeq2Concat(first, second) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)

	for range IterSeq2Concat[int, string]() {
		assert.Fail("empty concatenation yielded")
	}
}
