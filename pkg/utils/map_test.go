package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, Map([]int{1, 2}, strconv.Itoa))
	assert.Empty(t, Map([]int{}, strconv.Itoa))
}

func TestKeys(t *testing.T) {
	input := map[string]func(){"b": nil, "a": nil, "c": nil}

	assert.ElementsMatch(t, []string{"a", "b", "c"}, Keys(input))
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(input))
}
