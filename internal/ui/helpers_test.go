package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly ten", truncate("exactly ten", 11))
	assert.Equal(t, "long st...", truncate("long string here", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "", truncate("anything", 0))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrap("one two three", 8))
	assert.Equal(t, "untouched", wrap("untouched", 0))
	assert.Equal(t, "", wrap("", 10))
}

func TestSplitIngredientInput(t *testing.T) {
	name, amount := splitIngredientInput("Flour: 200 g")
	assert.Equal(t, "Flour", name)
	assert.Equal(t, "200 g", amount)

	name, amount = splitIngredientInput("  Salt  ")
	assert.Equal(t, "Salt", name)
	assert.Empty(t, amount)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(0, 0))
	assert.Equal(t, 0, clamp(-3, 5))
	assert.Equal(t, 4, clamp(9, 5))
	assert.Equal(t, 2, clamp(2, 5))
}
