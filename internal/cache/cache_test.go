package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ladle/internal/recipe"
)

func TestSaveThenLoadRoundTrips(t *testing.T) {
	c := New(t.TempDir())

	items := []recipe.CartItem{
		{
			Recipe:   recipe.Recipe{DocumentID: "r1", Name: "Borscht"},
			Quantity: 3,
			Ingredients: []recipe.Ingredient{
				{ID: "7", Name: "Beetroot", Amount: "2"},
			},
		},
	}
	require.NoError(t, c.Save("cart", items))

	var loaded []recipe.CartItem
	found, err := c.Load("cart", &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, items, loaded)
}

func TestLoadMissingReportsAbsent(t *testing.T) {
	c := New(t.TempDir())

	var dest []recipe.CartItem
	found, err := c.Load("favourites", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, dest)
}

func TestLoadCorruptReportsError(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart.json"), []byte("{not json"), 0o644))

	var dest []recipe.CartItem
	_, err := c.Load("cart", &dest)
	assert.Error(t, err)
}

func TestSaveCreatesMissingDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := New(dir)

	require.NoError(t, c.Save("cart", []recipe.CartItem{}))

	var dest []recipe.CartItem
	found, err := c.Load("cart", &dest)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	c := New(t.TempDir())

	require.NoError(t, c.Save("cart", []recipe.CartItem{{Recipe: recipe.Recipe{DocumentID: "a"}, Quantity: 1}}))
	require.NoError(t, c.Save("cart", []recipe.CartItem{{Recipe: recipe.Recipe{DocumentID: "b"}, Quantity: 2}}))

	var loaded []recipe.CartItem
	found, err := c.Load("cart", &loaded)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b", loaded[0].DocumentID)
	assert.Equal(t, 2, loaded[0].Quantity)
}

func TestEmptyKeyRejected(t *testing.T) {
	c := New(t.TempDir())

	assert.Error(t, c.Save("", struct{}{}))
	_, err := c.Load("", &struct{}{})
	assert.Error(t, err)
}
