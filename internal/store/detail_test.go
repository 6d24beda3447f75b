package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ladle/internal/recipe"
)

type fetcherFunc func(ctx context.Context, documentID string) (recipe.Detail, error)

func (f fetcherFunc) FetchRecipe(ctx context.Context, documentID string) (recipe.Detail, error) {
	return f(ctx, documentID)
}

func TestDetailFetch(t *testing.T) {
	want := recipe.Detail{
		Recipe:   recipe.Recipe{ID: 4, DocumentID: "doc-4", Name: "Khinkali"},
		Servings: 6,
		Ingredients: []recipe.Ingredient{
			{ID: "1", Name: "Flour", Amount: "500", Unit: "g"},
		},
		Directions: []recipe.Direction{{ID: 1, Description: "Knead the dough."}},
	}
	var gotID string
	s := NewDetail(fetcherFunc(func(ctx context.Context, documentID string) (recipe.Detail, error) {
		gotID = documentID
		return want, nil
	}), zerolog.Nop())

	require.NoError(t, s.Fetch(context.Background(), "doc-4"))

	assert.Equal(t, "doc-4", gotID)
	require.NotNil(t, s.Detail())
	assert.Equal(t, want, *s.Detail())
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
}

func TestDetailFetchFailure(t *testing.T) {
	s := NewDetail(fetcherFunc(func(ctx context.Context, documentID string) (recipe.Detail, error) {
		return recipe.Detail{}, errors.New("remote down")
	}), zerolog.Nop())

	err := s.Fetch(context.Background(), "doc-4")

	require.Error(t, err)
	assert.Nil(t, s.Detail())
	assert.Equal(t, "remote down", s.Err())
	assert.False(t, s.Loading())
}

func TestDetailReset(t *testing.T) {
	s := NewDetail(fetcherFunc(func(ctx context.Context, documentID string) (recipe.Detail, error) {
		return recipe.Detail{Recipe: recipe.Recipe{DocumentID: documentID}}, nil
	}), zerolog.Nop())
	require.NoError(t, s.Fetch(context.Background(), "doc-4"))
	require.NotNil(t, s.Detail())

	s.Reset()

	assert.Nil(t, s.Detail())
	assert.Empty(t, s.Err())
}

func TestDetailReturnsIndependentCopy(t *testing.T) {
	s := NewDetail(fetcherFunc(func(ctx context.Context, documentID string) (recipe.Detail, error) {
		return recipe.Detail{
			Recipe:      recipe.Recipe{DocumentID: documentID},
			Ingredients: []recipe.Ingredient{{ID: "1", Name: "Flour"}},
		}, nil
	}), zerolog.Nop())
	require.NoError(t, s.Fetch(context.Background(), "doc-4"))

	got := s.Detail()
	got.Ingredients[0].Name = "mutated"

	assert.Equal(t, "Flour", s.Detail().Ingredients[0].Name)
}
