package store

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ladle/internal/recipe"
)

type fakeListing struct {
	mu      sync.Mutex
	queries []recipe.ListQuery
	fetch   func(q recipe.ListQuery) (recipe.Page, error)

	categories []recipe.Category
	catErr     error
}

func (f *fakeListing) FetchRecipes(ctx context.Context, q recipe.ListQuery) (recipe.Page, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	fetch := f.fetch
	f.mu.Unlock()
	if fetch == nil {
		return recipe.Page{}, nil
	}
	return fetch(q)
}

func (f *fakeListing) FetchCategories(ctx context.Context) ([]recipe.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recipe.Category(nil), f.categories...), f.catErr
}

func (f *fakeListing) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeListing) lastQuery() recipe.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func listingPage(total int, names ...string) recipe.Page {
	items := make([]recipe.Recipe, len(names))
	for i, name := range names {
		items[i] = recipe.Recipe{ID: i + 1, DocumentID: name, Name: name}
	}
	return recipe.Page{Items: items, Total: total}
}

func newTestRecipes(t *testing.T, listing Listing) *RecipesStore {
	t.Helper()
	return NewRecipes(RecipesOptions{
		Listing:  listing,
		PageSize: 9,
		Logger:   zerolog.Nop(),
	})
}

func TestRecipesHydrateProjectRoundTrip(t *testing.T) {
	s := newTestRecipes(t, &fakeListing{})

	params, err := url.ParseQuery("search=soup&categories=1,3&page=2")
	require.NoError(t, err)
	s.HydrateFromQuery(params)

	assert.Equal(t, "soup", s.Search())
	assert.Equal(t, []int{1, 3}, s.CategoryIDs())
	assert.Equal(t, 2, s.Page())
	assert.Equal(t, "soup", s.DraftSearch())
	assert.Equal(t, []int{1, 3}, s.DraftCategoryIDs())

	assert.Equal(t, params, s.ToQueryParams())
}

func TestRecipesProjectOmitsDefaults(t *testing.T) {
	s := newTestRecipes(t, &fakeListing{})

	assert.Equal(t, url.Values{}, s.ToQueryParams())
}

func TestRecipesHydrateSkipsInvalidValues(t *testing.T) {
	s := newTestRecipes(t, &fakeListing{})

	s.HydrateFromQuery(url.Values{
		"search":     {"soup"},
		"page":       {"zero"},
		"categories": {"2, nope ,4"},
	})

	assert.Equal(t, 1, s.Page())
	assert.Equal(t, []int{2, 4}, s.CategoryIDs())
}

func TestRecipesPageDropsFromProjectionAfterNavigation(t *testing.T) {
	listing := &fakeListing{fetch: func(q recipe.ListQuery) (recipe.Page, error) {
		return listingPage(20, "a", "b"), nil
	}}
	s := newTestRecipes(t, listing)

	s.HydrateFromQuery(url.Values{"search": {"soup"}, "page": {"2"}})
	require.NoError(t, s.FetchRecipes(context.Background()))

	require.NoError(t, s.SetPage(context.Background(), 1))

	assert.Equal(t, url.Values{"search": {"soup"}}, s.ToQueryParams())
}

func TestRecipesSetPageIgnoresOutOfRange(t *testing.T) {
	listing := &fakeListing{fetch: func(q recipe.ListQuery) (recipe.Page, error) {
		return listingPage(10, "a"), nil
	}}
	s := newTestRecipes(t, listing)
	require.NoError(t, s.FetchRecipes(context.Background()))
	require.Equal(t, 2, s.TotalPages())
	before := listing.queryCount()

	require.NoError(t, s.SetPage(context.Background(), 0))
	require.NoError(t, s.SetPage(context.Background(), 3))

	assert.Equal(t, 1, s.Page())
	assert.Equal(t, before, listing.queryCount())

	require.NoError(t, s.SetPage(context.Background(), 2))
	assert.Equal(t, 2, s.Page())
	assert.Equal(t, 2, listing.lastQuery().Page)
}

func TestRecipesApplyFiltersCommitsDraftAndResetsPage(t *testing.T) {
	listing := &fakeListing{fetch: func(q recipe.ListQuery) (recipe.Page, error) {
		return listingPage(30, "a"), nil
	}}
	s := newTestRecipes(t, listing)

	s.HydrateFromQuery(url.Values{"page": {"3"}})
	s.SetDraftSearch("soup")
	s.SetDraftCategoryIDs([]int{5})

	// Staged edits do not touch the committed state.
	assert.Equal(t, "", s.Search())
	assert.Equal(t, 3, s.Page())

	require.NoError(t, s.ApplyFilters(context.Background()))

	assert.Equal(t, "soup", s.Search())
	assert.Equal(t, []int{5}, s.CategoryIDs())
	assert.Equal(t, 1, s.Page())

	require.NotZero(t, listing.queryCount())
	q := listing.lastQuery()
	assert.Equal(t, "soup", q.Search)
	assert.Equal(t, []int{5}, q.CategoryIDs)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 9, q.PageSize)
}

func TestRecipesFetchErrorKeepsPreviousResults(t *testing.T) {
	healthy := true
	listing := &fakeListing{}
	listing.fetch = func(q recipe.ListQuery) (recipe.Page, error) {
		if !healthy {
			return recipe.Page{}, errors.New("remote down")
		}
		return listingPage(12, "a", "b"), nil
	}
	s := newTestRecipes(t, listing)

	require.NoError(t, s.FetchRecipes(context.Background()))
	require.Len(t, s.PaginatedRecipes(), 2)

	healthy = false
	err := s.FetchRecipes(context.Background())
	require.Error(t, err)

	assert.Len(t, s.PaginatedRecipes(), 2)
	assert.Equal(t, 12, s.Total())
	assert.Equal(t, "remote down", s.Err())
	assert.False(t, s.Loading())

	healthy = true
	require.NoError(t, s.FetchRecipes(context.Background()))
	assert.Empty(t, s.Err())
}

func TestRecipesSupersededFetchIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	listing := &fakeListing{}
	listing.fetch = func(q recipe.ListQuery) (recipe.Page, error) {
		if q.Search == "slow" {
			<-release
			return listingPage(1, "stale"), nil
		}
		return listingPage(1, "fresh"), nil
	}
	s := newTestRecipes(t, listing)

	s.SetDraftSearch("slow")
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.ApplyFilters(context.Background())
	}()
	require.Eventually(t, func() bool { return listing.queryCount() == 1 },
		time.Second, 10*time.Millisecond)

	s.SetDraftSearch("fast")
	require.NoError(t, s.ApplyFilters(context.Background()))

	close(release)
	<-done

	got := s.PaginatedRecipes()
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Name)
	assert.False(t, s.Loading())
}

func TestRecipesTotalPages(t *testing.T) {
	listing := &fakeListing{}
	s := newTestRecipes(t, listing)

	assert.Equal(t, 1, s.TotalPages())

	listing.fetch = func(q recipe.ListQuery) (recipe.Page, error) {
		return listingPage(19, "a"), nil
	}
	require.NoError(t, s.FetchRecipes(context.Background()))
	assert.Equal(t, 3, s.TotalPages())
}

func TestRecipesFetchCategories(t *testing.T) {
	listing := &fakeListing{categories: []recipe.Category{
		{ID: 1, DocumentID: "cat-1", Title: "Soups"},
	}}
	s := newTestRecipes(t, listing)

	require.NoError(t, s.FetchCategories(context.Background()))
	require.Len(t, s.Categories(), 1)
	assert.Empty(t, s.CategoriesErr())

	listing.mu.Lock()
	listing.catErr = errors.New("remote down")
	listing.mu.Unlock()

	err := s.FetchCategories(context.Background())
	require.Error(t, err)
	assert.Len(t, s.Categories(), 1)
	assert.Equal(t, "remote down", s.CategoriesErr())
}
