package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ladle/internal/recipe"
)

type fakeFavouriteService struct {
	mu      sync.Mutex
	list    []recipe.Recipe
	listErr error
	addErr  error
	remErr  error
	added   []int
	removed []int
}

func (f *fakeFavouriteService) List(ctx context.Context) ([]recipe.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recipe.Recipe(nil), f.list...), f.listErr
}

func (f *fakeFavouriteService) Add(ctx context.Context, recipeID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, recipeID)
	return f.addErr
}

func (f *fakeFavouriteService) Remove(ctx context.Context, recipeID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, recipeID)
	return f.remErr
}

func (f *fakeFavouriteService) addCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.added)
}

func (f *fakeFavouriteService) removeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.removed)
}

func fav(id int, documentID, name string) recipe.Recipe {
	return recipe.Recipe{ID: id, DocumentID: documentID, Name: name}
}

func newTestFavourites(t *testing.T, cache Snapshotter, svc FavouriteService) *FavouritesStore {
	t.Helper()
	return NewFavourites(FavouritesOptions{
		Context: context.Background(),
		Cache:   cache,
		Service: svc,
		Logger:  zerolog.Nop(),
	})
}

func TestFavouritesToggleAddsAndRemoves(t *testing.T) {
	svc := &fakeFavouriteService{}
	s := newTestFavourites(t, newMemSnapshot(), svc)

	r := fav(7, "doc-7", "Shakshuka")
	s.Toggle(r)

	assert.True(t, s.IsFavourite("doc-7"))
	require.Eventually(t, func() bool { return svc.addCalls() == 1 },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{7}, svc.added)

	s.Toggle(r)

	assert.False(t, s.IsFavourite("doc-7"))
	require.Eventually(t, func() bool { return svc.removeCalls() == 1 },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{7}, svc.removed)
}

func TestFavouritesToggleRollsBackOnFailure(t *testing.T) {
	svc := &fakeFavouriteService{}
	s := newTestFavourites(t, newMemSnapshot(), svc)

	existing := []recipe.Recipe{
		fav(1, "doc-1", "Borscht"),
		fav(2, "doc-2", "Pelmeni"),
	}
	for _, r := range existing {
		s.Toggle(r)
	}
	require.Eventually(t, func() bool { return svc.addCalls() == 2 },
		time.Second, 10*time.Millisecond)
	require.Equal(t, 2, s.Len())

	svc.mu.Lock()
	svc.addErr = errors.New("remote down")
	svc.mu.Unlock()

	s.Toggle(fav(3, "doc-3", "Khachapuri"))
	assert.True(t, s.IsFavourite("doc-3"))

	// The failed add restores the exact pre-toggle list.
	require.Eventually(t, func() bool { return !s.IsFavourite("doc-3") },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, existing, s.Items())
}

func TestFavouritesRemoveRollsBackOnFailure(t *testing.T) {
	svc := &fakeFavouriteService{}
	s := newTestFavourites(t, newMemSnapshot(), svc)

	r := fav(5, "doc-5", "Plov")
	s.Toggle(r)
	require.Eventually(t, func() bool { return svc.addCalls() == 1 },
		time.Second, 10*time.Millisecond)

	svc.mu.Lock()
	svc.remErr = errors.New("remote down")
	svc.mu.Unlock()

	s.Remove(r)
	assert.False(t, s.IsFavourite("doc-5"))

	require.Eventually(t, func() bool { return s.IsFavourite("doc-5") },
		time.Second, 10*time.Millisecond)
}

func TestFavouritesRemoveAbsentIsNoop(t *testing.T) {
	svc := &fakeFavouriteService{}
	s := newTestFavourites(t, newMemSnapshot(), svc)

	s.Remove(fav(9, "doc-9", "Syrniki"))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, svc.removeCalls())
}

func TestFavouritesRefreshReplacesList(t *testing.T) {
	svc := &fakeFavouriteService{list: []recipe.Recipe{
		fav(1, "doc-1", "Borscht"),
		fav(2, "doc-2", "Pelmeni"),
	}}
	cache := newMemSnapshot()
	s := newTestFavourites(t, cache, svc)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Loading())

	// The refreshed list is persisted and restored by a new store.
	restored := newTestFavourites(t, cache, svc)
	assert.Equal(t, s.Items(), restored.Items())
}

func TestFavouritesRefreshFailureKeepsPrevious(t *testing.T) {
	svc := &fakeFavouriteService{list: []recipe.Recipe{fav(1, "doc-1", "Borscht")}}
	s := newTestFavourites(t, newMemSnapshot(), svc)
	require.NoError(t, s.Refresh(context.Background()))

	svc.mu.Lock()
	svc.listErr = errors.New("remote down")
	svc.mu.Unlock()

	err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Loading())
}

func TestFavouritesCorruptSnapshotStartsEmpty(t *testing.T) {
	cache := newMemSnapshot()
	cache.data[favouritesCacheKey] = []byte("]]")

	s := newTestFavourites(t, cache, &fakeFavouriteService{})

	assert.Equal(t, 0, s.Len())
}
