package store

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"ladle/internal/recipe"
)

// FavouritesStore is the optimistic favourites list. Membership flips
// apply locally first and are confirmed remotely; when the remote call
// fails the snapshot captured at call time is restored exactly, so the
// UI ends up reflecting true membership.
type FavouritesStore struct {
	notifier

	mu      sync.Mutex
	items   []recipe.Recipe
	loading bool

	cache Snapshotter
	svc   FavouriteService
	log   zerolog.Logger
	ctx   context.Context
}

// FavouritesOptions configure a FavouritesStore.
type FavouritesOptions struct {
	Context context.Context
	Cache   Snapshotter
	Service FavouriteService
	Logger  zerolog.Logger
}

// NewFavourites builds a FavouritesStore and restores the persisted
// snapshot. Missing or corrupt snapshots start the list empty.
func NewFavourites(opts FavouritesOptions) *FavouritesStore {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	s := &FavouritesStore{
		cache: opts.Cache,
		svc:   opts.Service,
		log:   opts.Logger,
		ctx:   ctx,
	}

	var saved []recipe.Recipe
	found, err := s.cache.Load(favouritesCacheKey, &saved)
	if err != nil {
		s.log.Warn().Err(err).Msg("favourites snapshot unreadable, starting empty")
	} else if found {
		s.items = saved
	}
	return s
}

// Refresh replaces the list from the remote source of truth. On failure
// the previous list stays visible and the error is returned for the
// caller to report.
func (s *FavouritesStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	items, err := s.svc.List(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.items = items
		s.persistLocked()
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.log.Warn().Err(err).Msg("favourites refresh failed")
	}
	return err
}

// Toggle flips a recipe's membership. The flip is applied locally and
// persisted before the remote call; a failed remote call restores the
// pre-toggle snapshot.
func (s *FavouritesStore) Toggle(r recipe.Recipe) {
	s.mu.Lock()
	prev := slices.Clone(s.items)
	idx := s.indexLocked(r.DocumentID)
	present := idx >= 0
	if present {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	} else {
		s.items = append(s.items, r)
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()

	go func() {
		ctx, cancel := context.WithTimeout(s.ctx, syncTimeout)
		defer cancel()

		var err error
		if present {
			err = s.svc.Remove(ctx, r.ID)
		} else {
			err = s.svc.Add(ctx, r.ID)
		}
		if err == nil {
			return
		}

		s.log.Warn().Err(err).Str("recipe", r.DocumentID).Bool("removing", present).
			Msg("favourite sync failed, rolling back")
		s.rollback(prev)
	}()
}

// Remove deletes a recipe from the list with the same rollback contract
// as Toggle. Removing an absent recipe is a no-op.
func (s *FavouritesStore) Remove(r recipe.Recipe) {
	s.mu.Lock()
	idx := s.indexLocked(r.DocumentID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	prev := slices.Clone(s.items)
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()

	go func() {
		ctx, cancel := context.WithTimeout(s.ctx, syncTimeout)
		defer cancel()
		if err := s.svc.Remove(ctx, r.ID); err != nil {
			s.log.Warn().Err(err).Str("recipe", r.DocumentID).Msg("favourite remove failed, rolling back")
			s.rollback(prev)
		}
	}()
}

// IsFavourite reports whether a document id is currently in the list.
func (s *FavouritesStore) IsFavourite(documentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(documentID) >= 0
}

// Items returns an independent copy of the favourites.
func (s *FavouritesStore) Items() []recipe.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Len returns the number of favourites.
func (s *FavouritesStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Loading reports whether a Refresh is in flight.
func (s *FavouritesStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *FavouritesStore) rollback(prev []recipe.Recipe) {
	s.mu.Lock()
	s.items = prev
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *FavouritesStore) indexLocked(documentID string) int {
	for i := range s.items {
		if s.items[i].DocumentID == documentID {
			return i
		}
	}
	return -1
}

func (s *FavouritesStore) persistLocked() {
	if err := s.cache.Save(favouritesCacheKey, s.items); err != nil {
		s.log.Error().Err(err).Msg("persist favourites snapshot failed")
	}
}
