package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"ladle/internal/recipe"
)

// DetailStore loads one fully populated recipe for the detail view.
type DetailStore struct {
	notifier

	mu      sync.Mutex
	fetcher RecipeFetcher
	log     zerolog.Logger

	detail  *recipe.Detail
	loading bool
	errMsg  string
}

// NewDetail builds a DetailStore.
func NewDetail(fetcher RecipeFetcher, log zerolog.Logger) *DetailStore {
	return &DetailStore{fetcher: fetcher, log: log}
}

// Fetch loads the recipe for a document id, replacing whatever was
// shown before.
func (s *DetailStore) Fetch(ctx context.Context, documentID string) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.detail = nil
	s.mu.Unlock()
	s.notify()

	detail, err := s.fetcher.FetchRecipe(ctx, documentID)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
	} else {
		s.detail = &detail
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.log.Warn().Err(err).Str("recipe", documentID).Msg("recipe fetch failed")
	}
	return err
}

// Reset clears the store when the detail view closes.
func (s *DetailStore) Reset() {
	s.mu.Lock()
	s.detail = nil
	s.errMsg = ""
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

// Detail returns a copy of the loaded recipe, or nil while absent.
func (s *DetailStore) Detail() *recipe.Detail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return nil
	}
	dup := *s.detail
	dup.Ingredients = append([]recipe.Ingredient(nil), s.detail.Ingredients...)
	dup.Equipment = append([]recipe.Equipment(nil), s.detail.Equipment...)
	dup.Directions = append([]recipe.Direction(nil), s.detail.Directions...)
	return &dup
}

// Loading reports whether a fetch is in flight.
func (s *DetailStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last fetch error, empty when healthy.
func (s *DetailStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
