package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"ladle/internal/recipe"
)

// RandomStore serves the "surprise me" flow: read the collection size,
// pick a uniform random offset, fetch that single recipe.
type RandomStore struct {
	notifier

	mu  sync.Mutex
	src RandomSource
	log zerolog.Logger
	rnd func(n int) int

	recipe  *recipe.Recipe
	loading bool
	errMsg  string
}

// RandomOptions configure a RandomStore. Rand is overridable for tests
// and defaults to the shared PRNG.
type RandomOptions struct {
	Source RandomSource
	Logger zerolog.Logger
	Rand   func(n int) int
}

// NewRandom builds a RandomStore.
func NewRandom(opts RandomOptions) *RandomStore {
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.IntN
	}
	return &RandomStore{src: opts.Source, log: opts.Logger, rnd: rnd}
}

// Fetch picks and loads a random recipe.
func (s *RandomStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.recipe = nil
	s.mu.Unlock()
	s.notify()

	picked, err := s.pick(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
	} else {
		s.recipe = &picked
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.log.Warn().Err(err).Msg("random recipe fetch failed")
	}
	return err
}

func (s *RandomStore) pick(ctx context.Context) (recipe.Recipe, error) {
	total, err := s.src.CountRecipes(ctx)
	if err != nil {
		return recipe.Recipe{}, err
	}
	if total <= 0 {
		return recipe.Recipe{}, fmt.Errorf("no recipes available")
	}
	return s.src.RecipeAt(ctx, s.rnd(total))
}

// Reset clears the picked recipe and any error.
func (s *RandomStore) Reset() {
	s.mu.Lock()
	s.recipe = nil
	s.errMsg = ""
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

// Recipe returns a copy of the picked recipe, or nil while absent.
func (s *RandomStore) Recipe() *recipe.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recipe == nil {
		return nil
	}
	dup := *s.recipe
	return &dup
}

// Loading reports whether a fetch is in flight.
func (s *RandomStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last fetch error, empty when healthy.
func (s *RandomStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
