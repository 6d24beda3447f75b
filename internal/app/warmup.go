package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ladle/internal/store"
)

const warmupTimeout = 30 * time.Second

// startWarmup launches a one-shot background refresh of the data the
// first screens need: the favourites list and the category filter
// options. Failures are logged and the cached or empty state stands.
func startWarmup(ctx context.Context, favs *store.FavouritesStore, recipes *store.RecipesStore, log zerolog.Logger) {
	go func() {
		wctx, cancel := context.WithTimeout(ctx, warmupTimeout)
		defer cancel()

		if err := favs.Refresh(wctx); err != nil {
			log.Warn().Err(err).Msg("favourites warmup failed")
		}
		if err := recipes.FetchCategories(wctx); err != nil {
			log.Warn().Err(err).Msg("categories warmup failed")
		}
	}()
}
