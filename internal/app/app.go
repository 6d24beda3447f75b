package app

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"ladle/internal/cache"
	"ladle/internal/config"
	"ladle/internal/prefs"
	"ladle/internal/store"
	"ladle/internal/strapi"
	"ladle/internal/ui"
)

// Options configure the Ladle application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/ladle/prefs.toml
	Query      string // optional deep link, e.g. "search=soup&page=2"
}

// Run boots the Ladle TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	client, err := strapi.NewClient(strapi.Options{
		BaseURL:      cfg.APIBaseURL,
		MediaBaseURL: cfg.MediaBaseURL,
		BearerToken:  cfg.BearerToken,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	snapshots := cache.New(cfg.CacheDir)

	cartStore := store.NewCart(store.CartOptions{
		Context: ctx,
		Cache:   snapshots,
		Syncer:  client,
		Logger:  logger,
	})
	favStore := store.NewFavourites(store.FavouritesOptions{
		Context: ctx,
		Cache:   snapshots,
		Service: client,
		Logger:  logger,
	})
	recipesStore := store.NewRecipes(store.RecipesOptions{
		Listing:  client,
		PageSize: cfg.PageSize,
		Logger:   logger,
	})
	detailStore := store.NewDetail(client, logger)
	randomStore := store.NewRandom(store.RandomOptions{
		Source: client,
		Logger: logger,
	})

	if opts.Query != "" {
		params, err := url.ParseQuery(strings.TrimPrefix(opts.Query, "?"))
		if err != nil {
			return fmt.Errorf("parse query %q: %w", opts.Query, err)
		}
		recipesStore.HydrateFromQuery(params)
	}

	// Warm the favourites and category data while the UI boots.
	startWarmup(ctx, favStore, recipesStore, logger)

	uiOpts := ui.Options{
		Context:    ctx,
		Cart:       cartStore,
		Favourites: favStore,
		Recipes:    recipesStore,
		Detail:     detailStore,
		Random:     randomStore,
		Config:     &cfg,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// newLogger opens the application log file and returns a structured
// logger writing to it. An empty path disables logging.
func newLogger(path string) (zerolog.Logger, func(), error) {
	if strings.TrimSpace(path) == "" {
		return zerolog.Nop(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, func() { _ = file.Close() }, nil
}
