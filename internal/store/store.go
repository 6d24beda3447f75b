// Package store holds the optimistic client state: the cart, the
// favourites list, and the query-bound recipe listing.
//
// Every store applies user mutations to its in-memory state
// immediately, writes the new snapshot through to the durable cache,
// and only then talks to the remote service. Cart mutations are
// best-effort accounting: a failed remote call is logged and local
// state stands. Favourites are strict membership: a failed remote call
// rolls the optimistic change back. Stores never share state; each is
// constructed with its own collaborators and guarded by its own mutex.
package store

import (
	"context"
	"time"

	"ladle/internal/recipe"
)

// Snapshot keys in the durable cache, one per optimistic collection.
const (
	cartCacheKey       = "cart"
	favouritesCacheKey = "favourites"
)

// syncTimeout bounds each fire-and-forget remote call.
const syncTimeout = 15 * time.Second

// CartSyncer reports cart quantity changes to the remote accounting
// endpoint. Implemented by *strapi.Client.
type CartSyncer interface {
	AddQuantity(ctx context.Context, quantity int) error
	RemoveQuantity(ctx context.Context, quantity int) error
}

// FavouriteService is the remote source of truth for the favourites
// collection. Implemented by *strapi.Client.
type FavouriteService interface {
	List(ctx context.Context) ([]recipe.Recipe, error)
	Add(ctx context.Context, recipeID int) error
	Remove(ctx context.Context, recipeID int) error
}

// Listing serves the paginated, filterable recipe listing and its
// category filter options. Implemented by *strapi.Client.
type Listing interface {
	FetchRecipes(ctx context.Context, q recipe.ListQuery) (recipe.Page, error)
	FetchCategories(ctx context.Context) ([]recipe.Category, error)
}

// RecipeFetcher loads a single fully populated recipe.
type RecipeFetcher interface {
	FetchRecipe(ctx context.Context, documentID string) (recipe.Detail, error)
}

// RandomSource supplies what the random-recipe flow needs: the
// collection size and single-recipe access by offset.
type RandomSource interface {
	CountRecipes(ctx context.Context) (int, error)
	RecipeAt(ctx context.Context, offset int) (recipe.Recipe, error)
}

// Snapshotter persists collection snapshots between sessions.
// Implemented by *cache.Cache.
type Snapshotter interface {
	Load(key string, dest any) (bool, error)
	Save(key string, v any) error
}
