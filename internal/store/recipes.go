package store

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"ladle/internal/recipe"
)

// defaultPageSize matches the listing grid of the original product.
const defaultPageSize = 9

// RecipesStore is the query-bound recipe listing: one remote-backed
// page of results driven by a committed query state, plus a draft query
// state the user edits freely until an explicit apply.
//
// The committed state round-trips through URL query parameters so a
// listing view is deep-linkable; see HydrateFromQuery and ToQueryParams.
type RecipesStore struct {
	notifier

	mu      sync.Mutex
	listing Listing
	log     zerolog.Logger

	pageSize int

	// committed query state: drives fetches.
	search      string
	categoryIDs []int
	page        int

	// draft query state: staged edits, no fetch until ApplyFilters.
	draftSearch      string
	draftCategoryIDs []int

	recipes    []recipe.Recipe
	total      int
	categories []recipe.Category

	loading  bool
	errMsg   string
	catErr   string
	fetchGen uint64
}

// RecipesOptions configure a RecipesStore.
type RecipesOptions struct {
	Listing  Listing
	PageSize int
	Logger   zerolog.Logger
}

// NewRecipes builds a RecipesStore starting at page 1 with no filters.
func NewRecipes(opts RecipesOptions) *RecipesStore {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &RecipesStore{
		listing:  opts.Listing,
		log:      opts.Logger,
		pageSize: pageSize,
		page:     1,
	}
}

// HydrateFromQuery initializes committed and draft query state from URL
// query parameters. Unknown or invalid page numbers default to 1;
// invalid category entries are skipped; absent search is empty.
func (s *RecipesStore) HydrateFromQuery(params url.Values) {
	search := params.Get("search")

	page := 1
	if raw := params.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	var ids []int
	if raw := params.Get("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				ids = append(ids, n)
			}
		}
	}

	s.mu.Lock()
	s.search = search
	s.page = page
	s.categoryIDs = ids
	s.draftSearch = search
	s.draftCategoryIDs = slices.Clone(ids)
	s.mu.Unlock()
	s.notify()
}

// ToQueryParams projects the committed query state back into URL query
// parameters, omitting defaults: empty search, empty categories, and
// page 1 produce no key at all.
func (s *RecipesStore) ToQueryParams() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	params := url.Values{}
	if search := strings.TrimSpace(s.search); search != "" {
		params.Set("search", search)
	}
	if len(s.categoryIDs) > 0 {
		parts := make([]string, len(s.categoryIDs))
		for i, id := range s.categoryIDs {
			parts[i] = strconv.Itoa(id)
		}
		params.Set("categories", strings.Join(parts, ","))
	}
	if s.page > 1 {
		params.Set("page", strconv.Itoa(s.page))
	}
	return params
}

// SetPage commits a page change and re-fetches. Pages outside
// [1, TotalPages] are ignored silently.
func (s *RecipesStore) SetPage(ctx context.Context, page int) error {
	s.mu.Lock()
	if page < 1 || page > s.totalPagesLocked() {
		s.mu.Unlock()
		return nil
	}
	s.page = page
	s.mu.Unlock()
	s.notify()

	return s.FetchRecipes(ctx)
}

// SetDraftSearch stages a search term without fetching.
func (s *RecipesStore) SetDraftSearch(value string) {
	s.mu.Lock()
	s.draftSearch = value
	s.mu.Unlock()
	s.notify()
}

// SetDraftCategoryIDs stages a category filter without fetching.
func (s *RecipesStore) SetDraftCategoryIDs(ids []int) {
	s.mu.Lock()
	s.draftCategoryIDs = slices.Clone(ids)
	s.mu.Unlock()
	s.notify()
}

// ApplyFilters commits the draft query state, resets to page 1, and
// re-fetches.
func (s *RecipesStore) ApplyFilters(ctx context.Context) error {
	s.mu.Lock()
	s.search = s.draftSearch
	s.categoryIDs = slices.Clone(s.draftCategoryIDs)
	s.page = 1
	s.mu.Unlock()
	s.notify()

	return s.FetchRecipes(ctx)
}

// FetchRecipes loads the page described by the committed query state.
// On failure the previous results stay visible and Err reports the
// problem. A fetch that was superseded by a newer one discards its
// result instead of clobbering current state.
func (s *RecipesStore) FetchRecipes(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.fetchGen++
	gen := s.fetchGen
	q := recipe.ListQuery{
		Search:      strings.TrimSpace(s.search),
		CategoryIDs: slices.Clone(s.categoryIDs),
		Page:        s.page,
		PageSize:    s.pageSize,
	}
	s.mu.Unlock()
	s.notify()

	page, err := s.listing.FetchRecipes(ctx, q)

	s.mu.Lock()
	if gen != s.fetchGen {
		// A newer fetch owns the state now.
		s.mu.Unlock()
		return nil
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		s.mu.Unlock()
		s.notify()
		s.log.Warn().Err(err).Int("page", q.Page).Msg("recipes fetch failed")
		return err
	}
	s.recipes = page.Items
	s.total = page.Total
	s.mu.Unlock()
	s.notify()
	return nil
}

// FetchCategories loads the category filter options. Failures keep the
// previous options and are reported via CategoriesErr.
func (s *RecipesStore) FetchCategories(ctx context.Context) error {
	categories, err := s.listing.FetchCategories(ctx)

	s.mu.Lock()
	if err != nil {
		s.catErr = err.Error()
	} else {
		s.catErr = ""
		s.categories = categories
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.log.Warn().Err(err).Msg("categories fetch failed")
	}
	return err
}

// PaginatedRecipes returns the last successfully fetched page.
func (s *RecipesStore) PaginatedRecipes() []recipe.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recipes)
}

// Categories returns the category filter options.
func (s *RecipesStore) Categories() []recipe.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// Total returns the server-side result count for the committed query.
func (s *RecipesStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// TotalPages returns the page count for the committed query, at least 1.
func (s *RecipesStore) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPagesLocked()
}

// Page returns the committed page number.
func (s *RecipesStore) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Search returns the committed search term.
func (s *RecipesStore) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// CategoryIDs returns the committed category filter.
func (s *RecipesStore) CategoryIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categoryIDs)
}

// DraftSearch returns the staged search term.
func (s *RecipesStore) DraftSearch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftSearch
}

// DraftCategoryIDs returns the staged category filter.
func (s *RecipesStore) DraftCategoryIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.draftCategoryIDs)
}

// Loading reports whether a recipes fetch is in flight.
func (s *RecipesStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recipes fetch error, empty when healthy.
func (s *RecipesStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// CategoriesErr returns the last categories fetch error, empty when healthy.
func (s *RecipesStore) CategoriesErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catErr
}

func (s *RecipesStore) totalPagesLocked() int {
	pages := (s.total + s.pageSize - 1) / s.pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
