// Package strapi provides the HTTP client for the Strapi recipe API:
// the paginated recipe listing, meal categories, single recipes, and
// the favourites and cart accounting endpoints.
//
// Calls are single-shot: no retries, no queuing. Retry policy, if any,
// belongs to whoever stands in front of this client.
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ladle/internal/recipe"
)

const (
	defaultUserAgent = "ladle/0.1"
	requestTimeout   = 10 * time.Second

	// The remote cart is an aggregate counter keyed to one product
	// entry; every add/remove posts against this id.
	cartSyncProductID = 156
)

// Options configure a Client.
type Options struct {
	BaseURL      string
	MediaBaseURL string
	BearerToken  string
	Logger       zerolog.Logger
}

// Client talks to the Strapi recipe API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
	media     mediaResolver
	log       zerolog.Logger
}

// NewClient builds a Client from the given options.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		token:     strings.TrimSpace(opts.BearerToken),
		media:     mediaResolver{base: strings.TrimRight(opts.MediaBaseURL, "/")},
		log:       opts.Logger,
	}, nil
}

// FetchRecipes retrieves one page of the filtered recipe listing.
func (c *Client) FetchRecipes(ctx context.Context, q recipe.ListQuery) (recipe.Page, error) {
	if c == nil {
		return recipe.Page{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("populate[0]", "images")
	values.Set("pagination[page]", strconv.Itoa(max(q.Page, 1)))
	values.Set("pagination[pageSize]", strconv.Itoa(max(q.PageSize, 1)))
	if search := strings.TrimSpace(q.Search); search != "" {
		values.Set("filters[name][$containsi]", search)
	}
	for i, id := range q.CategoryIDs {
		values.Set(fmt.Sprintf("filters[category][id][$in][%d]", i), strconv.Itoa(id))
	}

	rel := &url.URL{Path: "/recipes", RawQuery: values.Encode()}
	var payload listResponse[recipePayload]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return recipe.Page{}, err
	}

	page := recipe.Page{Total: payload.Meta.Pagination.Total}
	for _, item := range payload.Data {
		page.Items = append(page.Items, item.toDomain(c.media))
	}
	if page.Total == 0 {
		page.Total = len(page.Items)
	}
	return page, nil
}

// CountRecipes returns the total number of recipes in the collection.
func (c *Client) CountRecipes(ctx context.Context) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/recipes", RawQuery: "pagination[limit]=1"}
	var payload listResponse[recipePayload]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return 0, err
	}
	return payload.Meta.Pagination.Total, nil
}

// RecipeAt retrieves the single recipe at the given collection offset.
func (c *Client) RecipeAt(ctx context.Context, offset int) (recipe.Recipe, error) {
	if c == nil {
		return recipe.Recipe{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("pagination[start]", strconv.Itoa(max(offset, 0)))
	values.Set("pagination[limit]", "1")
	values.Set("populate[0]", "images")

	rel := &url.URL{Path: "/recipes", RawQuery: values.Encode()}
	var payload listResponse[recipePayload]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return recipe.Recipe{}, err
	}
	if len(payload.Data) == 0 {
		return recipe.Recipe{}, fmt.Errorf("no recipe at offset %d", offset)
	}
	return payload.Data[0].toDomain(c.media), nil
}

// FetchRecipe retrieves the fully populated recipe for a document id.
func (c *Client) FetchRecipe(ctx context.Context, documentID string) (recipe.Detail, error) {
	if c == nil {
		return recipe.Detail{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(documentID) == "" {
		return recipe.Detail{}, fmt.Errorf("document id required")
	}
	values := url.Values{}
	for i, rel := range []string{"ingradients", "equipments", "directions", "images", "category"} {
		values.Set(fmt.Sprintf("populate[%d]", i), rel)
	}

	rel := &url.URL{Path: "/recipes/" + documentID, RawQuery: values.Encode()}
	var payload singleResponse[detailPayload]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return recipe.Detail{}, err
	}
	return payload.Data.toDomain(c.media), nil
}

// FetchCategories retrieves the meal categories used as listing filters.
func (c *Client) FetchCategories(ctx context.Context) ([]recipe.Category, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/meal-categories"}
	var payload listResponse[categoryPayload]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	categories := make([]recipe.Category, 0, len(payload.Data))
	for _, item := range payload.Data {
		categories = append(categories, item.toDomain())
	}
	return categories, nil
}

// List retrieves the remote favourites collection.
func (c *Client) List(ctx context.Context) ([]recipe.Recipe, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/favorites"}
	var payload []favouritePayload
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	recipes := make([]recipe.Recipe, 0, len(payload))
	for _, item := range payload {
		recipes = append(recipes, item.toDomain(c.media))
	}
	return recipes, nil
}

// Add marks a recipe as a favourite on the server.
func (c *Client) Add(ctx context.Context, recipeID int) error {
	rel := &url.URL{Path: "/favorites/add"}
	return c.do(ctx, http.MethodPost, rel, map[string]int{"recipe": recipeID}, nil)
}

// Remove unmarks a recipe as a favourite on the server.
func (c *Client) Remove(ctx context.Context, recipeID int) error {
	rel := &url.URL{Path: "/favorites/remove"}
	return c.do(ctx, http.MethodPost, rel, map[string]int{"recipe": recipeID}, nil)
}

// AddQuantity reports quantity added to the cart to the accounting endpoint.
func (c *Client) AddQuantity(ctx context.Context, quantity int) error {
	rel := &url.URL{Path: "/cart/add"}
	return c.do(ctx, http.MethodPost, rel, cartSyncBody(quantity), nil)
}

// RemoveQuantity reports quantity removed from the cart to the accounting endpoint.
func (c *Client) RemoveQuantity(ctx context.Context, quantity int) error {
	rel := &url.URL{Path: "/cart/remove"}
	return c.do(ctx, http.MethodPost, rel, cartSyncBody(quantity), nil)
}

func cartSyncBody(quantity int) map[string]int {
	return map[string]int{"product": cartSyncProductID, "quantity": quantity}
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{
		Path:     strings.TrimRight(c.baseURL.Path, "/") + rel.Path,
		RawQuery: rel.RawQuery,
	})

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		c.log.Warn().Str("path", rel.Path).Int("status", resp.StatusCode).Msg("api request failed")
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", base, err)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
