package strapi

import (
	"encoding/json"
	"strconv"
	"strings"

	"ladle/internal/recipe"
)

// listResponse mirrors a Strapi collection payload.
type listResponse[T any] struct {
	Data []T `json:"data"`
	Meta struct {
		Pagination struct {
			Total     int `json:"total"`
			Page      int `json:"page"`
			PageSize  int `json:"pageSize"`
			PageCount int `json:"pageCount"`
		} `json:"pagination"`
	} `json:"meta"`
}

// singleResponse mirrors a Strapi single-entry payload.
type singleResponse[T any] struct {
	Data T `json:"data"`
}

// imagePayload mirrors a Strapi upload with its resized formats.
type imagePayload struct {
	ID      int    `json:"id"`
	URL     string `json:"url"`
	Formats struct {
		Thumbnail *imageFormat `json:"thumbnail"`
		Small     *imageFormat `json:"small"`
		Medium    *imageFormat `json:"medium"`
		Large     *imageFormat `json:"large"`
	} `json:"formats"`
}

type imageFormat struct {
	URL string `json:"url"`
}

// categoryPayload mirrors an entry of /meal-categories.
type categoryPayload struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
}

func (p categoryPayload) toDomain() recipe.Category {
	return recipe.Category{ID: p.ID, DocumentID: p.DocumentID, Title: p.Title}
}

// recipePayload mirrors an entry of /recipes. TotalTime and Calories
// arrive as numbers or strings depending on the content type version,
// so they decode through json.Number.
type recipePayload struct {
	ID         int              `json:"id"`
	DocumentID string           `json:"documentId"`
	Name       string           `json:"name"`
	Summary    string           `json:"summary"`
	TotalTime  json.Number      `json:"totalTime"`
	Calories   json.Number      `json:"calories"`
	Category   *categoryPayload `json:"category"`
	Images     []imagePayload   `json:"images"`
}

func (p recipePayload) toDomain(media mediaResolver) recipe.Recipe {
	summary := p.Summary
	if strings.TrimSpace(summary) == "" {
		summary = "No description"
	}
	category := "All"
	if p.Category != nil && p.Category.Title != "" {
		category = p.Category.Title
	}
	return recipe.Recipe{
		ID:         p.ID,
		DocumentID: p.DocumentID,
		Name:       p.Name,
		Summary:    summary,
		TotalTime:  numberOrZero(p.TotalTime),
		Calories:   numberOrZero(p.Calories),
		Category:   category,
		Image:      media.recipeImageURL(p.Images),
	}
}

// detailPayload mirrors a fully populated /recipes/{documentId} entry.
// The remote schema spells the ingredients relation "ingradients".
type detailPayload struct {
	recipePayload
	Servings    int    `json:"servings"`
	Difficulty  string `json:"difficulty"`
	Ingredients []struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Amount string `json:"amount"`
		Unit   string `json:"unit"`
	} `json:"ingradients"`
	Equipment []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"equipments"`
	Directions []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"directions"`
}

func (p detailPayload) toDomain(media mediaResolver) recipe.Detail {
	d := recipe.Detail{
		Recipe:     p.recipePayload.toDomain(media),
		Servings:   p.Servings,
		Difficulty: p.Difficulty,
	}
	for _, ing := range p.Ingredients {
		d.Ingredients = append(d.Ingredients, recipe.Ingredient{
			ID:     strconv.Itoa(ing.ID),
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	for _, eq := range p.Equipment {
		d.Equipment = append(d.Equipment, recipe.Equipment{ID: eq.ID, Name: eq.Name})
	}
	for _, dir := range p.Directions {
		d.Directions = append(d.Directions, recipe.Direction{ID: dir.ID, Description: dir.Description})
	}
	return d
}

// favouritePayload mirrors an entry of /favorites: a wrapper around the
// favourited recipe plus the id the accounting endpoints expect.
type favouritePayload struct {
	ID               int           `json:"id"`
	DocumentID       string        `json:"documentId"`
	OriginalRecipeID int           `json:"originalRecipeId"`
	Recipe           recipePayload `json:"recipe"`
}

func (p favouritePayload) toDomain(media mediaResolver) recipe.Recipe {
	r := p.Recipe.toDomain(media)
	if p.OriginalRecipeID != 0 {
		r.ID = p.OriginalRecipeID
	}
	return r
}

func numberOrZero(n json.Number) string {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return "0"
	}
	return s
}
