// Package recipe defines the domain types shared across the stores,
// the Strapi client, and the UI.
package recipe

// Recipe is the listing projection of a recipe: the fields every view
// needs to render a card or a table row.
type Recipe struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Summary    string `json:"summary"`
	TotalTime  string `json:"totalTime"`
	Calories   string `json:"calories"`
	Category   string `json:"category"`
	Image      string `json:"image"`
}

// Ingredient is a single shopping-list line owned by a cart entry.
// IDs originating from the remote API are its numeric ids rendered as
// strings; locally added ingredients carry generated UUIDs.
type Ingredient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit,omitempty"`
}

// CartItem is one cart line: a recipe, how many times it was added, and
// its editable ingredient list. Quantity is always at least 1 in a live
// entry; an entry whose quantity would drop to zero is removed instead.
type CartItem struct {
	Recipe
	Quantity    int          `json:"quantity"`
	Ingredients []Ingredient `json:"ingredients"`
}

// CloneIngredients returns an independent copy of the ingredient list.
func (c CartItem) CloneIngredients() []Ingredient {
	if len(c.Ingredients) == 0 {
		return nil
	}
	dup := make([]Ingredient, len(c.Ingredients))
	copy(dup, c.Ingredients)
	return dup
}

// Category is a meal category usable as a listing filter.
type Category struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
}

// Equipment names a tool referenced by a recipe's directions.
type Equipment struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Direction is one preparation step.
type Direction struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Detail is the full single-recipe projection used by the detail view.
type Detail struct {
	Recipe
	Servings    int          `json:"servings"`
	Difficulty  string       `json:"difficulty"`
	Ingredients []Ingredient `json:"ingredients"`
	Equipment   []Equipment  `json:"equipment"`
	Directions  []Direction  `json:"directions"`
}
