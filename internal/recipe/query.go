package recipe

// ListQuery describes one page of a filtered recipe listing request.
type ListQuery struct {
	Search      string
	CategoryIDs []int
	Page        int
	PageSize    int
}

// Page is the result of a listing request. Total is the server-side
// count across all pages, not the length of Items.
type Page struct {
	Items []Recipe
	Total int
}
