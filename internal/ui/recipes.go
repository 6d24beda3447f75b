package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ladle/internal/recipe"
)

// handleRecipesKey processes keyboard input for the listing view.
func (m Model) handleRecipesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recipes := m.recipes.PaginatedRecipes()

	switch msg.String() {
	case "j", "down":
		if m.recipeCursor < len(recipes)-1 {
			m.recipeCursor++
		}
	case "k", "up":
		if m.recipeCursor > 0 {
			m.recipeCursor--
		}
	case "g", "home":
		m.recipeCursor = 0
	case "G", "end":
		m.recipeCursor = len(recipes) - 1
		if m.recipeCursor < 0 {
			m.recipeCursor = 0
		}

	case "h", "left":
		return m, m.setPageCmd(m.recipes.Page() - 1)
	case "l", "right":
		return m, m.setPageCmd(m.recipes.Page() + 1)

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.recipes.DraftSearch())
		m.searchInput.Focus()
		return m, nil

	case "C":
		return m.cycleCategory()

	case "enter":
		if r := m.selectedRecipe(); r != nil {
			m.currentView = ViewDetail
			m.detailReturn = ViewRecipes
			return m, m.fetchDetailCmd(r.DocumentID)
		}

	case "a":
		if r := m.selectedRecipe(); r != nil {
			m.cart.Upsert(recipe.CartItem{Recipe: *r}, 1)
		}

	case "v":
		if r := m.selectedRecipe(); r != nil {
			m.favs.Toggle(*r)
		}
	}

	return m, nil
}

// handleSearchKey processes input while the search field is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.recipes.SetDraftSearch(strings.TrimSpace(m.searchInput.Value()))
		m.recipeCursor = 0
		return m, m.applyFiltersCmd()

	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue(m.recipes.DraftSearch())
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// cycleCategory steps the category filter through All and each known
// category, committing on every step.
func (m Model) cycleCategory() (tea.Model, tea.Cmd) {
	categories := m.recipes.Categories()
	if len(categories) == 0 {
		return m, m.fetchCategoriesCmd()
	}

	m.catCursor = (m.catCursor + 1) % (len(categories) + 1)
	if m.catCursor == 0 {
		m.recipes.SetDraftCategoryIDs(nil)
	} else {
		m.recipes.SetDraftCategoryIDs([]int{categories[m.catCursor-1].ID})
	}
	m.recipeCursor = 0
	return m, m.applyFiltersCmd()
}

func (m Model) selectedRecipe() *recipe.Recipe {
	recipes := m.recipes.PaginatedRecipes()
	if m.recipeCursor < 0 || m.recipeCursor >= len(recipes) {
		return nil
	}
	return &recipes[m.recipeCursor]
}

// renderRecipes renders the listing view.
func (m Model) renderRecipes() string {
	styles := m.theme.Styles()
	var b strings.Builder

	// Search line
	if m.searching {
		b.WriteString(styles.AccentText.Render("Search: "))
		b.WriteString(m.searchInput.View())
	} else if search := m.recipes.Search(); search != "" {
		b.WriteString(styles.MutedText.Render("Search: "))
		b.WriteString(styles.Text.Render(search))
	} else {
		b.WriteString(styles.FaintText.Render("Press / to search"))
	}
	b.WriteString("\n\n")

	recipes := m.recipes.PaginatedRecipes()
	switch {
	case m.recipes.Loading() && len(recipes) == 0:
		b.WriteString(styles.MutedText.Render("Loading recipes..."))
	case len(recipes) == 0:
		b.WriteString(styles.MutedText.Render("No recipes match."))
	default:
		for i, r := range recipes {
			b.WriteString(m.renderRecipeRow(r, i == m.recipeCursor, styles))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// Footer: pagination and the shareable query
	footer := fmt.Sprintf("Page %d/%d", m.recipes.Page(), m.recipes.TotalPages())
	if m.recipes.Loading() {
		footer += "  (loading)"
	}
	b.WriteString(styles.MutedText.Render(footer))
	if params := m.recipes.ToQueryParams(); len(params) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("link: ?" + params.Encode()))
	}

	return b.String()
}

func (m Model) renderRecipeRow(r recipe.Recipe, selected bool, styles Styles) string {
	marker := "  "
	if m.favs.IsFavourite(r.DocumentID) {
		marker = "♥ "
	}

	meta := make([]string, 0, 3)
	if r.Category != "" {
		meta = append(meta, r.Category)
	}
	if r.TotalTime != "" {
		meta = append(meta, r.TotalTime+" min")
	}
	if r.Calories != "" {
		meta = append(meta, r.Calories+" kcal")
	}

	nameWidth := 40
	if m.width < 90 {
		nameWidth = 24
	}
	line := fmt.Sprintf("%s%-*s %s", marker, nameWidth, truncate(r.Name, nameWidth),
		strings.Join(meta, " · "))

	if selected {
		return styles.Selected.Width(m.width).Render(line)
	}
	return styles.Text.Render(line)
}
