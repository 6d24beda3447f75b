package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ladle/internal/recipe"
)

// handleFavouritesKey processes keyboard input for the favourites view.
func (m Model) handleFavouritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.favs.Items()

	switch msg.String() {
	case "j", "down":
		if m.favCursor < len(items)-1 {
			m.favCursor++
		}
	case "k", "up":
		if m.favCursor > 0 {
			m.favCursor--
		}

	case "d":
		if r := m.selectedFavourite(items); r != nil {
			m.favs.Remove(*r)
		}

	case "a":
		if r := m.selectedFavourite(items); r != nil {
			m.cart.Upsert(recipe.CartItem{Recipe: *r}, 1)
		}

	case "R":
		return m, m.refreshFavouritesCmd()

	case "enter":
		if r := m.selectedFavourite(items); r != nil {
			m.currentView = ViewDetail
			m.detailReturn = ViewFavourites
			return m, m.fetchDetailCmd(r.DocumentID)
		}
	}

	return m, nil
}

func (m Model) selectedFavourite(items []recipe.Recipe) *recipe.Recipe {
	if m.favCursor < 0 || m.favCursor >= len(items) {
		return nil
	}
	return &items[m.favCursor]
}

// renderFavourites renders the favourites view.
func (m Model) renderFavourites() string {
	styles := m.theme.Styles()
	var b strings.Builder

	items := m.favs.Items()
	switch {
	case m.favs.Loading() && len(items) == 0:
		b.WriteString(styles.MutedText.Render("Loading favourites..."))
	case len(items) == 0:
		b.WriteString(styles.MutedText.Render("No favourites yet. Mark recipes with v."))
	default:
		for i, r := range items {
			line := "♥ " + r.Name
			if r.Category != "" {
				line += "  " + r.Category
			}
			if i == m.favCursor {
				b.WriteString(styles.Selected.Width(m.width).Render(line))
			} else {
				b.WriteString(styles.Text.Render(line))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
