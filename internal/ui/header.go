package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "

	var parts []string

	// Logo
	parts = append(parts, styles.Logo.Render("ladle"))

	// Cart summary with sync indicator
	cartLabel := fmt.Sprintf("Cart: %d", m.cart.TotalItems())
	if m.cart.Syncing() {
		cartLabel += " ~"
	}
	parts = append(parts, styles.Text.Render(cartLabel))

	// Favourites count
	favLabel := fmt.Sprintf("Favourites: %d", m.favs.Len())
	if m.favs.Loading() {
		favLabel += " ..."
	}
	parts = append(parts, styles.Text.Render(favLabel))

	// Result count for the listing
	if m.currentView == ViewRecipes {
		parts = append(parts, styles.MutedText.Render(
			fmt.Sprintf("%d recipes", m.recipes.Total())))
	}

	// Error indicator
	if errMsg := m.headerError(); errMsg != "" {
		maxErr := 60
		if m.width < 100 {
			maxErr = 30
		}
		parts = append(parts,
			styles.DangerText.Render("ERROR")+" "+
				styles.DangerText.Render(truncate(errMsg, maxErr)))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// headerError surfaces the error relevant to the current view.
func (m Model) headerError() string {
	switch m.currentView {
	case ViewRecipes:
		if msg := m.recipes.Err(); msg != "" {
			return msg
		}
		return m.recipes.CategoriesErr()
	case ViewDetail:
		return m.detail.Err()
	case ViewRandom:
		return m.random.Err()
	}
	return ""
}

// renderCommandBar renders the key hints bar for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDetail:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"a", "Add to cart"},
			{"v", "Favourite"},
			{"Esc", "Back"},
			{"?", "More"},
		}
	case ViewCart:
		commands = []cmd{
			{"j/k", "Entries"},
			{"J/K", "Ingredients"},
			{"+/-", "Quantity"},
			{"n", "New ingredient"},
			{"e", "Edit"},
			{"x", "Delete"},
			{"X", "Clear"},
			{"?", "More"},
		}
	case ViewFavourites:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Open"},
			{"d", "Remove"},
			{"R", "Refresh"},
			{"?", "More"},
		}
	case ViewRandom:
		commands = []cmd{
			{"s", "Another"},
			{"Enter", "Open"},
			{"a", "Add to cart"},
			{"v", "Favourite"},
			{"?", "More"},
		}
	default: // ViewRecipes
		commands = []cmd{
			{"/", "Search"},
			{"C", m.categoryLabel()},
			{"h/l", "Page"},
			{"Enter", "Open"},
			{"a", "Add to cart"},
			{"v", "Favourite"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Render(c.key)+":"+styles.MutedText.Render(c.desc))
	}

	// Theme indicator
	segments = append(segments,
		styles.AccentText.Render("T")+":"+styles.FaintText.Render(m.theme.Name))

	return styles.Header.Width(m.width).Render(strings.Join(segments, "  "))
}

// categoryLabel shows the committed category filter in the command bar.
func (m Model) categoryLabel() string {
	ids := m.recipes.CategoryIDs()
	if len(ids) == 0 {
		return "All"
	}
	for _, cat := range m.recipes.Categories() {
		if cat.ID == ids[0] {
			return cat.Title
		}
	}
	return fmt.Sprintf("#%d", ids[0])
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
