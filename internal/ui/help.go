package ui

import (
	"strings"
)

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	var b strings.Builder

	section := func(title string, rows [][2]string) {
		b.WriteString(styles.AccentText.Render(title))
		b.WriteString("\n")
		for _, row := range rows {
			b.WriteString("  ")
			b.WriteString(styles.Text.Render(padRight(row[0], 10)))
			b.WriteString(styles.MutedText.Render(row[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.Logo.Render("ladle"))
	b.WriteString(styles.MutedText.Render("  keyboard reference"))
	b.WriteString("\n\n")

	section("Views", [][2]string{
		{"r", "Recipe listing"},
		{"c", "Shopping cart"},
		{"f", "Favourites"},
		{"s", "Random recipe"},
		{"Esc", "Back"},
	})

	section("Listing", [][2]string{
		{"/", "Edit search, Enter applies"},
		{"C", "Cycle category filter"},
		{"h/l", "Previous/next page"},
		{"j/k", "Move selection"},
		{"Enter", "Open recipe"},
		{"a", "Add to cart"},
		{"v", "Toggle favourite"},
	})

	section("Cart", [][2]string{
		{"j/k", "Select entry"},
		{"J/K", "Select ingredient"},
		{"+/-", "Change quantity"},
		{"n", "New ingredient (name: amount)"},
		{"e", "Edit selected ingredient"},
		{"x", "Delete entry or ingredient"},
		{"X", "Clear cart"},
	})

	section("General", [][2]string{
		{"T", "Cycle theme"},
		{"?", "This help"},
		{"Ctrl+C", "Quit"},
	})

	if m.config != nil {
		b.WriteString(styles.FaintText.Render("API: " + m.config.APIBaseURL))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("Press any key to close."))
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
