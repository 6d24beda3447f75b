package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ladle/internal/recipe"
)

// handleRandomKey processes keyboard input for the random recipe view.
func (m Model) handleRandomKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		if r := m.random.Recipe(); r != nil {
			m.cart.Upsert(recipe.CartItem{Recipe: *r}, 1)
		}

	case "v":
		if r := m.random.Recipe(); r != nil {
			m.favs.Toggle(*r)
		}

	case "enter":
		if r := m.random.Recipe(); r != nil {
			m.currentView = ViewDetail
			m.detailReturn = ViewRandom
			return m, m.fetchDetailCmd(r.DocumentID)
		}
	}

	return m, nil
}

// renderRandom renders the random recipe view.
func (m Model) renderRandom() string {
	styles := m.theme.Styles()
	var b strings.Builder

	r := m.random.Recipe()
	switch {
	case m.random.Loading():
		b.WriteString(styles.MutedText.Render("Picking a recipe..."))
	case m.random.Err() != "":
		b.WriteString(styles.DangerText.Render(m.random.Err()))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press s to try again."))
	case r == nil:
		b.WriteString(styles.MutedText.Render("Press s for a random recipe."))
	default:
		b.WriteString(styles.Title.Render(r.Name))
		if m.favs.IsFavourite(r.DocumentID) {
			b.WriteString(styles.DangerText.Render("  ♥"))
		}
		b.WriteString("\n")

		var meta []string
		if r.Category != "" {
			meta = append(meta, r.Category)
		}
		if r.TotalTime != "" {
			meta = append(meta, r.TotalTime+" min")
		}
		if r.Calories != "" {
			meta = append(meta, r.Calories+" kcal")
		}
		if len(meta) > 0 {
			b.WriteString(styles.MutedText.Render(strings.Join(meta, " · ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if r.Summary != "" {
			b.WriteString(styles.Text.Render(wrap(r.Summary, m.contentWidth())))
			b.WriteString("\n\n")
		}
		b.WriteString(styles.FaintText.Render("Enter opens the full recipe; s picks another."))
	}

	return b.String()
}
