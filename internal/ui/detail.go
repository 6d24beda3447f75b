package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ladle/internal/recipe"
)

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		if d := m.detail.Detail(); d != nil {
			m.cart.Upsert(recipe.CartItem{
				Recipe:      d.Recipe,
				Ingredients: d.Ingredients,
			}, 1)
		}
		return m, nil

	case "v":
		if d := m.detail.Detail(); d != nil {
			m.favs.Toggle(d.Recipe)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// renderDetail renders the detail view.
func (m Model) renderDetail() string {
	return m.detailViewport.View()
}

// updateDetailViewport rebuilds the viewport content from the detail
// store.
func (m *Model) updateDetailViewport() {
	styles := m.theme.Styles()
	var b strings.Builder

	d := m.detail.Detail()
	switch {
	case m.detail.Loading():
		b.WriteString(styles.MutedText.Render("Loading recipe..."))
	case m.detail.Err() != "":
		b.WriteString(styles.DangerText.Render("Could not load recipe: " + m.detail.Err()))
	case d == nil:
		b.WriteString(styles.MutedText.Render("No recipe selected."))
	default:
		m.writeDetail(&b, d, styles)
	}

	m.detailViewport.SetContent(b.String())
}

func (m Model) writeDetail(b *strings.Builder, d *recipe.Detail, styles Styles) {
	b.WriteString(styles.Title.Render(d.Name))
	if m.favs.IsFavourite(d.DocumentID) {
		b.WriteString(styles.DangerText.Render("  ♥"))
	}
	b.WriteString("\n")

	var meta []string
	if d.Category != "" {
		meta = append(meta, d.Category)
	}
	if d.TotalTime != "" {
		meta = append(meta, d.TotalTime+" min")
	}
	if d.Calories != "" {
		meta = append(meta, d.Calories+" kcal")
	}
	if d.Servings > 0 {
		meta = append(meta, fmt.Sprintf("%d servings", d.Servings))
	}
	if len(meta) > 0 {
		b.WriteString(styles.MutedText.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}
	if d.Difficulty != "" {
		b.WriteString(styles.DifficultyStyle(strings.ToLower(d.Difficulty)).Render(d.Difficulty))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if d.Summary != "" {
		b.WriteString(styles.Text.Render(wrap(d.Summary, m.contentWidth())))
		b.WriteString("\n\n")
	}

	if len(d.Ingredients) > 0 {
		b.WriteString(styles.AccentText.Render("Ingredients"))
		b.WriteString("\n")
		for _, ing := range d.Ingredients {
			line := "  - " + ing.Name
			if ing.Amount != "" {
				line += "  " + ing.Amount
				if ing.Unit != "" {
					line += " " + ing.Unit
				}
			}
			b.WriteString(styles.Text.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(d.Equipment) > 0 {
		b.WriteString(styles.AccentText.Render("Equipment"))
		b.WriteString("\n")
		for _, eq := range d.Equipment {
			b.WriteString(styles.Text.Render("  - " + eq.Name))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(d.Directions) > 0 {
		b.WriteString(styles.AccentText.Render("Directions"))
		b.WriteString("\n")
		for i, dir := range d.Directions {
			step := fmt.Sprintf("%2d. %s", i+1, dir.Description)
			b.WriteString(styles.Text.Render(wrap(step, m.contentWidth())))
			b.WriteString("\n")
		}
	}
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return min(m.width-2, 100)
}

// wrap is a simple greedy word wrapper for prose blocks.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
