package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ladle/internal/recipe"
)

// handleCartKey processes keyboard input for the cart view.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.cart.Items()

	switch msg.String() {
	case "j", "down":
		if m.cartCursor < len(items)-1 {
			m.cartCursor++
			m.ingCursor = -1
		}
	case "k", "up":
		if m.cartCursor > 0 {
			m.cartCursor--
			m.ingCursor = -1
		}

	case "J":
		if entry := m.selectedCartEntry(items); entry != nil {
			if m.ingCursor < len(entry.Ingredients)-1 {
				m.ingCursor++
			}
		}
	case "K":
		if m.ingCursor >= 0 {
			m.ingCursor--
		}

	case "+", "=":
		if entry := m.selectedCartEntry(items); entry != nil {
			m.cart.SetQuantity(entry.DocumentID, entry.Quantity+1)
		}
	case "-":
		if entry := m.selectedCartEntry(items); entry != nil {
			m.cart.SetQuantity(entry.DocumentID, entry.Quantity-1)
		}

	case "x":
		entry := m.selectedCartEntry(items)
		if entry == nil {
			break
		}
		if m.ingCursor >= 0 && m.ingCursor < len(entry.Ingredients) {
			m.cart.RemoveIngredient(entry.DocumentID, entry.Ingredients[m.ingCursor].ID)
			m.ingCursor--
		} else {
			m.cart.Remove(entry.DocumentID)
		}

	case "X":
		m.cart.Clear()
		m.cartCursor = 0
		m.ingCursor = -1

	case "n":
		if entry := m.selectedCartEntry(items); entry != nil {
			m.cartMode = cartInputAdd
			m.cartInput.SetValue("")
			m.cartInput.Focus()
		}

	case "e":
		entry := m.selectedCartEntry(items)
		if entry == nil || m.ingCursor < 0 || m.ingCursor >= len(entry.Ingredients) {
			break
		}
		ing := entry.Ingredients[m.ingCursor]
		m.cartMode = cartInputEdit
		m.editingIngID = ing.ID
		value := ing.Name
		if ing.Amount != "" {
			value += ": " + ing.Amount
		}
		m.cartInput.SetValue(value)
		m.cartInput.Focus()

	case "enter":
		if entry := m.selectedCartEntry(items); entry != nil {
			m.currentView = ViewDetail
			m.detailReturn = ViewCart
			return m, m.fetchDetailCmd(entry.DocumentID)
		}
	}

	return m, nil
}

// handleCartInputKey processes input while the ingredient field is
// focused.
func (m Model) handleCartInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		entry := m.selectedCartEntry(m.cart.Items())
		if entry != nil {
			name, amount := splitIngredientInput(m.cartInput.Value())
			if m.cartMode == cartInputEdit {
				m.cart.UpdateIngredient(entry.DocumentID, m.editingIngID, name, amount)
			} else {
				m.cart.AddIngredient(entry.DocumentID, name, amount)
			}
		}
		m.cartMode = cartInputNone
		m.editingIngID = ""
		m.cartInput.Blur()
		return m, nil

	case "esc":
		m.cartMode = cartInputNone
		m.editingIngID = ""
		m.cartInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.cartInput, cmd = m.cartInput.Update(msg)
	return m, cmd
}

// splitIngredientInput parses "name: amount" text; everything before
// the first colon is the name.
func splitIngredientInput(value string) (name, amount string) {
	name, amount, found := strings.Cut(value, ":")
	if !found {
		return strings.TrimSpace(value), ""
	}
	return strings.TrimSpace(name), strings.TrimSpace(amount)
}

func (m Model) selectedCartEntry(items []recipe.CartItem) *recipe.CartItem {
	if m.cartCursor < 0 || m.cartCursor >= len(items) {
		return nil
	}
	return &items[m.cartCursor]
}

// renderCart renders the shopping cart view.
func (m Model) renderCart() string {
	styles := m.theme.Styles()
	var b strings.Builder

	items := m.cart.Items()
	if len(items) == 0 {
		b.WriteString(styles.MutedText.Render("Your cart is empty. Add recipes with a."))
		return b.String()
	}

	for i, item := range items {
		entrySelected := i == m.cartCursor
		line := fmt.Sprintf("%dx %s", item.Quantity, item.Name)
		if entrySelected && m.ingCursor < 0 {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else if entrySelected {
			b.WriteString(styles.AccentText.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")

		for j, ing := range item.Ingredients {
			ingLine := "    - " + ing.Name
			if ing.Amount != "" {
				ingLine += "  " + ing.Amount
				if ing.Unit != "" {
					ingLine += " " + ing.Unit
				}
			}
			if entrySelected && j == m.ingCursor {
				b.WriteString(styles.Selected.Width(m.width).Render(ingLine))
			} else {
				b.WriteString(styles.MutedText.Render(ingLine))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// Ingredient input line
	if m.cartMode != cartInputNone {
		label := "New ingredient: "
		if m.cartMode == cartInputEdit {
			label = "Edit ingredient: "
		}
		b.WriteString(styles.AccentText.Render(label))
		b.WriteString(m.cartInput.View())
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("%d items in %d entries", m.cart.TotalItems(), m.cart.Len())
	if m.cart.Syncing() {
		footer += "  (syncing)"
	}
	b.WriteString(styles.MutedText.Render(footer))

	return b.String()
}
