package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"larder/internal/off"
)

// handleFavoritesKey processes keyboard input for the favorites view.
func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.favorites == nil {
		return m, nil
	}
	items := m.favorites.List()
	count := len(items)

	switch msg.String() {
	case "j", "down":
		if m.favCursor < count-1 {
			m.favCursor++
		}
	case "k", "up":
		if m.favCursor > 0 {
			m.favCursor--
		}
	case "g", "home":
		m.favCursor = 0
	case "G", "end":
		if count > 0 {
			m.favCursor = count - 1
		}

	case "s", "d":
		if m.favCursor < count {
			m.favorites.Remove(items[m.favCursor].Key())
			m.clampFavCursor()
		}

	case "enter":
		if m.favCursor < count {
			return m, m.openDetail(items[m.favCursor].Key(), false, ViewFavorites)
		}
	}

	return m, nil
}

// renderFavorites renders the saved products list.
func (m Model) renderFavorites() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2

	var items []off.Product
	if m.favorites != nil {
		items = m.favorites.List()
	}
	if len(items) == 0 {
		empty := styles.MutedText.Render("No favorites yet. Press s on a product to save it.")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	var lines []string
	for i, item := range items {
		name := item.DisplayName()
		if name == "" {
			name = item.Key()
		}
		row := m.renderGradeBadge(item.Grade()) + " "

		if i == m.favCursor {
			row += lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Render(truncate(name, m.width-16))
		} else {
			row += styles.Text.Render(truncate(name, m.width-16))
		}
		if brand := strings.TrimSpace(item.Brands); brand != "" {
			row += " " + styles.MutedText.Render(truncate(brand, 24))
		}
		lines = append(lines, row)
	}

	lines = append(lines, "")
	lines = append(lines, styles.MutedText.Render("Enter: details  ·  s: remove  ·  esc: back"))

	title := fmt.Sprintf("Favorites (%d)", len(items))
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, contentHeight, true)
}
