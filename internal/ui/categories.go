package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// popularCategories is the curated browse list shown in the categories
// view, in display order.
var popularCategories = []string{
	"en:breakfast-cereals",
	"en:dairy",
	"en:snacks",
	"en:beverages",
	"en:fruits",
	"en:vegetables",
	"en:chocolates",
	"en:breads",
	"en:pastas",
	"en:meats",
}

// handleCategoriesKey processes keyboard input for the categories view.
func (m Model) handleCategoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(popularCategories)

	switch msg.String() {
	case "j", "down":
		if m.catCursor < count-1 {
			m.catCursor++
		}
	case "k", "up":
		if m.catCursor > 0 {
			m.catCursor--
		}
	case "g", "home":
		m.catCursor = 0
	case "G", "end":
		m.catCursor = count - 1

	case " ":
		m.toggleCategory(popularCategories[m.catCursor])

	case "x":
		m.catSelected = nil

	case "enter":
		selected := m.catSelected
		if len(selected) == 0 {
			// Nothing ticked: browse the category under the cursor.
			selected = []string{popularCategories[m.catCursor]}
			m.catSelected = selected
		}
		m.savePrefs()
		m.currentView = ViewResults
		return m, m.startQuery(categoriesQueryFor(selected))
	}

	return m, nil
}

// toggleCategory adds or removes a category from the selection,
// preserving the order in which categories were picked.
func (m *Model) toggleCategory(tag string) {
	for i, c := range m.catSelected {
		if c == tag {
			m.catSelected = append(m.catSelected[:i], m.catSelected[i+1:]...)
			return
		}
	}
	m.catSelected = append(m.catSelected, tag)
}

// categorySelected reports whether the tag is currently ticked.
func (m Model) categorySelected(tag string) bool {
	for _, c := range m.catSelected {
		if c == tag {
			return true
		}
	}
	return false
}

// renderCategories renders the multi-select category browser.
func (m Model) renderCategories() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2

	var lines []string
	for i, tag := range popularCategories {
		marker := "[ ]"
		markerStyle := styles.FaintText
		if m.categorySelected(tag) {
			marker = "[x]"
			markerStyle = styles.SuccessText
		}

		label := tagLabel(tag)
		row := markerStyle.Render(marker) + " " + styles.Text.Render(label) +
			"  " + styles.FaintText.Render(tag)

		if i == m.catCursor {
			row = lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Width(m.width-4).
				Render(fmt.Sprintf("%s %s  %s", marker, label, tag))
		}
		lines = append(lines, row)
	}

	lines = append(lines, "")
	hint := "Space: toggle  ·  Enter: browse  ·  x: clear  ·  esc: back"
	lines = append(lines, styles.MutedText.Render(hint))
	if len(m.catSelected) > 1 {
		note := fmt.Sprintf("%d categories selected; results are merged and de-duplicated", len(m.catSelected))
		lines = append(lines, styles.FaintText.Render(note))
	}

	title := fmt.Sprintf("Categories (%d selected)", len(m.catSelected))
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, contentHeight, true)
}
