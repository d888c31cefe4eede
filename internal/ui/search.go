package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"larder/internal/catalog"
)

// handleSearchKey processes keys while the search bar owns the keyboard.
// Each edit re-arms the settle timer; enter fires immediately.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.searchFocused = false
		m.searchInput.Blur()
		return m, nil

	case "enter":
		// Invalidate any pending settle timer and search now.
		m.searchSeq++
		m.searchFocused = false
		m.searchInput.Blur()
		text := strings.TrimSpace(m.searchInput.Value())
		if text == "" {
			if m.store != nil {
				m.store.Clear()
				m.refreshSnapshot()
			}
			return m, nil
		}
		return m, m.startQuery(catalog.SearchQuery(text))
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if m.searchInput.Value() != before {
		m.searchSeq++
		return m, tea.Batch(cmd, debounceCmd(m.searchSeq, m.debounce))
	}
	return m, cmd
}

// renderSearchBar renders the search input line shown above the results.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()

	label := "Search "
	if m.searchFocused {
		label = styles.AccentText.Bold(true).Render(label)
	} else {
		label = styles.MutedText.Render(label)
	}
	return label + m.searchInput.View()
}
