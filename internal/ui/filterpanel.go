package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"larder/internal/filter"
)

// nutrientChoices are the nutrients offered for range filtering, keyed by
// the Open Food Facts nutriment name (without the _100g suffix).
var nutrientChoices = []struct{ key, label string }{
	{"sugars", "Sugars"},
	{"fat", "Fat"},
	{"saturated-fat", "Saturated fat"},
	{"salt", "Salt"},
	{"proteins", "Proteins"},
	{"carbohydrates", "Carbohydrates"},
	{"fiber", "Fiber"},
	{"energy-kcal", "Energy (kcal)"},
}

// sortChoices are the sort options in cycle order.
var sortChoices = []struct {
	key   filter.SortKey
	label string
}{
	{filter.SortNone, "Relevance"},
	{filter.SortName, "Name"},
	{filter.SortGrade, "Nutri-Score"},
	{filter.SortEnergy, "Energy"},
}

// Filter panel focus slots.
const (
	filterFocusNutrient = iota
	filterFocusMin
	filterFocusMax
	filterFocusSort
	filterFocusDir
	filterFocusCount
)

// openFilterPanel opens the filter overlay, pre-filled from the active
// configuration.
func (m *Model) openFilterPanel() {
	m.filterFocusIdx = filterFocusNutrient
	m.loadRangeInputs()

	key, dir := m.filters.Sort()
	m.filterSortIdx = 0
	for i, c := range sortChoices {
		if c.key == key {
			m.filterSortIdx = i
		}
	}
	m.filterDescending = dir == filter.Desc

	m.rangeInputs[0].Blur()
	m.rangeInputs[1].Blur()
	m.showFilters = true
}

// loadRangeInputs fills the min/max inputs with the bounds configured for
// the currently picked nutrient.
func (m *Model) loadRangeInputs() {
	m.rangeInputs[0].SetValue("")
	m.rangeInputs[1].SetValue("")
	nutrient := nutrientChoices[m.filterNutrientIdx].key
	for _, r := range m.filters.Ranges() {
		if r.Nutrient != nutrient {
			continue
		}
		if r.Min != nil {
			m.rangeInputs[0].SetValue(formatAmount(*r.Min))
		}
		if r.Max != nil {
			m.rangeInputs[1].SetValue(formatAmount(*r.Max))
		}
	}
}

// handleFilterPanelKey handles keyboard input for the filter overlay.
func (m Model) handleFilterPanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showFilters = false
		return m, nil

	case "enter":
		m.applyFilterPanel()
		m.showFilters = false
		m.clampSelection()
		return m, nil

	case "tab", "down":
		m.setFilterFocus((m.filterFocusIdx + 1) % filterFocusCount)
		return m, nil

	case "shift+tab", "up":
		m.setFilterFocus((m.filterFocusIdx - 1 + filterFocusCount) % filterFocusCount)
		return m, nil

	case "ctrl+c":
		// Clear everything (panel-specific, does not quit)
		m.filters.ClearAll()
		m.rangeInputs[0].SetValue("")
		m.rangeInputs[1].SetValue("")
		m.filterSortIdx = 0
		m.filterDescending = false
		m.clampSelection()
		return m, nil

	case "left", "right":
		step := 1
		if msg.String() == "left" {
			step = -1
		}
		switch m.filterFocusIdx {
		case filterFocusNutrient:
			n := len(nutrientChoices)
			m.filterNutrientIdx = (m.filterNutrientIdx + step + n) % n
			m.loadRangeInputs()
		case filterFocusSort:
			n := len(sortChoices)
			m.filterSortIdx = (m.filterSortIdx + step + n) % n
		case filterFocusDir:
			m.filterDescending = !m.filterDescending
		}
		return m, nil
	}

	// Route remaining keys to whichever range input is focused.
	switch m.filterFocusIdx {
	case filterFocusMin:
		var cmd tea.Cmd
		m.rangeInputs[0], cmd = m.rangeInputs[0].Update(msg)
		return m, cmd
	case filterFocusMax:
		var cmd tea.Cmd
		m.rangeInputs[1], cmd = m.rangeInputs[1].Update(msg)
		return m, cmd
	}
	return m, nil
}

// setFilterFocus moves focus between panel fields, managing input focus.
func (m *Model) setFilterFocus(idx int) {
	m.filterFocusIdx = idx
	m.rangeInputs[0].Blur()
	m.rangeInputs[1].Blur()
	switch idx {
	case filterFocusMin:
		m.rangeInputs[0].Focus()
	case filterFocusMax:
		m.rangeInputs[1].Focus()
	}
}

// applyFilterPanel commits the panel state to the filter configuration.
func (m *Model) applyFilterPanel() {
	nutrient := nutrientChoices[m.filterNutrientIdx].key
	min := parseBound(m.rangeInputs[0].Value())
	max := parseBound(m.rangeInputs[1].Value())
	if min == nil && max == nil {
		m.filters.RemoveRange(nutrient)
	} else {
		m.filters.SetRange(nutrient, min, max)
	}

	dir := filter.Asc
	if m.filterDescending {
		dir = filter.Desc
	}
	m.filters.SetSort(sortChoices[m.filterSortIdx].key, dir)
}

// parseBound parses a bound field; blank or unparsable means unbounded.
func parseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// renderFilterPanel renders the filter and sort overlay.
func (m Model) renderFilterPanel() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Filters & Sort"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Bounds apply per 100g. Blank means unbounded."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Products without a value always pass."))
	b.WriteString("\n\n")

	b.WriteString(m.panelChoiceRow("Nutrient:  ", nutrientChoices[m.filterNutrientIdx].label, filterFocusNutrient))
	b.WriteString("\n\n")

	b.WriteString(m.panelLabel("Min:       ", filterFocusMin))
	b.WriteString(m.rangeInputs[0].View())
	b.WriteString("\n\n")

	b.WriteString(m.panelLabel("Max:       ", filterFocusMax))
	b.WriteString(m.rangeInputs[1].View())
	b.WriteString("\n\n")

	b.WriteString(m.panelChoiceRow("Sort by:   ", sortChoices[m.filterSortIdx].label, filterFocusSort))
	b.WriteString("\n\n")

	dirLabel := "Ascending"
	if m.filterDescending {
		dirLabel = "Descending"
	}
	b.WriteString(m.panelChoiceRow("Direction: ", dirLabel, filterFocusDir))
	b.WriteString("\n\n")

	// Active ranges summary
	if ranges := m.filters.Ranges(); len(ranges) > 0 {
		parts := make([]string, 0, len(ranges))
		for _, r := range ranges {
			parts = append(parts, describeRange(r))
		}
		b.WriteString(styles.FaintText.Render("Active: " + strings.Join(parts, ", ")))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("Enter: Apply  ·  Esc: Cancel  ·  Ctrl+C: Clear all"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(54)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// panelLabel styles a field label according to focus.
func (m Model) panelLabel(label string, focus int) string {
	styles := m.theme.Styles()
	if m.filterFocusIdx == focus {
		return styles.AccentText.Render(label)
	}
	return styles.MutedText.Render(label)
}

// panelChoiceRow renders a left/right-cycled choice field.
func (m Model) panelChoiceRow(label, value string, focus int) string {
	styles := m.theme.Styles()
	row := m.panelLabel(label, focus)
	if m.filterFocusIdx == focus {
		return row + styles.Text.Render("◀ "+value+" ▶")
	}
	return row + styles.Text.Render(value)
}

// describeRange builds a short "sugars ≤ 10" style summary.
func describeRange(r filter.Range) string {
	switch {
	case r.Min != nil && r.Max != nil:
		return r.Nutrient + " " + formatAmount(*r.Min) + "–" + formatAmount(*r.Max)
	case r.Min != nil:
		return r.Nutrient + " ≥ " + formatAmount(*r.Min)
	case r.Max != nil:
		return r.Nutrient + " ≤ " + formatAmount(*r.Max)
	default:
		return r.Nutrient
	}
}
