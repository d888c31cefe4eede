package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"larder/internal/off"
)

// gradeTabs is the cycle order for the Nutri-Score tab row. The empty
// string is the "all grades" tab.
var gradeTabs = []string{"", "a", "b", "c", "d", "e"}

// handleResultsKey processes keyboard input for the results view.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.visibleProducts()
	count := len(items)

	switch msg.String() {
	case "j", "down":
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "g", "home":
		m.selectedRow = 0
	case "G", "end":
		if count > 0 {
			m.selectedRow = count - 1
		}
	case "ctrl+d":
		m.selectedRow += m.listHeight() / 2
		m.clampSelection()
	case "ctrl+u":
		m.selectedRow -= m.listHeight() / 2
		m.clampSelection()

	case "t":
		m.cycleGradeTab()
		m.clampSelection()

	case "m":
		return m, m.loadMore()

	case "s":
		if m.favorites != nil && m.selectedRow < count {
			m.favorites.Toggle(items[m.selectedRow])
		}

	case "enter":
		if m.selectedRow < count {
			return m, m.openDetail(items[m.selectedRow].Key(), false, ViewResults)
		}
	}

	return m, nil
}

// cycleGradeTab advances the grade tab to the next letter, wrapping back
// to the all-grades tab after "e".
func (m *Model) cycleGradeTab() {
	current := m.filters.Grade()
	for i, g := range gradeTabs {
		if g == current {
			m.filters.SetGrade(gradeTabs[(i+1)%len(gradeTabs)])
			return
		}
	}
	m.filters.SetGrade("")
}

// listHeight is the number of rows available for result lines.
func (m Model) listHeight() int {
	// header + cmdbar + search bar + tab row + box borders
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

// renderResults renders the search bar, grade tabs and the result list.
func (m Model) renderResults() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")
	b.WriteString(m.renderGradeTabs())
	b.WriteString("\n")

	items := m.visibleProducts()
	contentHeight := m.height - 4 // header, cmdbar, search bar, tab row

	if len(items) == 0 {
		msg := m.emptyResultsMessage()
		empty := styles.MutedText.Render(msg)
		return b.String() + lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	title := m.resultsTitle(len(items))
	list := m.renderResultRows(items, m.width-2)
	b.WriteString(m.renderTitledBox(title, list, m.width, contentHeight, true))
	return b.String()
}

// emptyResultsMessage explains why the list is empty.
func (m Model) emptyResultsMessage() string {
	switch {
	case m.snapshot.Loading:
		return "Loading products..."
	case m.snapshot.Err != nil:
		return "Fetch failed. Press m to retry, / to search."
	case !m.snapshot.Query.Active():
		return "Press / to search or c to browse categories"
	case len(m.snapshot.Products) > 0:
		return "No products match the active filters. Press F to adjust."
	default:
		return "No products found"
	}
}

// resultsTitle builds the box title with visible/fetched/total counts.
func (m Model) resultsTitle(visible int) string {
	fetched := len(m.snapshot.Products)
	title := fmt.Sprintf("Products (%s)", formatCount(fetched, m.snapshot.Total))
	if visible != fetched {
		title = fmt.Sprintf("Products (%d shown, %s)", visible, formatCount(fetched, m.snapshot.Total))
	}
	if m.snapshot.HasMore() && !m.snapshot.Loading {
		title += " · m: more"
	}
	return title
}

// renderResultRows renders one line per product with a grade badge,
// name, brand and energy.
func (m Model) renderResultRows(items []off.Product, width int) string {
	var lines []string
	start, end := m.visibleWindow(len(items))

	for i := start; i < end; i++ {
		item := items[i]
		if i == m.selectedRow {
			content := m.formatResultRow(item, width, m.theme.SelectionBg, true)
			lines = append(lines, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Width(width).
				Render(content))
		} else {
			content := m.formatResultRow(item, width, m.theme.SurfaceAlt, false)
			lines = append(lines, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SurfaceAlt)).
				Width(width).
				Render(content))
		}
	}

	return strings.Join(lines, "\n")
}

// visibleWindow returns the slice of rows that fits the list height,
// scrolled so the selection stays visible.
func (m Model) visibleWindow(count int) (int, int) {
	height := m.listHeight()
	if count <= height {
		return 0, count
	}
	start := m.selectedRow - height/2
	if start < 0 {
		start = 0
	}
	if start+height > count {
		start = count - height
	}
	return start, start + height
}

// formatResultRow formats one product line:
// "[A] Name · Brand  123 kcal ★"
func (m Model) formatResultRow(item off.Product, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	badge := m.renderGradeBadge(item.Grade())

	var nameStyle, sepStyle, brandStyle, kcalStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, sepStyle, brandStyle, kcalStyle = selText, selText, selText, selText
	} else {
		nameStyle = styles.Text
		sepStyle = styles.FaintText
		brandStyle = styles.MutedText
		kcalStyle = styles.InfoText
	}

	name := item.DisplayName()
	if name == "" {
		name = item.Key()
	}
	brand := strings.TrimSpace(item.Brands)

	kcal := ""
	if v, ok := item.Nutrient("energy-kcal"); ok {
		kcal = fmt.Sprintf("%s kcal", formatAmount(v))
	}

	fav := ""
	if m.favorites != nil && m.favorites.Contains(item.Key()) {
		fav = "★"
	}

	// Budget the name against the fixed-width tail parts. Rune counts,
	// not byte lengths: brands and the favorite star are non-ASCII.
	tail := utf8.RuneCountInString(kcal) + utf8.RuneCountInString(fav) + 4
	if brand != "" {
		if utf8.RuneCountInString(brand) > 24 {
			tail += 24 + 3
		} else {
			tail += utf8.RuneCountInString(brand) + 3
		}
	}
	nameWidth := width - 6 - tail // badge takes ~5 cells
	if nameWidth < 10 {
		nameWidth = 10
	}

	parts := []string{badge, bg.Render(truncate(name, nameWidth), nameStyle)}
	if brand != "" {
		parts = append(parts, bg.Render("·", sepStyle), bg.Render(truncate(brand, 24), brandStyle))
	}
	if kcal != "" {
		parts = append(parts, bg.Render(kcal, kcalStyle))
	}
	if fav != "" {
		parts = append(parts, bg.Render(fav, styles.WarningText))
	}

	return strings.Join(parts, bg.Space())
}

// renderGradeBadge renders the colored Nutri-Score letter badge.
func (m Model) renderGradeBadge(grade string) string {
	styles := m.theme.Styles()
	letter := strings.ToUpper(grade)
	if letter == "" {
		letter = "?"
	}
	return styles.GradeStyle(grade).Render(letter)
}

// renderGradeTabs renders the Nutri-Score tab row.
func (m Model) renderGradeTabs() string {
	styles := m.theme.Styles()
	active := m.filters.Grade()

	var parts []string
	for _, g := range gradeTabs {
		label := "All"
		if g != "" {
			label = strings.ToUpper(g)
		}
		if g == active {
			parts = append(parts, styles.GradeStyle(g).Render(label))
		} else {
			parts = append(parts, styles.MutedText.Render(label))
		}
	}
	return styles.FaintText.Render("Grade ") + strings.Join(parts, styles.FaintText.Render(" | "))
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.SurfaceAlt
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	titleLen := len(title)
	leftPad := (innerWidth - titleLen - 2) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := innerWidth - titleLen - 2 - leftPad
	if rightPad < 0 {
		rightPad = 0
	}

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	var paddedLines []string
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}
