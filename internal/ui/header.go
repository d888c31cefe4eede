package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, active query, counts,
// loading flag, filter indicator and the last fetch error.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	compact := m.width < 100

	var parts []string

	// Logo
	parts = append(parts, bg.Render("larder", styles.Logo))

	// Active query
	if m.snapshot.Query.Active() {
		label := truncate(m.snapshot.Query.Label(), 40)
		if compact {
			label = truncate(label, 20)
		}
		parts = append(parts, bg.Render(label, styles.AccentText))
		parts = append(parts,
			bg.Render("Results:", styles.MutedText)+bg.Space()+
				bg.Render(formatCount(len(m.snapshot.Products), m.snapshot.Total), styles.Text))
	} else {
		parts = append(parts, bg.Render("Open Food Facts explorer", styles.MutedText))
	}

	// Loading indicator
	if m.snapshot.Loading || m.detailLoading {
		parts = append(parts,
			bg.Render(m.spinner.View(), styles.WarningText)+bg.Space()+
				bg.Render("Loading", styles.WarningText.Bold(true)))
	}

	// Filter indicator
	if !m.filters.Empty() {
		label := "FILTERED"
		if grade := m.filters.Grade(); grade != "" {
			label += " " + strings.ToUpper(grade)
		}
		parts = append(parts, bg.Render(label, styles.InfoText))
	}

	// Favorites count
	if m.favorites != nil && m.favorites.Len() > 0 {
		parts = append(parts,
			bg.Render("★", styles.WarningText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", m.favorites.Len()), styles.MutedText))
	}

	// Timestamp of the last completed fetch
	if !m.lastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.lastUpdated.Format("15:04:05"), styles.MutedText))
	}

	// Fetch error
	if m.snapshot.Err != nil {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		errText := truncate(classifyFetchError(m.snapshot.Err), maxErr)
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(errText, styles.DangerText))
	}

	content := bg.Join(parts, "  ")
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(content)
}

// classifyFetchError returns a short description of a fetch failure.
func classifyFetchError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "context deadline exceeded"), strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return msg
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewCategories:
		commands = []cmd{
			{"Space", "Toggle"},
			{"Enter", "Browse"},
			{"x", "Clear"},
			{"j/k", "Navigate"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case ViewDetail:
		commands = []cmd{
			{"s", "Favorite"},
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case ViewFavorites:
		commands = []cmd{
			{"Enter", "Details"},
			{"s", "Remove"},
			{"j/k", "Navigate"},
			{"esc", "Back"},
			{"?", "More"},
		}
	default: // ViewResults
		commands = []cmd{
			{"/", "Search"},
			{"c", "Categories"},
			{"F", "Filters"},
			{"t", gradeTabLabel(m.filters.Grade())},
			{"b", "Barcode"},
			{"v", "Favorites"},
			{"s", "Save"},
			{"m", "More"},
			{"?", "Help"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// gradeTabLabel shows the current grade tab state in the command bar.
func gradeTabLabel(grade string) string {
	if grade == "" {
		return "Grade: All"
	}
	return "Grade: " + strings.ToUpper(grade)
}
