package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"larder/internal/off"
)

// nutritionRows lists the per-100g table rows in display order.
var nutritionRows = []struct {
	nutrient string
	label    string
	unit     string
}{
	{"energy-kcal", "Energy", "kcal"},
	{"fat", "Fat", "g"},
	{"saturated-fat", "Saturated fat", "g"},
	{"carbohydrates", "Carbohydrates", "g"},
	{"sugars", "Sugars", "g"},
	{"fiber", "Fiber", "g"},
	{"proteins", "Proteins", "g"},
	{"salt", "Salt", "g"},
}

// initDetailViewport sizes the detail viewport once on startup.
func (m *Model) initDetailViewport() {
	m.detailViewport = viewport.New(m.width-4, m.detailHeight())
}

// resizeDetailViewport tracks terminal resizes.
func (m *Model) resizeDetailViewport() {
	m.detailViewport.Width = m.width - 4
	m.detailViewport.Height = m.detailHeight()
}

func (m Model) detailHeight() int {
	h := m.height - 4 // header, cmdbar, box borders
	if h < 1 {
		h = 1
	}
	return h
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if m.favorites != nil && m.detailProduct != nil {
			m.favorites.Toggle(*m.detailProduct)
			m.updateDetailViewport()
		}
		return m, nil

	case "q", "backspace":
		m.currentView = m.detailReturn
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// updateDetailViewport rebuilds the viewport content from the current
// detail state.
func (m *Model) updateDetailViewport() {
	m.detailViewport.SetContent(m.detailContent())
	m.detailViewport.GotoTop()
}

// renderDetail renders the product detail view.
func (m Model) renderDetail() string {
	contentHeight := m.height - 2

	title := "Product"
	if m.detailProduct != nil {
		title = truncate(m.detailProduct.DisplayName(), 48)
		if title == "" {
			title = m.detailProduct.Key()
		}
	}

	return m.renderTitledBox(title, m.detailViewport.View(), m.width, contentHeight, true)
}

// detailContent builds the full detail text, including the loading and
// error states.
func (m Model) detailContent() string {
	styles := m.theme.Styles()

	if m.detailLoading {
		return styles.MutedText.Render("Loading product...")
	}
	if m.detailErr != nil {
		if errors.Is(m.detailErr, off.ErrNotFound) {
			return styles.WarningText.Render("Product not found.") + "\n\n" +
				styles.MutedText.Render("The code may be wrong or the product is not in the database.")
		}
		return styles.DangerText.Render("Lookup failed.") + "\n\n" +
			styles.MutedText.Render(m.detailErr.Error())
	}
	if m.detailProduct == nil {
		return styles.MutedText.Render("No product selected.")
	}

	p := *m.detailProduct
	var b strings.Builder

	// Identity block
	name := p.DisplayName()
	if name == "" {
		name = p.Key()
	}
	b.WriteString(styles.Text.Bold(true).Render(name))
	b.WriteString("\n")
	if brands := strings.TrimSpace(p.Brands); brands != "" {
		b.WriteString(styles.MutedText.Render(brands))
		b.WriteString("\n")
	}
	if p.Code != "" {
		b.WriteString(styles.FaintText.Render("Barcode " + p.Code))
		b.WriteString("\n")
	}
	if m.favorites != nil && m.favorites.Contains(p.Key()) {
		b.WriteString(styles.WarningText.Render("★ Favorite"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Scores
	var scores []string
	scores = append(scores, styles.MutedText.Render("Nutri-Score")+" "+m.renderGradeBadge(p.Grade()))
	if eco := strings.ToLower(strings.TrimSpace(p.EcoscoreGrade)); eco != "" {
		scores = append(scores, styles.MutedText.Render("Eco-Score")+" "+m.renderGradeBadge(eco))
	}
	if p.NovaGroup > 0 {
		scores = append(scores, styles.MutedText.Render("NOVA")+" "+styles.Text.Render(fmt.Sprintf("%d", p.NovaGroup)))
	}
	b.WriteString(strings.Join(scores, "   "))
	b.WriteString("\n\n")

	// Nutrition table
	b.WriteString(styles.AccentText.Bold(true).Render("Nutrition per 100g"))
	b.WriteString("\n")
	wroteRow := false
	for _, row := range nutritionRows {
		v, ok := p.Nutrient(row.nutrient)
		if !ok {
			continue
		}
		wroteRow = true
		label := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Width(16).
			Render(row.label)
		b.WriteString(label)
		b.WriteString(styles.Text.Render(fmt.Sprintf("%s %s", formatAmount(v), row.unit)))
		b.WriteString("\n")
	}
	if !wroteRow {
		b.WriteString(styles.FaintText.Render("No nutrition data"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Ingredients
	if ing := strings.TrimSpace(p.IngredientsText); ing != "" {
		b.WriteString(styles.AccentText.Bold(true).Render("Ingredients"))
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(ing))
		b.WriteString("\n\n")
	}

	// Allergens
	if len(p.AllergensTags) > 0 {
		labels := make([]string, 0, len(p.AllergensTags))
		for _, tag := range p.AllergensTags {
			labels = append(labels, tagLabel(tag))
		}
		b.WriteString(styles.AccentText.Bold(true).Render("Allergens"))
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(strings.Join(labels, ", ")))
		b.WriteString("\n\n")
	}

	// Categories
	if len(p.CategoriesTags) > 0 {
		labels := make([]string, 0, len(p.CategoriesTags))
		for _, tag := range p.CategoriesTags {
			labels = append(labels, tagLabel(tag))
		}
		b.WriteString(styles.AccentText.Bold(true).Render("Categories"))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(strings.Join(labels, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}
