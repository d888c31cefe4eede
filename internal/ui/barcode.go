package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"larder/internal/off"
)

// openBarcodePrompt opens the barcode lookup overlay.
func (m *Model) openBarcodePrompt() {
	m.barcodeInput.SetValue("")
	m.barcodeInput.Focus()
	m.barcodeErr = ""
	m.showBarcode = true
}

// handleBarcodeKey handles keyboard input for the barcode overlay.
// Validation happens before any network request is issued.
func (m Model) handleBarcodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.showBarcode = false
		m.barcodeInput.Blur()
		return m, nil

	case "enter":
		code := strings.TrimSpace(m.barcodeInput.Value())
		if !off.ValidBarcode(code) {
			m.barcodeErr = "Barcode must be 8, 12, 13 or 14 digits."
			return m, nil
		}
		m.showBarcode = false
		m.barcodeInput.Blur()
		return m, m.openDetail(code, true, ViewResults)
	}

	var cmd tea.Cmd
	m.barcodeInput, cmd = m.barcodeInput.Update(msg)
	m.barcodeErr = ""
	return m, cmd
}

// renderBarcodePrompt renders the barcode lookup modal.
func (m Model) renderBarcodePrompt() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Barcode Lookup"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Enter an EAN-8, UPC-A, EAN-13 or GTIN-14 code."))
	b.WriteString("\n\n")
	b.WriteString(m.barcodeInput.View())
	b.WriteString("\n")
	if m.barcodeErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.barcodeErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Enter: Look up  ·  Esc: Cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(50)

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
