package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// truncate truncates a string to max runes with ellipsis. Product names
// are frequently non-ASCII, so slicing happens on runes, never bytes.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// truncateMiddle truncates a string in the middle, preserving start and end.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 5 {
		return string(runes[:max])
	}
	// Keep more of the end than the start
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	return string(runes[:startLen]) + "..." + string(runes[len(runes)-endLen:])
}

// titleCase converts a dashed or lowercase string to Title Case.
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}

// tagLabel converts an Open Food Facts tag like "en:breakfast-cereals"
// into a display label like "Breakfast Cereals".
func tagLabel(tag string) string {
	if idx := strings.Index(tag, ":"); idx >= 0 {
		tag = tag[idx+1:]
	}
	return titleCase(tag)
}

// formatAmount renders a per-100g value without trailing zero noise.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// formatCount renders a result count like "48 of 1204".
func formatCount(have, total int) string {
	if total <= 0 {
		return fmt.Sprintf("%d", have)
	}
	return fmt.Sprintf("%d of %d", have, total)
}
