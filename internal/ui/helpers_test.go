package ui

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Fatalf("truncate short = %q, want hello", got)
	}
	if got := truncate("hello world", 8); got != "hello..." {
		t.Fatalf("truncate = %q, want hello...", got)
	}
	if got := truncate("abcd", 2); got != "ab" {
		t.Fatalf("truncate limit<=3 = %q, want ab", got)
	}
	if got := truncate("abcd", 0); got != "" {
		t.Fatalf("truncate zero = %q, want empty", got)
	}
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	names := []string{
		"Crème brûlée au caramel",
		"Pâtes aux œufs frais",
		"ééééééééééé",
	}
	for _, name := range names {
		for max := 0; max <= utf8.RuneCountInString(name)+1; max++ {
			got := truncate(name, max)
			if !utf8.ValidString(got) {
				t.Fatalf("truncate(%q, %d) = %q, invalid UTF-8", name, max, got)
			}
			if n := utf8.RuneCountInString(got); n > max && max > 0 {
				t.Fatalf("truncate(%q, %d) = %q, %d runes", name, max, got, n)
			}
		}
	}
	if got := truncate("ééééééééééé", 1); got != "é" {
		t.Fatalf("truncate tiny limit = %q, want é", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("short", 10); got != "short" {
		t.Fatalf("truncateMiddle short = %q, want short", got)
	}
	got := truncateMiddle("a/very/long/path/name", 12)
	if got == "a/very/long/path/name" {
		t.Fatalf("expected truncation")
	}
	if len(got) > 12 {
		t.Fatalf("got %q (%d chars), want <=12", got, len(got))
	}
}

func TestTruncateMiddleNeverSplitsRunes(t *testing.T) {
	name := "Gâteau basque à la crème"
	for max := 0; max <= utf8.RuneCountInString(name)+1; max++ {
		got := truncateMiddle(name, max)
		if !utf8.ValidString(got) {
			t.Fatalf("truncateMiddle(%q, %d) = %q, invalid UTF-8", name, max, got)
		}
		if n := utf8.RuneCountInString(got); n > max && max > 0 {
			t.Fatalf("truncateMiddle(%q, %d) = %q, %d runes", name, max, got, n)
		}
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("breakfast-cereals"); got != "Breakfast Cereals" {
		t.Fatalf("titleCase = %q, want Breakfast Cereals", got)
	}
	if got := titleCase("saturated_fat"); got != "Saturated Fat" {
		t.Fatalf("titleCase = %q, want Saturated Fat", got)
	}
}

func TestTagLabel(t *testing.T) {
	if got := tagLabel("en:breakfast-cereals"); got != "Breakfast Cereals" {
		t.Fatalf("tagLabel = %q, want Breakfast Cereals", got)
	}
	if got := tagLabel("dairy"); got != "Dairy" {
		t.Fatalf("tagLabel without prefix = %q, want Dairy", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{12.5, "12.5"},
		{12.0, "12"},
		{0.4, "0.4"},
		{0, "0"},
		{3.14159, "3.14"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Fatalf("formatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := formatCount(24, 120); got != "24 of 120" {
		t.Fatalf("formatCount = %q, want 24 of 120", got)
	}
	if got := formatCount(5, 0); got != "5" {
		t.Fatalf("formatCount no total = %q, want 5", got)
	}
}
