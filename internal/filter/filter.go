package filter

import (
	"sort"
	"strings"

	"larder/internal/off"
)

// SortKey selects the comparison key for the optional sort stage.
type SortKey int

const (
	SortNone SortKey = iota
	SortName
	SortGrade
	SortEnergy
)

// SortDir is the sort direction.
type SortDir int

const (
	Asc SortDir = iota
	Desc
)

// Range is an inclusive numeric bound on one nutrient's per-100g value.
// A nil Min or Max leaves that side unbounded.
type Range struct {
	Nutrient string
	Min      *float64
	Max      *float64
}

// Config is the user's filter configuration: nutrient ranges (unique per
// nutrient), an optional sort key with direction, and the Nutri-Score
// grade tab. It lives independently of the product collection and
// persists across queries until explicitly cleared.
type Config struct {
	ranges  []Range
	sortKey SortKey
	sortDir SortDir
	grade   string
	version uint64
}

// SetRange adds or replaces the range for a nutrient.
func (c *Config) SetRange(nutrient string, min, max *float64) {
	c.version++
	for i := range c.ranges {
		if c.ranges[i].Nutrient == nutrient {
			c.ranges[i].Min = min
			c.ranges[i].Max = max
			return
		}
	}
	c.ranges = append(c.ranges, Range{Nutrient: nutrient, Min: min, Max: max})
}

// RemoveRange drops the range for a nutrient, if present.
func (c *Config) RemoveRange(nutrient string) {
	c.version++
	for i := range c.ranges {
		if c.ranges[i].Nutrient == nutrient {
			c.ranges = append(c.ranges[:i], c.ranges[i+1:]...)
			return
		}
	}
}

// ClearRanges drops all nutrient ranges.
func (c *Config) ClearRanges() {
	c.version++
	c.ranges = nil
}

// Ranges returns the configured ranges in insertion order.
func (c *Config) Ranges() []Range {
	dup := make([]Range, len(c.ranges))
	copy(dup, c.ranges)
	return dup
}

// SetSort selects the sort key and direction. SortNone restores natural
// (arrival) order.
func (c *Config) SetSort(key SortKey, dir SortDir) {
	c.version++
	c.sortKey = key
	c.sortDir = dir
}

// Sort returns the active sort key and direction.
func (c *Config) Sort() (SortKey, SortDir) {
	return c.sortKey, c.sortDir
}

// SetGrade selects the Nutri-Score grade tab; empty means all grades.
func (c *Config) SetGrade(grade string) {
	c.version++
	c.grade = strings.ToLower(strings.TrimSpace(grade))
}

// Grade returns the active grade tab selection.
func (c *Config) Grade() string {
	return c.grade
}

// ClearAll resets ranges, sort, and the grade tab.
func (c *Config) ClearAll() {
	c.version++
	c.ranges = nil
	c.sortKey = SortNone
	c.sortDir = Asc
	c.grade = ""
}

// Empty reports whether the configuration has no effect.
func (c *Config) Empty() bool {
	return len(c.ranges) == 0 && c.sortKey == SortNone && c.grade == ""
}

// Apply derives the displayable sequence from a product collection:
// nutrient-range filtering, then a stable sort when a key is set, then
// the grade tab. The input is never mutated.
func Apply(products []off.Product, cfg *Config) []off.Product {
	out := make([]off.Product, 0, len(products))
	for _, p := range products {
		if passesRanges(p, cfg.ranges) {
			out = append(out, p)
		}
	}

	if cfg.sortKey != SortNone {
		sort.SliceStable(out, func(i, j int) bool {
			cmp := compare(out[i], out[j], cfg.sortKey)
			if cfg.sortDir == Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if cfg.grade != "" {
		kept := out[:0]
		for _, p := range out {
			if strings.EqualFold(p.Grade(), cfg.grade) {
				kept = append(kept, p)
			}
		}
		out = kept
	}
	return out
}

// passesRanges applies the pass-through rule: a product with the filtered
// nutrient absent always passes; otherwise every configured bound must
// hold.
func passesRanges(p off.Product, ranges []Range) bool {
	for _, r := range ranges {
		value, ok := p.Nutrient(r.Nutrient)
		if !ok {
			continue
		}
		if r.Min != nil && value < *r.Min {
			return false
		}
		if r.Max != nil && value > *r.Max {
			return false
		}
	}
	return true
}

func compare(a, b off.Product, key SortKey) int {
	switch key {
	case SortName:
		return strings.Compare(a.DisplayName(), b.DisplayName())
	case SortGrade:
		return strings.Compare(gradeOrZ(a), gradeOrZ(b))
	case SortEnergy:
		ea, eb := a.EnergyKcal100g(), b.EnergyKcal100g()
		switch {
		case ea < eb:
			return -1
		case ea > eb:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// gradeOrZ sorts ungraded products last in ascending order.
func gradeOrZ(p off.Product) string {
	if g := p.Grade(); g != "" {
		return g
	}
	return "z"
}
