package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"larder/internal/off"
)

func f(v float64) *float64 { return &v }

func sample() []off.Product {
	return []off.Product{
		{ID: "1", ProductName: "Brioche", NutriscoreGrade: "d", Nutriments: map[string]any{"sugars_100g": 18.0, "energy-kcal_100g": 390.0}},
		{ID: "2", ProductName: "Apple juice", NutriscoreGrade: "c", Nutriments: map[string]any{"sugars_100g": 10.0, "energy-kcal_100g": 46.0}},
		{ID: "3", ProductName: "Mystery bar"}, // no nutriments, no grade
		{ID: "4", ProductName: "Dark chocolate", NutriscoreGrade: "E", Nutriments: map[string]any{"sugars_100g": 29.0, "energy-kcal_100g": 534.0}},
	}
}

func ids(items []off.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestApply_RangeFiltering(t *testing.T) {
	var cfg Config
	cfg.SetRange("sugars", nil, f(15))

	got := Apply(sample(), &cfg)
	// 10 <= 15 passes, absent passes through, 18 and 29 fail.
	require.Equal(t, []string{"2", "3"}, ids(got))

	cfg.SetRange("sugars", f(12), f(30)) // re-add replaces the range
	got = Apply(sample(), &cfg)
	require.Equal(t, []string{"1", "3", "4"}, ids(got))
}

func TestApply_RangesAreANDed(t *testing.T) {
	var cfg Config
	cfg.SetRange("sugars", nil, f(20))
	cfg.SetRange("energy-kcal", f(100), nil)

	got := Apply(sample(), &cfg)
	// 1: sugars 18 ok, energy 390 ok. 2: energy 46 fails the min.
	// 3: both absent, passes. 4: sugars 29 fails the max.
	require.Equal(t, []string{"1", "3"}, ids(got))
}

func TestApply_NeverAddsItems(t *testing.T) {
	in := sample()
	var cfg Config
	cfg.SetRange("salt", f(0), f(1))

	got := Apply(in, &cfg)
	require.LessOrEqual(t, len(got), len(in))
	seen := make(map[string]struct{}, len(in))
	for _, p := range in {
		seen[p.ID] = struct{}{}
	}
	for _, p := range got {
		require.Contains(t, seen, p.ID, "filtering must not invent items")
	}
}

func TestApply_SortByName(t *testing.T) {
	var cfg Config
	cfg.SetSort(SortName, Asc)

	got := Apply(sample(), &cfg)
	require.Equal(t, []string{"2", "1", "4", "3"}, ids(got))

	cfg.SetSort(SortName, Desc)
	require.Equal(t, []string{"3", "4", "1", "2"}, ids(Apply(sample(), &cfg)))
}

func TestApply_SortByGradeUngradedLast(t *testing.T) {
	var cfg Config
	cfg.SetSort(SortGrade, Asc)

	got := Apply(sample(), &cfg)
	// c, d, e(normalized from "E"), then the ungraded item as "z".
	require.Equal(t, []string{"2", "1", "4", "3"}, ids(got))
}

func TestApply_SortByEnergyMissingAsZero(t *testing.T) {
	var cfg Config
	cfg.SetSort(SortEnergy, Asc)

	got := Apply(sample(), &cfg)
	require.Equal(t, []string{"3", "2", "1", "4"}, ids(got))
}

func TestApply_DescIsReverseOfAscWithoutTies(t *testing.T) {
	var asc, desc Config
	asc.SetSort(SortEnergy, Asc)
	desc.SetSort(SortEnergy, Desc)

	up := Apply(sample(), &asc)
	down := Apply(sample(), &desc)
	require.Len(t, down, len(up))
	for i := range up {
		require.Equal(t, up[i].ID, down[len(down)-1-i].ID)
	}
}

func TestApply_SortIsStableAndIdempotent(t *testing.T) {
	items := []off.Product{
		{ID: "a", ProductName: "Same", NutriscoreGrade: "b"},
		{ID: "b", ProductName: "Same", NutriscoreGrade: "b"},
		{ID: "c", ProductName: "Same", NutriscoreGrade: "a"},
	}
	var cfg Config
	cfg.SetSort(SortName, Asc)

	once := Apply(items, &cfg)
	twice := Apply(once, &cfg)
	require.Equal(t, ids(once), ids(twice))
	// Tied names keep arrival order.
	require.Equal(t, []string{"a", "b", "c"}, ids(once))
}

func TestApply_GradeTabAfterSort(t *testing.T) {
	var cfg Config
	cfg.SetSort(SortName, Asc)
	cfg.SetGrade("E")

	got := Apply(sample(), &cfg)
	require.Equal(t, []string{"4"}, ids(got), "grade tab matches case-insensitively")

	cfg.SetGrade("")
	require.Len(t, Apply(sample(), &cfg), 4, "empty grade selection is a no-op")
}

func TestConfig_Lifecycle(t *testing.T) {
	var cfg Config
	require.True(t, cfg.Empty())

	cfg.SetRange("sugars", f(1), nil)
	cfg.SetRange("fat", nil, f(5))
	require.Len(t, cfg.Ranges(), 2)

	cfg.RemoveRange("sugars")
	ranges := cfg.Ranges()
	require.Len(t, ranges, 1)
	require.Equal(t, "fat", ranges[0].Nutrient)

	cfg.SetSort(SortGrade, Desc)
	key, dir := cfg.Sort()
	require.Equal(t, SortGrade, key)
	require.Equal(t, Desc, dir)

	cfg.ClearAll()
	require.True(t, cfg.Empty())
}

func TestView_CachesUntilInputsChange(t *testing.T) {
	items := sample()
	var cfg Config
	cfg.SetSort(SortName, Asc)

	var view View
	first := view.Apply(items, &cfg)
	second := view.Apply(items, &cfg)
	require.Same(t, &first[0], &second[0], "unchanged inputs reuse the cached slice")

	cfg.SetGrade("d")
	third := view.Apply(items, &cfg)
	require.Equal(t, []string{"1"}, ids(third), "config change recomputes")

	cfg.SetGrade("")
	grown := append(items, off.Product{ID: "5", ProductName: "Zwieback"})
	fourth := view.Apply(grown, &cfg)
	require.Len(t, fourth, 5, "collection change recomputes")
}
