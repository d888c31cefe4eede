package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"larder/internal/off"
)

// FetchCategories fetches one page for every selected category
// concurrently and joins the results. The join is all-or-nothing: if any
// request fails the composite fetch fails and no partial results surface.
//
// The merged product list is the union of the per-category result sets,
// de-duplicated by product key with the first occurrence winning. The
// aggregate count is the sum of each category's reported total, an
// approximation (shared products are counted once per category), kept
// because the source offers no distinct count across categories.
func FetchCategories(ctx context.Context, src off.Source, categories []string, page int) (off.SearchResult, error) {
	results := make([]off.SearchResult, len(categories))

	g, ctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			res, err := src.FetchCategory(ctx, category, page)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return off.SearchResult{}, err
	}

	merged := off.SearchResult{Page: page}
	for _, res := range results {
		merged.Products = appendDedup(merged.Products, res.Products)
		merged.Count += res.Count
	}
	if merged.Products == nil {
		merged.Products = []off.Product{}
	}
	return merged, nil
}
