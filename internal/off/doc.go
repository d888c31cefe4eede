// Package off provides an HTTP client for the Open Food Facts API.
//
// # Overview
//
// This package is Larder's only network boundary. It translates the three
// query shapes the application needs (free-text search, category browse,
// and single-product lookup by identifier or barcode) into GET requests
// against a configurable Open Food Facts instance and normalizes the
// heterogeneous response shapes into uniform Go types.
//
// # Endpoints
//
//   - GET /cgi/search.pl?search_terms=...&json=true&page=N&page_size=M
//   - GET /cgi/search.pl?action=process&tagtype_0=categories&tag_contains_0=contains&tag_0=...&page=N&page_size=M&json=1
//   - GET /api/v0/product/{id}
//   - GET /api/v0/product/{barcode}.json
//
// Collection responses decode into SearchResult; single-product responses
// decode into an envelope whose status field distinguishes "not found"
// from transport failure.
//
// # Normalization
//
// The API frequently omits fields. A missing products list or count in a
// collection response defaults to an empty slice / zero and is never
// treated as an error; only transport-level failures (network, HTTP 4xx/5xx,
// malformed JSON) surface as errors. Nutriment values arrive as JSON
// numbers or, occasionally, numeric strings; Product.Nutrient coerces
// both and reports absence explicitly.
//
// # Error taxonomy
//
//   - ErrEmptyQuery, ErrInvalidBarcode: invalid input, raised before any
//     I/O so callers can show a form-level message.
//   - ErrNotFound: the source answered and reported zero results.
//   - Anything else: the source was unavailable; callers show a generic
//     retry message and keep whatever they were already displaying.
//
// All errors are wrapped with context using fmt.Errorf; sentinels are
// matched with errors.Is.
//
// # Request handling
//
// Every request takes a context for cancellation, sets Accept and
// User-Agent headers, and shares a 10-second http.Client timeout. The
// client is read-only, stateless, and safe for concurrent use; the
// multi-category fan-out in the catalog package issues several category
// requests against one Client at a time.
//
// # Testing
//
// Use httptest.Server as the base URL. The tests in this package cover
// query construction, defaulting, the not-found envelope, and the
// pre-I/O validation paths.
package off
