package off

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Source defines the interface for querying the product database.
// This interface is implemented by *Client and can be used for testing.
type Source interface {
	Search(ctx context.Context, query string, page int) (SearchResult, error)
	FetchCategory(ctx context.Context, category string, page int) (SearchResult, error)
	FetchProduct(ctx context.Context, id string) (*Product, error)
	FetchBarcode(ctx context.Context, code string) (*Product, error)
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

var (
	// ErrEmptyQuery is returned before any network call when a search
	// query is empty or whitespace.
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrNotFound is returned when the source reports no matching product
	// for an identifier or barcode lookup. It is distinct from transport
	// failures so callers can show a specific message.
	ErrNotFound = errors.New("product not found")

	// ErrInvalidBarcode is returned before any network call when a barcode
	// fails client-side validation.
	ErrInvalidBarcode = errors.New("invalid barcode format")
)

// Client talks to the Open Food Facts HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	pageSize  int
}

const (
	defaultBaseURL   = "https://world.openfoodfacts.org"
	defaultUserAgent = "larder/0.1"
	defaultPageSize  = 24
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. An empty baseURL uses
// the public Open Food Facts instance; pageSize <= 0 uses the default 24.
func NewClient(baseURL string, pageSize int) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		pageSize:  pageSize,
	}, nil
}

// Search runs a free-text product search against /cgi/search.pl.
// The query must be non-empty; page values below 1 are clamped to 1.
func (c *Client) Search(ctx context.Context, query string, page int) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, fmt.Errorf("client is nil")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}
	values := url.Values{}
	values.Set("search_terms", query)
	values.Set("json", "true")
	values.Set("page", strconv.Itoa(page))
	values.Set("page_size", strconv.Itoa(c.pageSize))
	rel := &url.URL{Path: "/cgi/search.pl", RawQuery: values.Encode()}

	var payload SearchResult
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return SearchResult{}, err
	}
	return normalize(payload, page), nil
}

// FetchCategory retrieves one page of products tagged with a category.
func (c *Client) FetchCategory(ctx context.Context, category string, page int) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, fmt.Errorf("client is nil")
	}
	if page < 1 {
		page = 1
	}
	values := url.Values{}
	values.Set("action", "process")
	values.Set("tagtype_0", "categories")
	values.Set("tag_contains_0", "contains")
	values.Set("tag_0", category)
	values.Set("page", strconv.Itoa(page))
	values.Set("page_size", strconv.Itoa(c.pageSize))
	values.Set("json", "1")
	rel := &url.URL{Path: "/cgi/search.pl", RawQuery: values.Encode()}

	var payload SearchResult
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return SearchResult{}, err
	}
	return normalize(payload, page), nil
}

// FetchProduct looks up a single product by identifier via /api/v0/product.
// Returns ErrNotFound when the source reports zero results.
func (c *Client) FetchProduct(ctx context.Context, id string) (*Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	return c.fetchEnvelope(ctx, "/api/v0/product/"+id)
}

// FetchBarcode looks up a product by barcode. The barcode is validated
// before any network call; see ValidBarcode.
func (c *Client) FetchBarcode(ctx context.Context, code string) (*Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	code = strings.TrimSpace(code)
	if !ValidBarcode(code) {
		return nil, ErrInvalidBarcode
	}
	return c.fetchEnvelope(ctx, "/api/v0/product/"+code+".json")
}

func (c *Client) fetchEnvelope(ctx context.Context, path string) (*Product, error) {
	var payload productEnvelope
	if err := c.doURL(ctx, http.MethodGet, &url.URL{Path: path}, &payload); err != nil {
		return nil, err
	}
	if payload.Status == 0 || payload.Product == nil {
		return nil, ErrNotFound
	}
	return payload.Product, nil
}

// normalize applies the defaulting rules for collection responses:
// a missing products list or count never surfaces as an error.
func normalize(r SearchResult, page int) SearchResult {
	if r.Products == nil {
		r.Products = []Product{}
	}
	if r.Page == 0 {
		r.Page = page
	}
	return r
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
