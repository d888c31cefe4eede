package catalog

import "strings"

// QueryKind identifies which browse flow produced the current collection.
type QueryKind int

const (
	QueryNone QueryKind = iota
	QuerySearch
	QueryCategory
	QueryCategories
)

// Query is the active query descriptor: the search/browse criterion that
// determines which load-more request to issue next. At most one kind is
// active at a time.
type Query struct {
	Kind       QueryKind
	Text       string   // QuerySearch
	Category   string   // QueryCategory
	Categories []string // QueryCategories
}

// SearchQuery builds a text-search descriptor.
func SearchQuery(text string) Query {
	return Query{Kind: QuerySearch, Text: strings.TrimSpace(text)}
}

// CategoryQuery builds a single-category descriptor.
func CategoryQuery(category string) Query {
	return Query{Kind: QueryCategory, Category: category}
}

// CategoriesQuery builds a multi-category descriptor.
func CategoriesQuery(categories []string) Query {
	dup := make([]string, len(categories))
	copy(dup, categories)
	return Query{Kind: QueryCategories, Categories: dup}
}

// Active reports whether the descriptor names a query at all.
func (q Query) Active() bool {
	return q.Kind != QueryNone
}

// Label returns a short human-readable description for the header bar.
func (q Query) Label() string {
	switch q.Kind {
	case QuerySearch:
		return "\"" + q.Text + "\""
	case QueryCategory:
		return q.Category
	case QueryCategories:
		return strings.Join(q.Categories, ", ")
	default:
		return ""
	}
}

func (q Query) clone() Query {
	if q.Kind == QueryCategories {
		dup := make([]string, len(q.Categories))
		copy(dup, q.Categories)
		q.Categories = dup
	}
	return q
}
