package search

import (
	"net/url"
	"sort"
	"strings"

	"github.com/shopeasy/storefront/internal/storefront/model"
)

// DefaultMaxSuggestions caps the suggestion list.
const DefaultMaxSuggestions = 8

// Sort orders accepted by Search.
const (
	SortNone      = ""
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
)

// FilterProducts keeps products whose name or category contains term,
// ignoring case. An empty term returns the catalog unchanged.
func FilterProducts(products []model.Product, term string) []model.Product {
	q := strings.ToLower(term)
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Index answers suggestion queries over a fixed list of names.
type Index struct {
	names []string
	lower []string
	max   int
}

// NewIndex builds an index; max <= 0 falls back to DefaultMaxSuggestions.
func NewIndex(names []string, max int) *Index {
	if max <= 0 {
		max = DefaultMaxSuggestions
	}
	lower := make([]string, len(names))
	for i, n := range names {
		lower[i] = strings.ToLower(n)
	}
	return &Index{names: names, lower: lower, max: max}
}

// Suggest returns up to max names containing term, ignoring case, in list
// order. A blank term yields nothing.
func (ix *Index) Suggest(term string) []string {
	out := []string{}
	if strings.TrimSpace(term) == "" {
		return out
	}
	q := strings.ToLower(term)
	for i, n := range ix.lower {
		if !strings.Contains(n, q) {
			continue
		}
		out = append(out, ix.names[i])
		if len(out) == ix.max {
			break
		}
	}
	return out
}

// Query describes a search results page request.
type Query struct {
	Term string
	// MaxPrice drops products above it; zero disables the filter.
	MaxPrice float64
	Sort     string
}

// Search filters products by term, then by price, then orders them.
// Unknown sort values keep catalog order.
func Search(products []model.Product, q Query) []model.Product {
	out := FilterProducts(products, NormalizeTerm(q.Term))
	if q.MaxPrice > 0 {
		kept := out[:0]
		for _, p := range out {
			if p.Price <= q.MaxPrice {
				kept = append(kept, p)
			}
		}
		out = kept
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

// NormalizeTerm trims the raw term read from the query string.
func NormalizeTerm(term string) string {
	return strings.TrimSpace(term)
}

// componentEscaper turns url.QueryEscape output into URI component encoding:
// spaces become %20 and the marks !'()* stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// ResultsURL is the address the search page reflects after a search, without
// reloading.
func ResultsURL(path, term string) string {
	return path + "?q=" + componentEscaper.Replace(url.QueryEscape(NormalizeTerm(term)))
}
