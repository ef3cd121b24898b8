package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/shopeasy/storefront/internal/storefront/model"
)

// Page names with a catalog of their own.
const (
	SearchPage   = "search"
	ClothingPage = "clothing"
)

//go:embed catalogs.yaml
var catalogsYAML []byte

// Catalog is the static product list of one page.
type Catalog struct {
	Page     string
	Products []model.Product
}

// Find returns the product with id, if the page lists it.
func (c *Catalog) Find(id int) (model.Product, bool) {
	if c == nil {
		return model.Product{}, false
	}
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Set holds every page catalog plus the suggestion names.
type Set struct {
	pages       map[string]*Catalog
	suggestions []string
}

type document struct {
	Catalogs    map[string][]model.Product `yaml:"catalogs"`
	Suggestions []string                   `yaml:"suggestions"`
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	set := &Set{pages: make(map[string]*Catalog, len(doc.Catalogs)), suggestions: doc.Suggestions}
	for page, products := range doc.Catalogs {
		seen := make(map[int]bool, len(products))
		for _, p := range products {
			if seen[p.ID] {
				return nil, fmt.Errorf("catalog %q: duplicate product id %d", page, p.ID)
			}
			if p.Price < 0 {
				return nil, fmt.Errorf("catalog %q: product %d has negative price", page, p.ID)
			}
			seen[p.ID] = true
		}
		set.pages[page] = &Catalog{Page: page, Products: products}
	}
	return set, nil
}

// Default returns the catalogs shipped with the storefront.
func Default() *Set {
	set, err := Parse(catalogsYAML)
	if err != nil {
		panic(err)
	}
	return set
}

// Page returns the catalog of page.
func (s *Set) Page(page string) (*Catalog, bool) {
	c, ok := s.pages[page]
	return c, ok
}

// Pages lists the page names in lexical order.
func (s *Set) Pages() []string {
	out := make([]string, 0, len(s.pages))
	for p := range s.pages {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Suggestions returns the hand maintained suggestion names. The list is
// independent of the page catalogs.
func (s *Set) Suggestions() []string {
	return s.suggestions
}
