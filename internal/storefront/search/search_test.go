package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/model"
)

func searchCatalog(t *testing.T) []model.Product {
	t.Helper()
	c, ok := catalog.Default().Page(catalog.SearchPage)
	require.True(t, ok)
	return c.Products
}

func TestFilterProducts_EmptyTermIsIdentity(t *testing.T) {
	products := searchCatalog(t)
	assert.Equal(t, products, FilterProducts(products, ""))
}

func TestFilterProducts_MatchesNameOrCategory(t *testing.T) {
	products := searchCatalog(t)

	got := FilterProducts(products, "WIRELESS")
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Wireless Bluetooth Headphones", "Wireless Earbuds"}, names)

	books := FilterProducts(products, "books")
	require.Len(t, books, 4)
	for _, p := range books {
		assert.Equal(t, "Books", p.Category)
	}

	assert.Empty(t, FilterProducts(products, "zzz"))
}

func TestSuggest_BlankTermIsEmpty(t *testing.T) {
	ix := NewIndex(catalog.Default().Suggestions(), 0)
	assert.Empty(t, ix.Suggest(""))
	assert.Empty(t, ix.Suggest("   \t"))
	assert.NotNil(t, ix.Suggest(""))
}

func TestSuggest_CapsAndKeepsListOrder(t *testing.T) {
	names := catalog.Default().Suggestions()
	ix := NewIndex(names, 0)

	got := ix.Suggest("e")
	require.Len(t, got, DefaultMaxSuggestions)

	last := -1
	for _, g := range got {
		assert.Contains(t, strings.ToLower(g), "e")
		pos := indexOf(names, g)
		assert.Greater(t, pos, last, "suggestions out of list order")
		last = pos
	}
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	ix := NewIndex([]string{"Gaming Laptop", "Gaming Console", "Desk Lamp"}, 8)
	assert.Equal(t, []string{"Gaming Laptop", "Gaming Console"}, ix.Suggest("gAmInG"))
	assert.Equal(t, []string{"Desk Lamp"}, ix.Suggest("lamp"))
}

func TestSuggest_CustomLimit(t *testing.T) {
	ix := NewIndex([]string{"a1", "a2", "a3"}, 2)
	assert.Equal(t, []string{"a1", "a2"}, ix.Suggest("a"))
}

func TestSearch_PriceAndSort(t *testing.T) {
	products := searchCatalog(t)

	got := Search(products, Query{Term: " clothing ", MaxPrice: 50, Sort: SortPriceDesc})
	require.Len(t, got, 3)
	assert.Equal(t, "Jeans", got[0].Name)
	assert.Equal(t, "Backpack", got[1].Name)
	assert.Equal(t, "T-Shirt", got[2].Name)

	byName := Search(products, Query{Term: "clothing", Sort: SortName})
	assert.Equal(t, "Backpack", byName[0].Name)
	assert.Equal(t, "T-Shirt", byName[len(byName)-1].Name)

	asc := Search(products, Query{Sort: SortPriceAsc})
	require.Len(t, asc, len(products))
	assert.Equal(t, "Novel Book", asc[0].Name)
	assert.Equal(t, "Gaming Laptop", asc[len(asc)-1].Name)
}

func TestSearch_DoesNotMutateCatalog(t *testing.T) {
	products := searchCatalog(t)
	first := products[0]
	_ = Search(products, Query{Sort: SortPriceDesc, MaxPrice: 100})
	assert.Equal(t, first, products[0])
}

func TestResultsURL(t *testing.T) {
	assert.Equal(t, "/search.html?q=smart%20watch", ResultsURL("/search.html", "  smart watch "))
	assert.Equal(t, "/search.html?q=a%26b", ResultsURL("/search.html", "a&b"))
	assert.Equal(t, "/search.html?q=", ResultsURL("/search.html", ""))
	assert.Equal(t, "/search.html?q=men's%20(xl)*!", ResultsURL("/search.html", "men's (xl)*!"))
	assert.Equal(t, "/search.html?q=1%2B1%3D2", ResultsURL("/search.html", "1+1=2"))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
