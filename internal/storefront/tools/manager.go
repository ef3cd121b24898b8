package tools

import (
	"github.com/cloudwego/eino/components/tool"

	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/search"
)

// GetCatalogTools returns the read only catalog tools.
func GetCatalogTools(catalogs *catalog.Set, index *search.Index) []tool.InvokableTool {
	return []tool.InvokableTool{
		createSearchProductTool(catalogs),
		createSuggestTool(index),
		createGetProductDetailsTool(catalogs),
	}
}
