package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/model"
	"github.com/shopeasy/storefront/internal/storefront/search"
)

const (
	defaultMaxResults = 10
	maxMaxResults     = 24
)

// ===================================
// Search Product Tool
// ===================================

type SearchProductInput struct {
	Query      string `json:"query"`
	Page       string `json:"page,omitempty"`
	Category   string `json:"category,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

type SearchProductOutput struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}

func createSearchProductTool(catalogs *catalog.Set) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: "search_product",
			Desc: "Search the storefront catalog by product name or category (case-insensitive substring). An empty query lists the whole page catalog. Returns id, name, price, image and category.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type: schema.String,
					Desc: "Search keywords, e.g. wireless, laptop, Books. Matches product names and categories.",
				},
				"page": {
					Type: schema.String,
					Desc: "Catalog to search: search (default) or clothing.",
				},
				"category": {
					Type: schema.String,
					Desc: "Optional exact category filter: Electronics, Home & Kitchen, Clothing, Books",
				},
				"max_results": {
					Type: schema.Integer,
					Desc: "Maximum number of products to return (default: 10, max: 24)",
				},
			}),
		},
		func(ctx context.Context, in *SearchProductInput) (*SearchProductOutput, error) {
			page := in.Page
			if page == "" {
				page = catalog.SearchPage
			}
			c, ok := catalogs.Page(page)
			if !ok {
				return nil, fmt.Errorf("unknown catalog page: %s", page)
			}

			switch {
			case in.MaxResults <= 0:
				in.MaxResults = defaultMaxResults
			case in.MaxResults > maxMaxResults:
				in.MaxResults = maxMaxResults
			}

			matched := make([]model.Product, 0, in.MaxResults)
			for _, p := range search.FilterProducts(c.Products, search.NormalizeTerm(in.Query)) {
				if in.Category != "" && !strings.EqualFold(p.Category, in.Category) {
					continue
				}
				matched = append(matched, p)
				if len(matched) == in.MaxResults {
					break
				}
			}

			return &SearchProductOutput{Products: matched, Total: len(matched)}, nil
		},
	)
}
