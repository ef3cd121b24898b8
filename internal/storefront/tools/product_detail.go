package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/model"
)

type GetProductDetailsInput struct {
	ProductID int    `json:"product_id"`
	Page      string `json:"page,omitempty"`
}

func createGetProductDetailsTool(catalogs *catalog.Set) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: "get_product_details",
			Desc: "Get a single product by id from a page catalog. Catalogs are page scoped, so an id can exist on one page and not another.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     schema.Integer,
					Desc:     "Product id taken from search_product results.",
					Required: true,
				},
				"page": {
					Type: schema.String,
					Desc: "Catalog page: search (default) or clothing.",
				},
			}),
		},
		func(ctx context.Context, in *GetProductDetailsInput) (*model.Product, error) {
			page := in.Page
			if page == "" {
				page = catalog.SearchPage
			}
			c, ok := catalogs.Page(page)
			if !ok {
				return nil, fmt.Errorf("unknown catalog page: %s", page)
			}
			p, ok := c.Find(in.ProductID)
			if !ok {
				return nil, fmt.Errorf("product not found: %d", in.ProductID)
			}
			return &p, nil
		},
	)
}
