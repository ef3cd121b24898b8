package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/shopeasy/storefront/internal/storefront/search"
)

type SuggestInput struct {
	Term string `json:"term"`
}

type SuggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

func createSuggestTool(index *search.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: "suggest_products",
			Desc: "Autocomplete product names for a partial search term. Returns at most 8 names in catalog order; a blank term returns none.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"term": {
					Type:     schema.String,
					Desc:     "Partial text typed into the search box.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SuggestInput) (*SuggestOutput, error) {
			return &SuggestOutput{Suggestions: index.Suggest(in.Term)}, nil
		},
	)
}
