package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, quotes QuoteReader, snapshot SuggestionSnapshot) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "quote_lookup",
		Description: "Get the latest price for a stock, forex pair or commodity with buy/sell/wait advice",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in quoteLookupInput) (*mcp.CallToolResult, quoteLookupOutput, error) {
		if quotes == nil {
			return nil, quoteLookupOutput{}, fmt.Errorf("quote service unavailable")
		}
		report, err := quotes.Lookup(ctx, in.Symbol)
		if err != nil {
			return nil, quoteLookupOutput{}, toolError(err)
		}
		return nil, quoteLookupOutput{Report: report}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "symbol_classify",
		Description: "Report whether a symbol is looked up as a stock, forex pair or commodity",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in symbolClassifyInput) (*mcp.CallToolResult, symbolClassifyOutput, error) {
		if quotes == nil {
			return nil, symbolClassifyOutput{}, fmt.Errorf("quote service unavailable")
		}
		c, err := quotes.Classify(in.Symbol)
		if err != nil {
			return nil, symbolClassifyOutput{}, err
		}
		return nil, symbolClassifyOutput{Classification: c}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggestions_list",
		Description: "List buy candidates from the tracked watchlist, optionally for one asset kind",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in suggestionsListInput) (*mcp.CallToolResult, suggestionsListOutput, error) {
		if quotes == nil {
			return nil, suggestionsListOutput{}, fmt.Errorf("quote service unavailable")
		}
		kind, err := normalizeKind(in.Kind)
		if err != nil {
			return nil, suggestionsListOutput{}, err
		}

		if !in.Refresh && snapshot != nil {
			if set := snapshot.Latest(); set != nil {
				return nil, filterSuggestions(set, kind), nil
			}
		}
		set, err := quotes.Suggestions(ctx)
		if err != nil {
			return nil, suggestionsListOutput{}, err
		}
		return nil, filterSuggestions(set, kind), nil
	})
}
