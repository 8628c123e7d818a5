package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcp.Server, quotes QuoteReader) {
	server.AddResource(&mcp.Resource{
		URI:         "market://watchlist",
		Name:        "watchlist",
		Description: "Tracked stocks, forex pairs and commodities with the reason each is watched",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if quotes == nil {
			return nil, fmt.Errorf("quote service unavailable")
		}
		return jsonResource(req.Params.URI, quotes.Watchlist())
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "quotes://symbol/{symbol}",
		Name:        "quote-by-symbol",
		Description: "Latest quote and advice for a specific symbol",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if quotes == nil {
			return nil, fmt.Errorf("quote service unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "quotes" || parsed.Host != "symbol" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		symbol := strings.Trim(strings.TrimSpace(parsed.Path), "/")
		if symbol == "" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		report, err := quotes.Lookup(ctx, symbol)
		if err != nil {
			return nil, toolError(err)
		}
		return jsonResource(req.Params.URI, quoteLookupOutput{Report: report})
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
