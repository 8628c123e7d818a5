package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	serverName                = "tickerpulse-mcp"
	defaultRequestTimeout     = 10 * time.Second
	defaultSuggestionsTimeout = time.Minute
)

type ServerConfig struct {
	RequestTimeout time.Duration
	// SuggestionsTimeout bounds suggestions_list, which looks up the whole watchlist.
	SuggestionsTimeout time.Duration
}

// NewServer exposes quote lookups to MCP clients. With a nil snapshot,
// suggestions_list always computes a live batch.
func NewServer(tracer trace.Tracer, quotes QuoteReader, snapshot SuggestionSnapshot, cfg ServerConfig) *sdkmcp.Server {
	srv := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    serverName,
		Version: "1.0.0",
	}, &sdkmcp.ServerOptions{
		Instructions: "Look up stock, forex and commodity quotes by symbol (NVDA, EURUSD, GC=F). " +
			"Advice follows a fixed ±2% daily-change rule and is not financial advice. " +
			"A rate_limit error means the upstream quota is spent; retry later rather than treating the symbol as unknown.",
		Logger: slog.Default(),
	})

	srv.AddReceivingMiddleware(deadlineMiddleware(cfg))
	if tracer != nil {
		srv.AddReceivingMiddleware(quoteSpanMiddleware(tracer))
	}

	registerTools(srv, quotes, snapshot)
	registerResources(srv, quotes)
	return srv
}

func NewHTTPTransportHandler(server *sdkmcp.Server, cfg HTTPHandlerConfig) http.Handler {
	base := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, &sdkmcp.StreamableHTTPOptions{})
	return wrapHTTPHandler(base, cfg)
}

// requestTimeout picks the deadline for one request. Batch suggestions get
// the longer budget.
func requestTimeout(cfg ServerConfig, req sdkmcp.Request) time.Duration {
	if toolName(req) == "suggestions_list" {
		if cfg.SuggestionsTimeout > 0 {
			return cfg.SuggestionsTimeout
		}
		return defaultSuggestionsTimeout
	}
	if cfg.RequestTimeout > 0 {
		return cfg.RequestTimeout
	}
	return defaultRequestTimeout
}

func deadlineMiddleware(cfg ServerConfig) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx, cancel := context.WithTimeout(ctx, requestTimeout(cfg, req))
			defer cancel()
			return next(ctx, method, req)
		}
	}
}

// quoteSpanMiddleware records one span per request, tagged with the tool
// and the symbol asked about. Tool-level failures mark the span as errored
// even though the protocol call succeeds.
func quoteSpanMiddleware(tracer trace.Tracer) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx, span := tracer.Start(ctx, spanName(method, req))
			defer span.End()

			span.SetAttributes(attribute.String("mcp.method", method))
			if tool := toolName(req); tool != "" {
				span.SetAttributes(attribute.String("mcp.tool", tool))
			}
			if symbol := requestedSymbol(req); symbol != "" {
				span.SetAttributes(attribute.String("quote.symbol", symbol))
			}

			result, err := next(ctx, method, req)
			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case isToolError(result):
				span.SetStatus(codes.Error, "tool error")
			}
			return result, err
		}
	}
}

func spanName(method string, req sdkmcp.Request) string {
	if tool := toolName(req); tool != "" {
		return "mcp.tool." + tool
	}
	if method == "resources/read" {
		return "mcp.resource.read"
	}
	return "mcp." + strings.ReplaceAll(method, "/", ".")
}

func toolName(req sdkmcp.Request) string {
	call, ok := req.(*sdkmcp.CallToolRequest)
	if !ok || call.Params == nil {
		return ""
	}
	return strings.TrimSpace(call.Params.Name)
}

// requestedSymbol reads the symbol from tool arguments or a quotes:// URI.
func requestedSymbol(req sdkmcp.Request) string {
	switch r := req.(type) {
	case *sdkmcp.CallToolRequest:
		if r.Params == nil || len(r.Params.Arguments) == 0 {
			return ""
		}
		return strings.ToUpper(strings.TrimSpace(gjson.GetBytes(r.Params.Arguments, "symbol").String()))
	case *sdkmcp.ReadResourceRequest:
		if r.Params == nil {
			return ""
		}
		u, err := url.Parse(r.Params.URI)
		if err != nil || u.Scheme != "quotes" {
			return ""
		}
		return strings.ToUpper(strings.Trim(u.Path, "/"))
	}
	return ""
}

func isToolError(result sdkmcp.Result) bool {
	res, ok := result.(*sdkmcp.CallToolResult)
	return ok && res != nil && res.IsError
}
