package mcp

import (
	"context"
	"testing"
	"time"

	"tickerpulse/internal/domain"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestResourcesStaticAndTemplated(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _ := testServer(nil)
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	list, err := session.ListResources(ctx, &sdkmcp.ListResourcesParams{})
	if err != nil {
		t.Fatalf("list resources failed: %v", err)
	}
	if len(list.Resources) != 1 || list.Resources[0].URI != "market://watchlist" {
		t.Fatalf("unexpected resources: %+v", list.Resources)
	}

	templates, err := session.ListResourceTemplates(ctx, &sdkmcp.ListResourceTemplatesParams{})
	if err != nil {
		t.Fatalf("list templates failed: %v", err)
	}
	if len(templates.ResourceTemplates) != 1 {
		t.Fatalf("expected 1 resource template, got %d", len(templates.ResourceTemplates))
	}

	readRes, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "market://watchlist"})
	if err != nil {
		t.Fatalf("read watchlist failed: %v", err)
	}
	var wl domain.Watchlist
	if err := decodeResourceJSON(readRes, &wl); err != nil {
		t.Fatalf("decode watchlist failed: %v", err)
	}
	if len(wl.Stocks) != 1 || wl.Stocks[0].Reason != "AI leader" {
		t.Fatalf("unexpected watchlist: %+v", wl)
	}

	readRes, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "quotes://symbol/nvda"})
	if err != nil {
		t.Fatalf("read quote resource failed: %v", err)
	}
	var out quoteLookupOutput
	if err := decodeResourceJSON(readRes, &out); err != nil {
		t.Fatalf("decode quote failed: %v", err)
	}
	if out.Report == nil || out.Report.Symbol != "NVDA" {
		t.Fatalf("unexpected quote payload: %+v", out.Report)
	}
}

func TestQuoteResourceUnknownURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _ := testServer(nil)
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	for _, uri := range []string{"quotes://symbol/", "quotes://symbol/UNKNOWN", "signal-image://2"} {
		if _, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: uri}); err == nil {
			t.Fatalf("expected error reading %s", uri)
		}
	}
}
