package tui

import (
	"fmt"
	"strings"
	"testing"

	"tickerpulse/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSearchSubmitRunsLookup(t *testing.T) {
	quotes := &stubQuoteQuerier{report: &domain.Report{Symbol: "NVDA", Kind: domain.KindStock, Price: "134.50"}}
	m := NewSearchModel(Services{Quotes: quotes})
	m.input.SetValue("nvda")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !updated.IsWaiting() || cmd == nil {
		t.Fatal("expected lookup in flight")
	}

	msg := updated.lookupCmd("nvda")()
	updated, _ = updated.Update(msg)
	if updated.IsWaiting() || updated.Report() == nil || updated.Report().Price != "134.50" {
		t.Fatalf("unexpected state after lookup: %+v", updated.Report())
	}
	if quotes.lastRaw != "nvda" {
		t.Fatalf("expected raw input passed through, got %q", quotes.lastRaw)
	}
}

func TestSearchEmptyInputShowsMessage(t *testing.T) {
	m := NewSearchModel(testServices())
	m.input.SetValue("   ")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated.IsWaiting() {
		t.Fatal("expected no lookup for blank input")
	}
	if updated.ErrText() != domain.UserMessage("", "", domain.ErrEmptySymbol) {
		t.Fatalf("unexpected error text: %q", updated.ErrText())
	}
}

func TestSearchRateLimitMessage(t *testing.T) {
	m := NewSearchModel(testServices())
	err := &domain.LookupError{Symbol: "EURUSD", Kind: domain.KindForex, Err: fmt.Errorf("%w: note", domain.ErrRateLimited)}

	updated, _ := m.Update(quoteErrMsg{err: err})
	if updated.ErrText() != err.Message() {
		t.Fatalf("unexpected error text: %q", updated.ErrText())
	}
	if !strings.Contains(updated.View(), "API limit reached") {
		t.Fatal("expected rate-limit message in view")
	}
}

func TestSearchViewShowsQuoteCard(t *testing.T) {
	m := NewSearchModel(testServices())
	m.SetSize(100, 30)
	m.report = &domain.Report{
		Symbol: "EURUSD", Kind: domain.KindForex, Price: "1.0835",
		Signal: domain.SignalWait, Advice: "Forex data - watch market news and trends.", Icon: "🌍",
		Tip: "Diversify.",
	}

	view := m.View()
	for _, want := range []string{"EURUSD", "Exchange Rate: 1.0835", "Tip: Diversify."} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}
