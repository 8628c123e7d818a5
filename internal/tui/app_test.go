package tui

import (
	"context"
	"testing"

	"tickerpulse/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// --- stub services ---

type stubQuoteQuerier struct {
	report       *domain.Report
	err          error
	set          *domain.SuggestionSet
	setErr       error
	lastRaw      string
	suggestCalls int
}

func (s *stubQuoteQuerier) Lookup(ctx context.Context, raw string) (*domain.Report, error) {
	s.lastRaw = raw
	return s.report, s.err
}

func (s *stubQuoteQuerier) Suggestions(ctx context.Context) (*domain.SuggestionSet, error) {
	s.suggestCalls++
	return s.set, s.setErr
}

type stubSnapshot struct {
	set *domain.SuggestionSet
}

func (s stubSnapshot) Latest() *domain.SuggestionSet { return s.set }

func testServices() Services {
	return Services{
		Quotes:   &stubQuoteQuerier{set: &domain.SuggestionSet{}},
		Username: "testuser",
	}
}

func TestAppModelInitialTab(t *testing.T) {
	m := NewAppModel(testServices())
	if m.ActiveTab() != TabSearch {
		t.Fatalf("expected TabSearch, got %d", m.ActiveTab())
	}
}

func TestAppModelDigitsTypeIntoSearch(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	app := updated.(AppModel)
	if app.ActiveTab() != TabSearch {
		t.Fatalf("expected to stay on search, got %d", app.ActiveTab())
	}
	if app.search.input.Value() != "2" {
		t.Fatalf("expected digit in search input, got %q", app.search.input.Value())
	}
}

func TestAppModelTabSwitchByNumber(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	app := updated.(AppModel)
	if app.ActiveTab() != TabSuggestions {
		t.Fatalf("expected TabSuggestions after Tab, got %d", app.ActiveTab())
	}

	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	app = updated.(AppModel)
	if app.ActiveTab() != TabGlossary {
		t.Fatalf("expected TabGlossary after pressing 3, got %d", app.ActiveTab())
	}

	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	app = updated.(AppModel)
	if app.ActiveTab() != TabSearch {
		t.Fatalf("expected TabSearch after pressing 1, got %d", app.ActiveTab())
	}
}

func TestAppModelShiftTabWraps(t *testing.T) {
	m := NewAppModel(testServices())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app := updated.(AppModel)
	if app.ActiveTab() != TabGlossary {
		t.Fatalf("expected TabGlossary after Shift+Tab, got %d", app.ActiveTab())
	}
}

func TestAppModelQuitOutsideSearch(t *testing.T) {
	m := NewAppModel(testServices())
	m.activeTab = TabGlossary

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || !updated.(AppModel).quitting {
		t.Fatal("expected quit from glossary tab")
	}
}

func TestAppModelRoutesQuoteMsgWhileOnOtherTab(t *testing.T) {
	m := NewAppModel(testServices())
	m.activeTab = TabSuggestions

	updated, _ := m.Update(quoteMsg{report: &domain.Report{Symbol: "NVDA"}})
	app := updated.(AppModel)
	if app.search.Report() == nil || app.search.Report().Symbol != "NVDA" {
		t.Fatal("expected quote routed to search model")
	}
}

func TestAppModelWindowResize(t *testing.T) {
	m := NewAppModel(testServices())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	app := updated.(AppModel)
	if app.width != 100 || app.height != 50 {
		t.Fatalf("expected 100x50, got %dx%d", app.width, app.height)
	}
}

func TestAppModelViewRendersWithoutPanic(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	for _, tab := range []Tab{TabSearch, TabSuggestions, TabGlossary} {
		m.activeTab = tab
		if m.View() == "" {
			t.Fatalf("expected non-empty view for tab %d", tab)
		}
	}
}
