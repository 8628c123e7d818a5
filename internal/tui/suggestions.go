package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tickerpulse/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	suggestionsRefreshEvery = time.Minute
	suggestionsTimeout      = 60 * time.Second
)

// Suggestions message types.
type suggestionsMsg struct{ set *domain.SuggestionSet }
type suggestionsErrMsg struct{ err error }
type suggestionsTickMsg time.Time

// SuggestionsModel lists buy candidates from the watchlist.
type SuggestionsModel struct {
	services Services
	set      *domain.SuggestionSet
	loading  bool
	err      error
	width    int
	height   int
}

func NewSuggestionsModel(svc Services) SuggestionsModel {
	return SuggestionsModel{
		services: svc,
		loading:  true,
	}
}

// Init fires the initial fetch and the refresh ticker.
func (m SuggestionsModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(false), m.tickCmd())
}

// Update handles incoming messages.
func (m SuggestionsModel) Update(msg tea.Msg) (SuggestionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsMsg:
		m.set = msg.set
		m.loading = false
		m.err = nil
		return m, nil

	case suggestionsErrMsg:
		m.err = msg.err
		m.loading = false
		return m, nil

	case suggestionsTickMsg:
		return m, tea.Batch(m.fetchCmd(false), m.tickCmd())

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Refresh) && !m.loading {
			m.loading = true
			return m, m.fetchCmd(true)
		}
	}
	return m, nil
}

// View renders the three suggestion lists.
func (m SuggestionsModel) View() string {
	if m.loading && m.set == nil {
		return SubtextStyle.Render("  Loading suggestions...")
	}
	if m.err != nil && m.set == nil {
		return ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	width := m.width - 2
	if width < 40 {
		width = 40
	}
	var sections []string
	for _, kind := range domain.AssetKinds {
		sections = append(sections, BorderStyle.Width(width).Render(RenderSuggestionList(kind, m.set.ByKind(kind))))
	}

	var footer []string
	if m.set != nil && len(m.set.Failures) > 0 {
		skipped := make([]string, 0, len(m.set.Failures))
		for _, f := range m.set.Failures {
			skipped = append(skipped, fmt.Sprintf("%s (%s)", f.Symbol, f.Error))
		}
		footer = append(footer, SubtextStyle.Render("  Skipped: "+strings.Join(skipped, ", ")))
	}
	if m.set != nil && !m.set.GeneratedAt.IsZero() {
		footer = append(footer, SubtextStyle.Render("  Updated "+m.set.GeneratedAt.Local().Format("15:04:05")+"  R: refresh"))
	}
	if m.loading {
		footer = append(footer, SubtextStyle.Render("  Refreshing..."))
	}
	sections = append(sections, footer...)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the model dimensions.
func (m *SuggestionsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Set returns the current suggestion set (for testing).
func (m SuggestionsModel) Set() *domain.SuggestionSet { return m.set }

// fetchCmd reads the scheduled snapshot unless live is set or none exists yet.
func (m SuggestionsModel) fetchCmd(live bool) tea.Cmd {
	svc := m.services
	return func() tea.Msg {
		if !live && svc.Snapshot != nil {
			if set := svc.Snapshot.Latest(); set != nil {
				return suggestionsMsg{set: set}
			}
		}
		if svc.Quotes == nil {
			return suggestionsErrMsg{err: fmt.Errorf("quote service not available")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), suggestionsTimeout)
		defer cancel()
		set, err := svc.Quotes.Suggestions(ctx)
		if err != nil {
			return suggestionsErrMsg{err: err}
		}
		return suggestionsMsg{set: set}
	}
}

func (m SuggestionsModel) tickCmd() tea.Cmd {
	return tea.Tick(suggestionsRefreshEvery, func(t time.Time) tea.Msg {
		return suggestionsTickMsg(t)
	})
}
