package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"tickerpulse/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const lookupTimeout = 20 * time.Second

// Search message types.
type quoteMsg struct {
	report *domain.Report
}
type quoteErrMsg struct{ err error }

// SearchModel is the Bubble Tea model for the symbol lookup screen.
type SearchModel struct {
	services Services
	input    textinput.Model
	spinner  spinner.Model
	report   *domain.Report
	errText  string
	waiting  bool
	width    int
	height   int
}

// NewSearchModel creates a new search model.
func NewSearchModel(svc Services) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Enter a stock, forex pair or commodity (e.g. NVDA, EURUSD, GC=F)"
	ti.CharLimit = 16
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)

	return SearchModel{
		services: svc,
		input:    ti,
		spinner:  sp,
	}
}

// Init initializes the search model.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case quoteMsg:
		m.waiting = false
		m.report = msg.report
		m.errText = ""
		return m, nil

	case quoteErrMsg:
		m.waiting = false
		m.report = nil
		m.errText = errorText(msg.err)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Submit) && !m.waiting {
			raw := m.input.Value()
			if strings.TrimSpace(raw) == "" {
				m.errText = domain.UserMessage("", "", domain.ErrEmptySymbol)
				return m, nil
			}
			m.waiting = true
			m.errText = ""
			return m, tea.Batch(m.lookupCmd(raw), m.spinner.Tick)
		}

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.waiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the search screen.
func (m SearchModel) View() string {
	sections := []string{
		HeaderStyle.Render("  Look up a symbol"),
		"  " + m.input.View(),
		"",
	}

	switch {
	case m.waiting:
		sections = append(sections, "  "+m.spinner.View()+" Loading...")
	case m.errText != "":
		sections = append(sections, ErrorStyle.Render("  "+m.errText))
	case m.report != nil:
		sections = append(sections, RenderQuoteCard(*m.report, m.width-4))
	default:
		sections = append(sections, SubtextStyle.Render("  Press enter to look up the symbol."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the model dimensions.
func (m *SearchModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if w > 10 {
		m.input.Width = w - 8
	}
}

// Focus gives focus to the text input.
func (m *SearchModel) Focus() {
	m.input.Focus()
}

// Blur removes focus from the text input.
func (m *SearchModel) Blur() {
	m.input.Blur()
}

// Report returns the last successful lookup (for testing).
func (m SearchModel) Report() *domain.Report { return m.report }

// ErrText returns the error shown to the user (for testing).
func (m SearchModel) ErrText() string { return m.errText }

// IsWaiting returns whether a lookup is in flight (for testing).
func (m SearchModel) IsWaiting() bool { return m.waiting }

func (m SearchModel) lookupCmd(raw string) tea.Cmd {
	quotes := m.services.Quotes
	return func() tea.Msg {
		if quotes == nil {
			return quoteErrMsg{err: domain.ErrNetworkFailure}
		}
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		report, err := quotes.Lookup(ctx, raw)
		if err != nil {
			return quoteErrMsg{err: err}
		}
		return quoteMsg{report: report}
	}
}

func errorText(err error) string {
	var le *domain.LookupError
	if errors.As(err, &le) {
		return le.Message()
	}
	return domain.UserMessage("", "", err)
}
