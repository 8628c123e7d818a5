package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type GlossaryTerm struct {
	Term       string
	Definition string
}

var Glossary = []GlossaryTerm{
	{"Stock", "A share of ownership in a company."},
	{"Forex", "The foreign exchange market, where currencies are traded in pairs such as EUR/USD."},
	{"Commodity", "A raw material like gold, oil or silver traded on futures markets."},
	{"Exchange Rate", "How much of the quote currency one unit of the base currency buys."},
	{"Change %", "How far the price moved since the previous close."},
	{"Buy Signal", "A daily gain above 2%, read here as upward momentum."},
	{"Volatility", "How sharply and how often a price swings."},
	{"Diversification", "Spreading money across different assets to reduce risk."},
	{"Bull Market", "A period of generally rising prices."},
	{"Bear Market", "A period of generally falling prices."},
}

// GlossaryModel shows beginner terms; the list starts collapsed.
type GlossaryModel struct {
	expanded bool
	width    int
	height   int
}

func NewGlossaryModel() GlossaryModel {
	return GlossaryModel{}
}

func (m GlossaryModel) Init() tea.Cmd { return nil }

func (m GlossaryModel) Update(msg tea.Msg) (GlossaryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, DefaultKeyMap.ToggleGlossary) {
		m.expanded = !m.expanded
	}
	return m, nil
}

func (m GlossaryModel) View() string {
	lines := []string{HeaderStyle.Render("  Beginner Glossary")}
	if !m.expanded {
		lines = append(lines, SubtextStyle.Render("  Press g to show the glossary."))
		return strings.Join(lines, "\n")
	}
	for _, t := range Glossary {
		lines = append(lines, "  "+TermStyle.Render(t.Term)+": "+t.Definition)
	}
	lines = append(lines, "", SubtextStyle.Render("  Press g to hide."))
	return strings.Join(lines, "\n")
}

func (m *GlossaryModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Expanded reports whether the term list is visible (for testing).
func (m GlossaryModel) Expanded() bool { return m.expanded }
