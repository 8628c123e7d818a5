package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab represents a screen tab in the TUI.
type Tab int

const (
	TabSearch Tab = iota
	TabSuggestions
	TabGlossary
)

var tabNames = []string{"1:Search", "2:Suggestions", "3:Glossary"}

// AppModel is the root Bubble Tea model that manages tab navigation and child screens.
type AppModel struct {
	services    Services
	activeTab   Tab
	search      SearchModel
	suggestions SuggestionsModel
	glossary    GlossaryModel
	width       int
	height      int
	quitting    bool
}

// NewAppModel creates the root application model with all child screens.
func NewAppModel(svc Services) AppModel {
	return AppModel{
		services:    svc,
		activeTab:   TabSearch,
		search:      NewSearchModel(svc),
		suggestions: NewSuggestionsModel(svc),
		glossary:    NewGlossaryModel(),
	}
}

// Init initializes all child models.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.search.Init(),
		m.suggestions.Init(),
		m.glossary.Init(),
	)
}

// Update handles incoming messages, routing to the active tab.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case tea.KeyMsg:
		// Letters and digits belong to the search input while it is active.
		if m.activeTab != TabSearch || msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab ||
			msg.String() == "ctrl+c" {

			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				m.quitting = true
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Tab):
				m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))
				return m, nil

			case key.Matches(msg, DefaultKeyMap.ShiftTab):
				next := int(m.activeTab) - 1
				if next < 0 {
					next = len(tabNames) - 1
				}
				m.switchTab(Tab(next))
				return m, nil

			case msg.String() == "1":
				m.switchTab(TabSearch)
				return m, nil
			case msg.String() == "2":
				m.switchTab(TabSuggestions)
				return m, nil
			case msg.String() == "3":
				m.switchTab(TabGlossary)
				return m, nil
			}
		}
	}

	var cmds []tea.Cmd

	switch msg.(type) {
	case quoteMsg, quoteErrMsg:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)

	case suggestionsMsg, suggestionsErrMsg, suggestionsTickMsg:
		var cmd tea.Cmd
		m.suggestions, cmd = m.suggestions.Update(msg)
		cmds = append(cmds, cmd)

	default:
		// Route keyboard and other messages to active tab only
		switch m.activeTab {
		case TabSearch:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
		case TabSuggestions:
			var cmd tea.Cmd
			m.suggestions, cmd = m.suggestions.Update(msg)
			cmds = append(cmds, cmd)
		case TabGlossary:
			var cmd tea.Cmd
			m.glossary, cmd = m.glossary.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the tab bar and active screen.
func (m AppModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var content string
	switch m.activeTab {
	case TabSearch:
		content = m.search.View()
	case TabSuggestions:
		content = m.suggestions.View()
	case TabGlossary:
		content = m.glossary.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabBar(), content)
}

// SetSize updates dimensions on the root model and propagates to children.
func (m *AppModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.propagateSize()
}

// ActiveTab returns the currently active tab (for testing).
func (m AppModel) ActiveTab() Tab { return m.activeTab }

func (m *AppModel) switchTab(tab Tab) {
	if tab == TabSearch && m.activeTab != TabSearch {
		m.search.Focus()
	} else if m.activeTab == TabSearch && tab != TabSearch {
		m.search.Blur()
	}
	m.activeTab = tab
}

func (m *AppModel) propagateSize() {
	contentHeight := m.height - 2 // tab bar
	m.search.SetSize(m.width, contentHeight)
	m.suggestions.SetSize(m.width, contentHeight)
	m.glossary.SetSize(m.width, contentHeight)
}

func (m AppModel) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(name))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.services.Username != "" {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, bar, SubtextStyle.Render("  "+m.services.Username))
	}
	return bar
}
