package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Tab bar styles
	TabStyle       = lipgloss.NewStyle().Padding(0, 2)
	ActiveTabStyle = TabStyle.Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32"))
	InactiveTabStyle = TabStyle.
				Foreground(lipgloss.Color("#888888"))

	// Advice colors
	SignalBuyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00C853")).Bold(true)
	SignalSellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5252")).Bold(true)
	SignalWaitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD740"))

	// Change percent colors
	ChangeUpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	ChangeDownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	ChangeFlatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// General styles
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	SubtextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BorderStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#555555"))
	CardStyle    = BorderStyle.Padding(0, 1)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	TipStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#B0BEC5"))
	TermStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#80CBC4"))
	SpinnerColor = lipgloss.Color("#2E7D32")
)
