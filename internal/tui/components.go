package tui

import (
	"fmt"
	"strings"

	"tickerpulse/internal/advisor"
	"tickerpulse/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var kindTitles = map[domain.AssetKind]string{
	domain.KindStock:     "Suggested Stocks",
	domain.KindForex:     "Suggested Forex",
	domain.KindCommodity: "Suggested Commodities",
}

// EmptySuggestionText is shown in place of an empty suggestion list.
func EmptySuggestionText(kind domain.AssetKind) string {
	if kind == domain.KindForex {
		return "No forex data available."
	}
	return "No strong buy signals currently."
}

// FormatSuggestion renders a suggestion as a single line.
func FormatSuggestion(r domain.Report) string {
	price := "$" + r.Price
	if r.Kind == domain.KindForex {
		price = "Rate: " + r.Price
	}
	line := fmt.Sprintf("%-8s (%s)", r.Symbol, price)
	if r.Reason != "" {
		line += ": " + r.Reason
	}
	return line + " " + r.Icon
}

// RenderQuoteCard renders a lookup result the way the search tab shows it.
func RenderQuoteCard(r domain.Report, width int) string {
	lines := []string{HeaderStyle.Render(strings.TrimSpace(r.Symbol + " " + kindIcon(r)))}
	if r.Kind == domain.KindForex {
		lines = append(lines, "Exchange Rate: "+r.Price)
	} else {
		lines = append(lines, "Price: $"+r.Price)
		lines = append(lines, "Change: "+FormatChange(r.ChangePercent))
	}
	lines = append(lines, "Advice: "+signalStyle(r.Signal).Render(r.Advice)+" "+r.Icon)
	if r.Tip != "" {
		lines = append(lines, "", TipStyle.Render("💡 Tip: "+r.Tip))
	}

	if width < 30 {
		width = 30
	}
	return CardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// FormatChange colors a "<number>%" string by sign.
func FormatChange(raw string) string {
	if raw == "" {
		return ChangeFlatStyle.Render("n/a")
	}
	pct, ok := advisor.ParsePercent(raw)
	switch {
	case !ok:
		return ChangeFlatStyle.Render(raw)
	case pct > 0:
		return ChangeUpStyle.Render(raw)
	case pct < 0:
		return ChangeDownStyle.Render(raw)
	default:
		return ChangeFlatStyle.Render(raw)
	}
}

// RenderSuggestionList renders one titled suggestion section.
func RenderSuggestionList(kind domain.AssetKind, reports []domain.Report) string {
	lines := []string{HeaderStyle.Render("  " + kindTitles[kind])}
	if len(reports) == 0 {
		lines = append(lines, SubtextStyle.Render("  "+EmptySuggestionText(kind)))
	}
	for _, r := range reports {
		lines = append(lines, "  "+FormatSuggestion(r))
	}
	return strings.Join(lines, "\n")
}

func signalStyle(s domain.Signal) lipgloss.Style {
	switch s {
	case domain.SignalBuy:
		return SignalBuyStyle
	case domain.SignalSell:
		return SignalSellStyle
	default:
		return SignalWaitStyle
	}
}

func kindIcon(r domain.Report) string {
	if r.Kind == domain.KindForex {
		return advisor.IconForex
	}
	return ""
}
