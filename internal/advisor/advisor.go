// Package advisor turns a quote's daily percent change into a buy/sell/wait hint.
package advisor

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"tickerpulse/internal/domain"
)

const (
	BuyThreshold  = 2.0
	SellThreshold = -2.0
)

const (
	IconBuy   = "✅"
	IconSell  = "⚠️"
	IconWait  = "⏳"
	IconForex = "🌍"
)

const (
	MessageBuy     = "Strong buy signal"
	MessageSell    = "Price dropping — be cautious"
	MessageNoTrend = "No clear trend — maybe wait"
	MessageNoData  = "No data"
	MessageForex   = "Forex data - watch market news and trends."
)

// Matches the leading number of inputs like "3.10%", "+2.5 %" or "-0.7%abc".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Advise is total: every input maps to exactly one signal.
func Advise(changePercent string) domain.Advice {
	pct, ok := ParsePercent(changePercent)
	if !ok {
		return domain.Advice{Signal: domain.SignalWait, Message: MessageNoData, Icon: IconWait, NoData: true}
	}
	switch {
	case pct > BuyThreshold:
		return domain.Advice{Signal: domain.SignalBuy, Message: MessageBuy, Icon: IconBuy}
	case pct < SellThreshold:
		return domain.Advice{Signal: domain.SignalSell, Message: MessageSell, Icon: IconSell}
	default:
		return domain.Advice{Signal: domain.SignalWait, Message: MessageNoTrend, Icon: IconWait}
	}
}

// ParsePercent extracts the leading numeric part of a "<number>%" string.
func ParsePercent(raw string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// Overflow yields ±Inf, which still carries a direction.
	return v, true
}

// ForexAdvice is shown for exchange-rate quotes, which carry no daily change.
func ForexAdvice() domain.Advice {
	adv := Advise("")
	adv.Message = MessageForex
	adv.Icon = IconForex
	return adv
}

// Tip picks one beginner tip; intn follows rand.Intn semantics.
func Tip(tips []string, intn func(int) int) string {
	if len(tips) == 0 {
		return ""
	}
	if intn == nil {
		return tips[0]
	}
	return tips[intn(len(tips))]
}
