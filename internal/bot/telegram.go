package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tickerpulse/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const commandTimeout = 20 * time.Second

type QuoteLookup interface {
	Lookup(ctx context.Context, raw string) (*domain.Report, error)
	Suggestions(ctx context.Context) (*domain.SuggestionSet, error)
	RandomTip() string
}

type SuggestionSnapshot interface {
	Latest() *domain.SuggestionSet
}

// Commands renders replies for the bot's slash commands.
type Commands struct {
	quotes   QuoteLookup
	snapshot SuggestionSnapshot
	alerts   *AlertDispatcher
}

func NewCommands(quotes QuoteLookup, snapshot SuggestionSnapshot, alerts *AlertDispatcher) *Commands {
	return &Commands{quotes: quotes, snapshot: snapshot, alerts: alerts}
}

// StartTelegramBot returns nil when token is empty.
func StartTelegramBot(token string, quotes QuoteLookup, snapshot SuggestionSnapshot) *AlertDispatcher {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Printf("failed to create Telegram bot: %v", err)
		return nil
	}
	alerts := NewAlertDispatcher(b)
	cmds := NewCommands(quotes, snapshot, alerts)

	b.Handle("/start", func(c tele.Context) error {
		return c.Send(helpText)
	})
	b.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText)
	})
	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})
	b.Handle("/quote", func(c tele.Context) error {
		_ = c.Notify(tele.Typing)
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return c.Send(cmds.Quote(ctx, c.Args()))
	})
	b.Handle("/suggest", func(c tele.Context) error {
		_ = c.Notify(tele.Typing)
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return c.Send(cmds.Suggest(ctx))
	})
	b.Handle("/tip", func(c tele.Context) error {
		return c.Send(cmds.Tip())
	})
	b.Handle("/alerts", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}
		return c.Send(cmds.Alerts(chat.ID, c.Args()))
	})

	log.Println("Telegram bot started")
	go b.Start()
	return alerts
}

const helpText = "Commands:\n" +
	"/quote SYMBOL - price and advice (NVDA, EURUSD, GC=F)\n" +
	"/suggest - buy candidates from the watchlist\n" +
	"/tip - a beginner investing tip\n" +
	"/alerts on|off|status - push new buy signals to this chat"

func (c *Commands) Quote(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "Usage: /quote NVDA | /quote EURUSD | /quote GC=F"
	}
	if c.quotes == nil {
		return "Quote service unavailable"
	}
	report, err := c.quotes.Lookup(ctx, args[0])
	if err != nil {
		var le *domain.LookupError
		if errors.As(err, &le) {
			return le.Message()
		}
		return domain.UserMessage(args[0], domain.KindStock, err)
	}
	msg := formatReport(*report)
	if report.Tip != "" {
		msg += "\n\nTip: " + report.Tip
	}
	return msg
}

func (c *Commands) Suggest(ctx context.Context) string {
	if c.quotes == nil {
		return "Quote service unavailable"
	}
	var set *domain.SuggestionSet
	if c.snapshot != nil {
		set = c.snapshot.Latest()
	}
	if set == nil {
		var err error
		if set, err = c.quotes.Suggestions(ctx); err != nil {
			return fmt.Sprintf("Could not build suggestions: %v", err)
		}
	}
	return formatSuggestions(set)
}

func (c *Commands) Tip() string {
	if c.quotes == nil {
		return "No tips configured."
	}
	if tip := c.quotes.RandomTip(); tip != "" {
		return "Tip: " + tip
	}
	return "No tips configured."
}

func (c *Commands) Alerts(chatID int64, args []string) string {
	if c.alerts == nil {
		return "Alerts unavailable"
	}
	mode, err := parseAlertMode(args)
	if err != nil {
		return "Usage: /alerts on | /alerts off | /alerts status"
	}

	switch mode {
	case "on":
		if c.alerts.Subscribe(chatID) {
			return "Buy alerts enabled for this chat."
		}
		return "Buy alerts are already enabled for this chat."
	case "off":
		if c.alerts.Unsubscribe(chatID) {
			return "Buy alerts disabled for this chat."
		}
		return "Buy alerts are already disabled for this chat."
	default:
		if c.alerts.IsSubscribed(chatID) {
			return "Alerts status: ON"
		}
		return "Alerts status: OFF"
	}
}

func formatReport(r domain.Report) string {
	line := fmt.Sprintf("%s %s %s", r.Icon, r.Symbol, r.Price)
	if r.ChangePercent != "" {
		line += " (" + r.ChangePercent + ")"
	}
	line += "\n" + r.Advice
	if r.Reason != "" {
		line += "\nWhy: " + r.Reason
	}
	return line
}

func formatSuggestions(set *domain.SuggestionSet) string {
	titles := map[domain.AssetKind]string{
		domain.KindStock:     "Stocks",
		domain.KindForex:     "Forex",
		domain.KindCommodity: "Commodities",
	}
	var sections []string
	for _, kind := range domain.AssetKinds {
		reports := set.ByKind(kind)
		lines := []string{titles[kind] + ":"}
		if len(reports) == 0 {
			lines = append(lines, "  nothing stands out right now")
		}
		for _, r := range reports {
			lines = append(lines, formatReport(r))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if len(set.Failures) > 0 {
		skipped := make([]string, 0, len(set.Failures))
		for _, f := range set.Failures {
			skipped = append(skipped, fmt.Sprintf("%s (%s)", f.Symbol, f.Error))
		}
		sections = append(sections, "Skipped: "+strings.Join(skipped, ", "))
	}
	return strings.Join(sections, "\n\n")
}
