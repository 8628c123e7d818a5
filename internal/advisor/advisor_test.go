package advisor

import (
	"math"
	"testing"

	"tickerpulse/internal/domain"
)

func TestAdviseThresholds(t *testing.T) {
	cases := []struct {
		in     string
		signal domain.Signal
		noData bool
	}{
		{"2.01%", domain.SignalBuy, false},
		{"-2.01%", domain.SignalSell, false},
		{"2.00%", domain.SignalWait, false},
		{"-2.00%", domain.SignalWait, false},
		{"0%", domain.SignalWait, false},
		{"3.10%", domain.SignalBuy, false},
		{"abc%", domain.SignalWait, true},
		{"", domain.SignalWait, true},
		{"%", domain.SignalWait, true},
		{"   ", domain.SignalWait, true},
	}
	for _, tc := range cases {
		got := Advise(tc.in)
		if got.Signal != tc.signal {
			t.Fatalf("Advise(%q) = %s, want %s", tc.in, got.Signal, tc.signal)
		}
		if got.NoData != tc.noData {
			t.Fatalf("Advise(%q) NoData = %v, want %v", tc.in, got.NoData, tc.noData)
		}
	}
}

func TestAdviseOverflowKeepsDirection(t *testing.T) {
	if got := Advise("1e400%"); got.Signal != domain.SignalBuy || got.NoData {
		t.Fatalf("Advise(1e400%%) = %+v, want buy", got)
	}
	if got := Advise("-1e400%"); got.Signal != domain.SignalSell || got.NoData {
		t.Fatalf("Advise(-1e400%%) = %+v, want sell", got)
	}
	if v, ok := ParsePercent("1e400%"); !ok || !math.IsInf(v, 1) {
		t.Fatalf("ParsePercent(1e400%%) = %v, %v", v, ok)
	}
}

func TestAdviseSignPrefixIsConsistent(t *testing.T) {
	plain := Advise("2.5%")
	signed := Advise("+2.5%")
	if plain.Signal != signed.Signal || plain.Signal != domain.SignalBuy {
		t.Fatalf("expected both buy, got %s and %s", plain.Signal, signed.Signal)
	}
}

func TestAdviseIgnoresTrailingGarbage(t *testing.T) {
	if got := Advise("-4.2% today"); got.Signal != domain.SignalSell {
		t.Fatalf("expected sell, got %s", got.Signal)
	}
	if got := Advise(" 5 %"); got.Signal != domain.SignalBuy {
		t.Fatalf("expected buy, got %s", got.Signal)
	}
}

func TestAdviseMessagesAndIcons(t *testing.T) {
	if got := Advise("9%"); got.Icon != IconBuy || got.Message != MessageBuy {
		t.Fatalf("unexpected buy advice: %+v", got)
	}
	if got := Advise("-9%"); got.Icon != IconSell || got.Message != MessageSell {
		t.Fatalf("unexpected sell advice: %+v", got)
	}
	if got := Advise("1%"); got.Icon != IconWait || got.Message != MessageNoTrend {
		t.Fatalf("unexpected wait advice: %+v", got)
	}
	if got := Advise("x"); got.Message != MessageNoData {
		t.Fatalf("unexpected no-data advice: %+v", got)
	}
}

func TestAdviseIsTotal(t *testing.T) {
	inputs := []string{"-", "+", ".", "1e", "1e5%", "--2%", "NaN", "Infinity", "0x10", "\x00", "١٢%"}
	for _, in := range inputs {
		got := Advise(in)
		switch got.Signal {
		case domain.SignalBuy, domain.SignalSell, domain.SignalWait:
		default:
			t.Fatalf("Advise(%q) returned unknown signal %q", in, got.Signal)
		}
	}
}

func TestForexAdviceAlwaysWaits(t *testing.T) {
	got := ForexAdvice()
	if got.Signal != domain.SignalWait || got.Icon != IconForex {
		t.Fatalf("unexpected forex advice: %+v", got)
	}
}

func TestTip(t *testing.T) {
	tips := []string{"a", "b", "c"}
	if got := Tip(tips, func(n int) int { return n - 1 }); got != "c" {
		t.Fatalf("expected last tip, got %q", got)
	}
	if got := Tip(nil, nil); got != "" {
		t.Fatalf("expected empty tip, got %q", got)
	}
	if got := Tip(tips, nil); got != "a" {
		t.Fatalf("expected first tip without rng, got %q", got)
	}
}
