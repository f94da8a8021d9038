package traders

import (
	"testing"

	"github.com/pitchcore/exchange-sim/internal/engine"
	"github.com/pitchcore/exchange-sim/internal/ids"
	"github.com/pitchcore/exchange-sim/internal/pitch"
)

func freshIDs(t *testing.T, c *ids.Counter, n int) []string {
	t.Helper()
	out := make([]string, n)
	for i := range out {
		id, err := c.Next()
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		out[i] = id
	}
	return out
}

func TestGaussianBotEmitsAddsWithClampedPrices(t *testing.T) {
	bot := NewGaussianBot("SPY", engine.SideBuy, 100, 100.0, 5.0, 1)
	counter := ids.NewCounter()

	msgs := bot.CreateMessages(freshIDs(t, counter, 10))
	adds := 0
	for _, m := range msgs {
		switch m.Kind {
		case pitch.KindAdd:
			adds++
			if m.Symbol != "SPY" || m.Side != 'B' || m.Shares != 100 {
				t.Fatalf("bad add: %+v", m)
			}
			if m.Price.IsNegative() {
				t.Fatalf("negative price escaped clamping: %s", m.Price)
			}
			if _, err := pitch.Encode(m); err != nil {
				t.Fatalf("add does not encode: %v", err)
			}
		case pitch.KindCancel:
			if m.Symbol != "SPY" {
				t.Fatalf("cancel missing symbol: %+v", m)
			}
		default:
			t.Fatalf("unexpected kind %s", m.Kind)
		}
	}
	if adds != 10 {
		t.Fatalf("want 10 adds, got %d", adds)
	}
}

func TestGaussianBotEventuallyCancels(t *testing.T) {
	bot := NewGaussianBot("SPY", engine.SideSell, 50, 100.0, 1.0, 7)
	counter := ids.NewCounter()

	cancels := 0
	for round := 0; round < 50 && cancels == 0; round++ {
		for _, m := range bot.CreateMessages(freshIDs(t, counter, 5)) {
			if m.Kind == pitch.KindCancel {
				cancels++
			}
		}
	}
	if cancels == 0 {
		t.Fatalf("gaussian bot never canceled across 50 rounds")
	}
}

func TestMarketMakerQuotesBothSidesAndReplaces(t *testing.T) {
	bot := NewMarketMakerBot("AAPL", 200, 180.0, 0.25)
	counter := ids.NewCounter()

	first := bot.CreateMessages(freshIDs(t, counter, 2))
	if len(first) != 2 {
		t.Fatalf("first round: want 2 adds, got %d messages", len(first))
	}
	if first[0].Side != 'B' || first[1].Side != 'S' {
		t.Fatalf("want bid then ask, got %c %c", first[0].Side, first[1].Side)
	}
	if first[0].Price.String() != "179.75" || first[1].Price.String() != "180.25" {
		t.Fatalf("quote prices: got %s / %s", first[0].Price, first[1].Price)
	}

	second := bot.CreateMessages(freshIDs(t, counter, 2))
	if len(second) != 4 {
		t.Fatalf("second round: want 2 cancels + 2 adds, got %d", len(second))
	}
	if second[0].Kind != pitch.KindCancel || second[1].Kind != pitch.KindCancel {
		t.Fatalf("second round must start by pulling the old quotes")
	}
	if second[0].OrderID != first[0].OrderID || second[1].OrderID != first[1].OrderID {
		t.Fatalf("cancels must target the previous quote ids")
	}
}

func TestSpooferPlacesThenPulls(t *testing.T) {
	bot := NewSpooferBot("MSFT", engine.SideSell, 5000, 450.0)
	counter := ids.NewCounter()

	first := bot.CreateMessages(freshIDs(t, counter, 1))
	if len(first) != 1 || first[0].Kind != pitch.KindAdd {
		t.Fatalf("first round: want single add, got %+v", first)
	}

	second := bot.CreateMessages(freshIDs(t, counter, 1))
	if len(second) != 2 {
		t.Fatalf("second round: want cancel + add, got %d", len(second))
	}
	if second[0].Kind != pitch.KindCancel || second[0].OrderID != first[0].OrderID {
		t.Fatalf("spoofer must pull its previous order first")
	}
}

func TestTradeMessengerEmitsTradeFrames(t *testing.T) {
	bot := NewTradeMessenger("NVDA", engine.SideBuy, 50, 120.0, 2.0, 3)
	counter := ids.NewCounter()

	msgs := bot.CreateMessages(freshIDs(t, counter, 4))
	if len(msgs) != 4 {
		t.Fatalf("want 4 trades, got %d", len(msgs))
	}
	for _, m := range msgs {
		if m.Kind != pitch.KindTrade || m.Symbol != "NVDA" {
			t.Fatalf("bad trade frame: %+v", m)
		}
		if _, err := pitch.Encode(m); err != nil {
			t.Fatalf("trade does not encode: %v", err)
		}
	}
}

func TestTraderPoolSharesOneCounter(t *testing.T) {
	counter := ids.NewCounter()
	pool := NewTraderPool(counter,
		NewGaussianBot("SPY", engine.SideBuy, 100, 100.0, 1.0, 1),
		NewGaussianBot("SPY", engine.SideSell, 100, 100.0, 1.0, 2),
	)

	msgs, err := pool.Round(3)
	if err != nil {
		t.Fatalf("round: %v", err)
	}

	seen := make(map[string]bool)
	for _, m := range msgs {
		if m.Kind != pitch.KindAdd {
			continue
		}
		if seen[m.OrderID] {
			t.Fatalf("duplicate order id %s across bots", m.OrderID)
		}
		seen[m.OrderID] = true
	}
	if len(seen) != 6 {
		t.Fatalf("want 6 distinct adds, got %d", len(seen))
	}
}
