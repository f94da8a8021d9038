package traders

import (
	"math/rand"

	"github.com/pitchcore/exchange-sim/internal/engine"
	"github.com/pitchcore/exchange-sim/internal/pitch"
)

// GaussianBot submits limit orders priced from a normal distribution and
// randomly cancels a small fraction of its outstanding orders each round.
type GaussianBot struct {
	Symbol     string
	Side       engine.Side
	Shares     int64
	Mean       float64
	Stddev     float64
	CancelRate float64

	rng  *rand.Rand
	open []string
}

func NewGaussianBot(symbol string, side engine.Side, shares int64, mean, stddev float64, seed int64) *GaussianBot {
	return &GaussianBot{
		Symbol:     symbol,
		Side:       side,
		Shares:     shares,
		Mean:       mean,
		Stddev:     stddev,
		CancelRate: 0.05,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (b *GaussianBot) CreateMessages(orderIDs []string) []pitch.Message {
	msgs := make([]pitch.Message, 0, len(orderIDs))

	for _, id := range orderIDs {
		price := clampPrice(b.rng.NormFloat64()*b.Stddev + b.Mean)
		msgs = append(msgs, pitch.NewBuilder(pitch.KindAdd).
			Timestamp(pitch.TimestampNow()).
			OrderID(id).
			Side(b.Side.Tag()).
			Shares(b.Shares).
			Symbol(b.Symbol).
			Price(price).
			Display('Y').
			Build())
		b.open = append(b.open, id)
	}

	// Cancel a random slice of whatever we still believe is open. Some of
	// these will have filled already; a not-found result downstream is the
	// expected outcome, not a failure.
	remaining := b.open[:0]
	for _, id := range b.open {
		if b.rng.Float64() < b.CancelRate {
			msgs = append(msgs, pitch.NewBuilder(pitch.KindCancel).
				Timestamp(pitch.TimestampNow()).
				OrderID(id).
				Shares(b.Shares).
				Symbol(b.Symbol).
				Build())
		} else {
			remaining = append(remaining, id)
		}
	}
	b.open = remaining

	return msgs
}

// MarketMakerBot keeps a two-sided quote around a fixed center, re-posting
// both sides every round after pulling the previous pair.
type MarketMakerBot struct {
	Symbol string
	Shares int64
	Center float64
	Spread float64

	bidID string
	askID string
}

func NewMarketMakerBot(symbol string, shares int64, center, spread float64) *MarketMakerBot {
	return &MarketMakerBot{Symbol: symbol, Shares: shares, Center: center, Spread: spread}
}

func (b *MarketMakerBot) CreateMessages(orderIDs []string) []pitch.Message {
	if len(orderIDs) < 2 {
		return nil
	}

	var msgs []pitch.Message
	for _, id := range []string{b.bidID, b.askID} {
		if id == "" {
			continue
		}
		msgs = append(msgs, pitch.NewBuilder(pitch.KindCancel).
			Timestamp(pitch.TimestampNow()).
			OrderID(id).
			Shares(b.Shares).
			Symbol(b.Symbol).
			Build())
	}

	b.bidID, b.askID = orderIDs[0], orderIDs[1]
	msgs = append(msgs,
		pitch.NewBuilder(pitch.KindAdd).
			Timestamp(pitch.TimestampNow()).
			OrderID(b.bidID).
			Side('B').
			Shares(b.Shares).
			Symbol(b.Symbol).
			Price(clampPrice(b.Center-b.Spread)).
			Display('Y').
			Build(),
		pitch.NewBuilder(pitch.KindAdd).
			Timestamp(pitch.TimestampNow()).
			OrderID(b.askID).
			Side('S').
			Shares(b.Shares).
			Symbol(b.Symbol).
			Price(clampPrice(b.Center+b.Spread)).
			Display('Y').
			Build(),
	)
	return msgs
}

// SpooferBot posts one oversized order far from the center and pulls it the
// following round, never intending to trade.
type SpooferBot struct {
	Symbol string
	Side   engine.Side
	Shares int64
	Price  float64

	liveID string
}

func NewSpooferBot(symbol string, side engine.Side, shares int64, price float64) *SpooferBot {
	return &SpooferBot{Symbol: symbol, Side: side, Shares: shares, Price: price}
}

func (b *SpooferBot) CreateMessages(orderIDs []string) []pitch.Message {
	if len(orderIDs) < 1 {
		return nil
	}

	var msgs []pitch.Message
	if b.liveID != "" {
		msgs = append(msgs, pitch.NewBuilder(pitch.KindCancel).
			Timestamp(pitch.TimestampNow()).
			OrderID(b.liveID).
			Shares(b.Shares).
			Symbol(b.Symbol).
			Build())
	}

	b.liveID = orderIDs[0]
	msgs = append(msgs, pitch.NewBuilder(pitch.KindAdd).
		Timestamp(pitch.TimestampNow()).
		OrderID(b.liveID).
		Side(b.Side.Tag()).
		Shares(b.Shares).
		Symbol(b.Symbol).
		Price(clampPrice(b.Price)).
		Display('Y').
		Build())
	return msgs
}

// TradeMessenger emits trade-passthrough frames with normally distributed
// prices, exercising the forwarding path without touching the books.
type TradeMessenger struct {
	Symbol string
	Side   engine.Side
	Shares int64
	Mean   float64
	Stddev float64

	rng *rand.Rand
}

func NewTradeMessenger(symbol string, side engine.Side, shares int64, mean, stddev float64, seed int64) *TradeMessenger {
	return &TradeMessenger{
		Symbol: symbol,
		Side:   side,
		Shares: shares,
		Mean:   mean,
		Stddev: stddev,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (b *TradeMessenger) CreateMessages(orderIDs []string) []pitch.Message {
	msgs := make([]pitch.Message, 0, len(orderIDs))
	for _, id := range orderIDs {
		price := clampPrice(b.rng.NormFloat64()*b.Stddev + b.Mean)
		msgs = append(msgs, pitch.NewBuilder(pitch.KindTrade).
			Timestamp(pitch.TimestampNow()).
			OrderID(id).
			Side(b.Side.Tag()).
			Shares(b.Shares).
			Symbol(b.Symbol).
			Price(price).
			ExecID(id). // passthrough frames reuse the order id slot
			Build())
	}
	return msgs
}
