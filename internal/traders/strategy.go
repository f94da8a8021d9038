// Package traders implements the synthetic order-flow generators that drive
// the simulation. Each bot is one strategy variant producing a batch of wire
// messages per round; the TraderPool owns the bots and the shared order-ID
// counter.
package traders

import (
	"math"

	"github.com/pitchcore/exchange-sim/internal/ids"
	"github.com/pitchcore/exchange-sim/internal/pitch"
	"github.com/shopspring/decimal"
)

// Strategy produces the next batch of messages given freshly allocated order
// ids. A bot may use fewer ids than offered; it must never mint its own.
type Strategy interface {
	CreateMessages(orderIDs []string) []pitch.Message
}

// TraderPool runs a closed set of strategies against one shared order-ID
// counter, so ids stay unique across all bots.
type TraderPool struct {
	orderIDs *ids.Counter
	bots     []Strategy
}

func NewTraderPool(counter *ids.Counter, bots ...Strategy) *TraderPool {
	return &TraderPool{orderIDs: counter, bots: bots}
}

// Round gathers one batch from every bot, offering each idsPerBot fresh
// order ids.
func (p *TraderPool) Round(idsPerBot int) ([]pitch.Message, error) {
	var out []pitch.Message
	for _, bot := range p.bots {
		batch := make([]string, 0, idsPerBot)
		for i := 0; i < idsPerBot; i++ {
			id, err := p.orderIDs.Next()
			if err != nil {
				return nil, err
			}
			batch = append(batch, id)
		}
		out = append(out, bot.CreateMessages(batch)...)
	}
	return out, nil
}

// maxWirePrice is the largest value a 10-digit 1/10,000-unit price field can
// carry.
var maxWirePrice = decimal.New(9999999999, -4)

// clampPrice rounds a model price onto the wire grid and keeps it in range.
func clampPrice(p float64) decimal.Decimal {
	if p < 0 || math.IsNaN(p) {
		return decimal.Zero
	}
	d := decimal.NewFromFloat(p).Round(4)
	if d.GreaterThan(maxWirePrice) {
		return maxWirePrice
	}
	return d
}
