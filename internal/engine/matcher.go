package engine

import "fmt"

// matchLevel returns the best opposite-side level that crosses the incoming
// limit, or nil when no trade is possible. For an incoming buy the opposite
// book is asks, so best means lowest price; for an incoming sell it is bids,
// so best means highest.
func (e *MatchingEngine) matchLevel(opposite *Book, incoming *Order) *priceLevel {
	if incoming.Side == SideBuy {
		lvl := opposite.BestLow(incoming.Symbol)
		if lvl == nil || lvl.price.GreaterThan(incoming.Price) {
			return nil
		}
		return lvl
	}

	lvl := opposite.BestHigh(incoming.Symbol)
	if lvl == nil || lvl.price.LessThan(incoming.Price) {
		return nil
	}
	return lvl
}

// attemptTrade sweeps the opposite book, filling the incoming order against
// resting orders in price-time priority. It returns the incoming order with
// whatever shares remain for insertion, or nil if it was fully consumed.
//
// Every fill trades at the resting order's price, updates the last-trade
// price, and emits one execution notification for the resting side.
func (e *MatchingEngine) attemptTrade(incoming *Order) (*Order, error) {
	opposite := e.book(incoming.Side.Opposite())
	if !opposite.Provisioned(incoming.Symbol) {
		// No opposite book at all: nothing to match against.
		return incoming, nil
	}

	for {
		lvl := e.matchLevel(opposite, incoming)
		if lvl == nil {
			return incoming, nil
		}

		for front := lvl.orders.Front(); front != nil; front = lvl.orders.Front() {
			resting := front.Value.(*Order)
			if resting.Shares <= 0 || incoming.Shares <= 0 {
				return nil, fmt.Errorf("%w: non-positive shares mid-sweep (resting %d, incoming %d)",
					ErrInvariantViolation, resting.Shares, incoming.Shares)
			}

			delta := min(resting.Shares, incoming.Shares)
			resting.Reduce(delta)
			incoming.Reduce(delta)
			e.lastPrice[incoming.Symbol] = resting.Price
			if e.reporter != nil {
				e.reporter.ReportExecution(resting.ID, delta)
			}

			if resting.Shares == 0 {
				lvl.orders.Remove(front)
				delete(e.orders, resting.ID)
			} else if resting.Shares < 0 {
				return nil, fmt.Errorf("%w: resting order %s went negative", ErrInvariantViolation, resting.ID)
			}

			if incoming.Shares == 0 {
				if lvl.orders.Len() == 0 {
					opposite.RemoveLevel(incoming.Symbol, lvl.price)
				}
				return nil, nil
			}
			if incoming.Shares < 0 {
				return nil, fmt.Errorf("%w: incoming order %s went negative", ErrInvariantViolation, incoming.ID)
			}
		}

		// Level drained: drop it before rescanning, the next crossing level
		// may sit at a different price.
		opposite.RemoveLevel(incoming.Symbol, lvl.price)
	}
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
