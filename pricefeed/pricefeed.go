package pricefeed

import (
	"context"
	"fmt"

	"github.com/pitchcore/exchange-sim/internal/router"
	"github.com/shopspring/decimal"
)

type PriceFeed interface {
	GetLast(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// RouterFeed implements PriceFeed against the engine router: each lookup is
// dispatched to the matching engine owning the symbol.
type RouterFeed struct {
	router *router.Router
}

func NewRouterFeed(r *router.Router) *RouterFeed {
	return &RouterFeed{router: r}
}

// GetLast returns the last trade price for symbol. Symbols that have never
// traded, or that no engine owns, yield an error.
func (f *RouterFeed) GetLast(_ context.Context, symbol string) (decimal.Decimal, error) {
	price, found, err := f.router.RouteGetLastPrice(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		return decimal.Zero, fmt.Errorf("pricefeed: no trade yet for %q", symbol)
	}
	return price, nil
}
