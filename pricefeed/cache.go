package pricefeed

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceCache stores the latest trade prices for symbols in memory. It fronts
// the router for read-heavy surfaces like the HTTP layer, so lookups never
// enter an engine's command queue.
type PriceCache struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

func NewPriceCache() *PriceCache {
	return &PriceCache{prices: make(map[string]decimal.Decimal)}
}

func (c *PriceCache) Set(symbol string, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[symbol] = price
}

func (c *PriceCache) Get(symbol string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[symbol]
	return p, ok
}

// StartPriceUpdater periodically refreshes cached prices for the given
// symbols until ctx is canceled.
func StartPriceUpdater(
	ctx context.Context,
	feed PriceFeed,
	cache *PriceCache,
	symbols []string,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refreshOnce(ctx, feed, cache, symbols, log)

	for {
		select {
		case <-ticker.C:
			refreshOnce(ctx, feed, cache, symbols, log)
		case <-ctx.Done():
			return
		}
	}
}

func refreshOnce(ctx context.Context, feed PriceFeed, cache *PriceCache, symbols []string, log *zap.Logger) {
	for _, symbol := range symbols {
		price, err := feed.GetLast(ctx, symbol)
		if err != nil {
			// Symbols that have not traded yet are expected to miss.
			log.Debug("price refresh skipped", zap.String("symbol", symbol), zap.Error(err))
			continue
		}
		cache.Set(symbol, price)
	}
}
