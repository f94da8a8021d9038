// Package router partitions the symbol universe across matching engine
// shards. The partition is contiguous, near-equal, and immutable for the
// process lifetime: a symbol is owned by exactly one engine, which is what
// lets each engine run without internal locking.
package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/pitchcore/exchange-sim/internal/engine"
	"github.com/pitchcore/exchange-sim/internal/pitch"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoOwningEngine is returned for symbols outside the configured universe.
	ErrNoOwningEngine = errors.New("router: no owning engine for symbol")

	// ErrShardStopped is returned once a shard's loop has exited; traffic
	// after shutdown fails instead of blocking.
	ErrShardStopped = errors.New("router: shard stopped")
)

type Router struct {
	shards   []*shard
	bySymbol map[string]*shard
}

// New builds engineCount engines, splits symbols contiguously across them
// (first len(symbols) mod engineCount shards get one extra), and provisions
// each engine with its shard. reporter may be nil.
func New(symbols []string, engineCount int, reporter engine.ExecutionReporter) (*Router, error) {
	if engineCount < 1 {
		return nil, fmt.Errorf("router: engine count must be >= 1, got %d", engineCount)
	}

	r := &Router{bySymbol: make(map[string]*shard, len(symbols))}
	for _, shardSymbols := range splitSymbols(symbols, engineCount) {
		s := newShard(shardSymbols, reporter)
		r.shards = append(r.shards, s)
		for _, symbol := range shardSymbols {
			r.bySymbol[symbol] = s
		}
	}
	return r, nil
}

// splitSymbols divides symbols into n contiguous, order-preserving slices
// whose sizes differ by at most one.
func splitSymbols(symbols []string, n int) [][]string {
	out := make([][]string, n)
	base := len(symbols) / n
	remainder := len(symbols) % n

	idx := 0
	for i := 0; i < n; i++ {
		size := base
		if i < remainder {
			size++
		}
		out[i] = symbols[idx : idx+size]
		idx += size
	}
	return out
}

// Run starts every shard loop and blocks until ctx is canceled.
func (r *Router) Run(ctx context.Context) {
	for _, s := range r.shards {
		go s.run(ctx)
	}
	<-ctx.Done()
}

// RouteMessage dispatches one inbound message to the engine owning its
// symbol and waits for the result.
func (r *Router) RouteMessage(msg pitch.Message) error {
	s, ok := r.bySymbol[msg.Symbol]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoOwningEngine, msg.Symbol)
	}
	return s.ingest(msg)
}

// RouteGetLastPrice dispatches a last-trade-price query to the owning engine.
func (r *Router) RouteGetLastPrice(symbol string) (decimal.Decimal, bool, error) {
	s, ok := r.bySymbol[symbol]
	if !ok {
		return decimal.Zero, false, fmt.Errorf("%w: %q", ErrNoOwningEngine, symbol)
	}
	return s.lastPrice(symbol)
}

// ShardCount reports the number of engine shards.
func (r *Router) ShardCount() int {
	return len(r.shards)
}

// Owns reports whether any engine owns the symbol.
func (r *Router) Owns(symbol string) bool {
	_, ok := r.bySymbol[symbol]
	return ok
}
