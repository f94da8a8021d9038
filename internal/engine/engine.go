// Package engine implements the matching core: per-symbol buy and sell books,
// price-time priority matching, O(1) cancellation, and last-trade-price
// tracking. A MatchingEngine owns one shard of the symbol universe and is
// deliberately lock-free; exclusive single-goroutine ownership is enforced by
// the router layer.
package engine

import (
	"container/list"
	"fmt"

	"github.com/pitchcore/exchange-sim/internal/pitch"
	"github.com/shopspring/decimal"
)

// ExecutionReporter receives one notification per fill against a resting
// order, plus trade messages passed through unmodified. Implementations own
// execution-ID allocation and timestamping.
type ExecutionReporter interface {
	ReportExecution(orderID string, shares int64)
	ForwardTrade(msg pitch.Message)
}

// orderRef is the identity-index handle: enough to reach an order's list
// element without a symbol/side/price scan. The price level's list element is
// the single authoritative owner of the *Order; refs never outlive it.
type orderRef struct {
	side  Side
	price decimal.Decimal
	elem  *list.Element
}

type MatchingEngine struct {
	buyBook  *Book
	sellBook *Book

	orders    map[string]orderRef
	lastPrice map[string]decimal.Decimal

	reporter ExecutionReporter // nil drops notifications (offline mode)
}

// NewMatchingEngine builds an empty engine. reporter may be nil for
// standalone instances; notifications are then silently dropped.
func NewMatchingEngine(reporter ExecutionReporter) *MatchingEngine {
	return &MatchingEngine{
		buyBook:   NewBook(),
		sellBook:  NewBook(),
		orders:    make(map[string]orderRef),
		lastPrice: make(map[string]decimal.Decimal),
		reporter:  reporter,
	}
}

// SetReporter wires the execution reporter after construction.
func (e *MatchingEngine) SetReporter(r ExecutionReporter) {
	e.reporter = r
}

func (e *MatchingEngine) book(side Side) *Book {
	if side == SideBuy {
		return e.buyBook
	}
	return e.sellBook
}

// PopulateSymbols creates empty buy and sell book entries for each symbol.
// Must run before any traffic referencing those symbols.
func (e *MatchingEngine) PopulateSymbols(symbols []string) {
	for _, symbol := range symbols {
		e.buyBook.Provision(symbol)
		e.sellBook.Provision(symbol)
	}
}

// IngestMessage routes one inbound message by kind. Execute messages are an
// output-only artifact and are rejected like any other unexpected kind.
func (e *MatchingEngine) IngestMessage(msg pitch.Message) error {
	switch msg.Kind {
	case pitch.KindAdd:
		return e.AddOrder(msg)
	case pitch.KindCancel:
		return e.CancelOrder(msg)
	case pitch.KindTrade:
		e.ForwardTrade(msg)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnexpectedMessageType, byte(msg.Kind))
}

// AddOrder constructs an order from the message, matches it against the
// opposite book, and rests any remainder at its limit price. A fully
// consumed order never touches the identity index.
func (e *MatchingEngine) AddOrder(msg pitch.Message) error {
	side, err := ParseSide(msg.Side)
	if err != nil {
		return err
	}
	if !e.book(side).Provisioned(msg.Symbol) {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, msg.Symbol)
	}
	if msg.Shares <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidShares, msg.Shares)
	}

	incoming := &Order{
		ID:     msg.OrderID,
		Symbol: msg.Symbol,
		Side:   side,
		Price:  msg.Price,
		Shares: msg.Shares,
	}

	remainder, err := e.attemptTrade(incoming)
	if err != nil {
		return err
	}
	if remainder == nil {
		return nil
	}

	elem, err := e.book(side).Insert(remainder)
	if err != nil {
		return err
	}
	e.orders[remainder.ID] = orderRef{side: side, price: remainder.Price, elem: elem}
	return nil
}

// CancelOrder reduces a resting order by the requested share count, removing
// it entirely when nothing remains. Partial cancels keep queue position.
func (e *MatchingEngine) CancelOrder(msg pitch.Message) error {
	ref, ok := e.orders[msg.OrderID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrOrderNotFound, msg.OrderID)
	}

	o := ref.elem.Value.(*Order)
	o.Reduce(msg.Shares)
	if o.Shares > 0 {
		return nil
	}

	book := e.book(ref.side)
	lvl := book.Level(o.Symbol, ref.price)
	if lvl == nil {
		return fmt.Errorf("%w: order %s indexed at missing level %s", ErrInvariantViolation, o.ID, ref.price)
	}
	lvl.orders.Remove(ref.elem)
	if lvl.orders.Len() == 0 {
		book.RemoveLevel(o.Symbol, ref.price)
	}
	delete(e.orders, o.ID)
	return nil
}

// ForwardTrade passes a trade message through to the reporter. No book state
// changes.
func (e *MatchingEngine) ForwardTrade(msg pitch.Message) {
	if e.reporter != nil {
		e.reporter.ForwardTrade(msg)
	}
}

// LastPrice returns the most recent trade price for a symbol, if any trade
// has occurred.
func (e *MatchingEngine) LastPrice(symbol string) (decimal.Decimal, bool) {
	p, ok := e.lastPrice[symbol]
	return p, ok
}

// RestingOrder exposes a resting order by id for inspection. The returned
// order must not be mutated.
func (e *MatchingEngine) RestingOrder(id string) (*Order, bool) {
	ref, ok := e.orders[id]
	if !ok {
		return nil, false
	}
	return ref.elem.Value.(*Order), true
}

// OpenOrders reports the identity-index size.
func (e *MatchingEngine) OpenOrders() int {
	return len(e.orders)
}

// Depth reports populated price levels for one side of a symbol.
func (e *MatchingEngine) Depth(symbol string, side Side) int {
	return e.book(side).Depth(symbol)
}
