package engine

import (
	"container/list"
	"fmt"

	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

// priceLevel holds FIFO orders for one price: append at the tail, fill from
// the head. An emptied level is removed from its tree eagerly so best-price
// scans never see stale entries.
type priceLevel struct {
	price  decimal.Decimal
	orders *list.List // of *Order, oldest first
}

func levelLess(a, b *priceLevel) bool {
	return a.price.LessThan(b.price)
}

const levelTreeDegree = 16

// Book is one side of the market for one engine shard: symbol to a
// price-ordered tree of levels. A symbol has a tree, possibly empty, if and
// only if it was provisioned.
type Book struct {
	levels map[string]*btree.BTreeG[*priceLevel]
}

func NewBook() *Book {
	return &Book{levels: make(map[string]*btree.BTreeG[*priceLevel])}
}

// Provision creates an empty price tree for the symbol. Idempotent.
func (b *Book) Provision(symbol string) {
	if _, ok := b.levels[symbol]; !ok {
		b.levels[symbol] = btree.NewG(levelTreeDegree, levelLess)
	}
}

func (b *Book) Provisioned(symbol string) bool {
	_, ok := b.levels[symbol]
	return ok
}

// Insert appends the order to the tail of its price level, creating the
// level if it is the first order at that price.
func (b *Book) Insert(o *Order) (*list.Element, error) {
	tree, ok := b.levels[o.Symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, o.Symbol)
	}
	lvl, ok := tree.Get(&priceLevel{price: o.Price})
	if !ok {
		lvl = &priceLevel{price: o.Price, orders: list.New()}
		tree.ReplaceOrInsert(lvl)
	}
	return lvl.orders.PushBack(o), nil
}

// Level returns the level at an exact price, or nil.
func (b *Book) Level(symbol string, price decimal.Decimal) *priceLevel {
	tree, ok := b.levels[symbol]
	if !ok {
		return nil
	}
	lvl, ok := tree.Get(&priceLevel{price: price})
	if !ok {
		return nil
	}
	return lvl
}

// BestHigh returns the highest-priced level, or nil. This is the matching
// priority for a buy-side book.
func (b *Book) BestHigh(symbol string) *priceLevel {
	tree, ok := b.levels[symbol]
	if !ok {
		return nil
	}
	lvl, ok := tree.Max()
	if !ok {
		return nil
	}
	return lvl
}

// BestLow returns the lowest-priced level, or nil. This is the matching
// priority for a sell-side book.
func (b *Book) BestLow(symbol string) *priceLevel {
	tree, ok := b.levels[symbol]
	if !ok {
		return nil
	}
	lvl, ok := tree.Min()
	if !ok {
		return nil
	}
	return lvl
}

// RemoveLevel discards an exhausted level.
func (b *Book) RemoveLevel(symbol string, price decimal.Decimal) {
	if tree, ok := b.levels[symbol]; ok {
		tree.Delete(&priceLevel{price: price})
	}
}

// Depth reports the number of populated levels for a symbol.
func (b *Book) Depth(symbol string) int {
	tree, ok := b.levels[symbol]
	if !ok {
		return 0
	}
	return tree.Len()
}
