package pitch

import "github.com/shopspring/decimal"

// Builder assembles an outbound Message field by field. Setters chain, so
// producers can write one expression per frame the way the wire layer expects.
type Builder struct {
	m Message
}

func NewBuilder(kind Kind) *Builder {
	return &Builder{m: Message{Kind: kind}}
}

func (b *Builder) Timestamp(ts int64) *Builder {
	b.m.Timestamp = ts
	return b
}

func (b *Builder) OrderID(id string) *Builder {
	b.m.OrderID = id
	return b
}

func (b *Builder) Side(side byte) *Builder {
	b.m.Side = side
	return b
}

func (b *Builder) Shares(n int64) *Builder {
	b.m.Shares = n
	return b
}

func (b *Builder) Symbol(symbol string) *Builder {
	b.m.Symbol = symbol
	return b
}

func (b *Builder) Price(p decimal.Decimal) *Builder {
	b.m.Price = p
	return b
}

func (b *Builder) Display(d byte) *Builder {
	b.m.Display = d
	return b
}

func (b *Builder) ExecID(id string) *Builder {
	b.m.ExecID = id
	return b
}

func (b *Builder) Build() Message {
	return b.m
}
