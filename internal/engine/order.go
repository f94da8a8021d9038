package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide maps a wire side tag to a Side.
func ParseSide(tag byte) (Side, error) {
	switch tag {
	case 'B':
		return SideBuy, nil
	case 'S':
		return SideSell, nil
	}
	return "", fmt.Errorf("%w: bad side tag %q", ErrInvariantViolation, tag)
}

func (s Side) Tag() byte {
	if s == SideBuy {
		return 'B'
	}
	return 'S'
}

func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Order is one resting interest. Identity is immutable; only Shares mutates,
// and only through Reduce. An order whose shares hit zero is removed from
// every index immediately, so Shares > 0 holds for anything still resting.
type Order struct {
	ID     string
	Symbol string
	Side   Side
	Price  decimal.Decimal
	Shares int64
}

// Reduce decrements the resting quantity. The engine clamps fill deltas to
// the available quantity before calling; Reduce itself does not.
func (o *Order) Reduce(delta int64) {
	o.Shares -= delta
}
