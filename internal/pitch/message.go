package pitch

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the single-character message type tag.
type Kind byte

const (
	KindAdd     Kind = 'A'
	KindCancel  Kind = 'X'
	KindExecute Kind = 'E'
	KindTrade   Kind = 'P'
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindCancel:
		return "cancel"
	case KindExecute:
		return "execute"
	case KindTrade:
		return "trade"
	}
	return "unknown"
}

// Message is one PITCH-style frame. Which fields are meaningful depends on
// Kind; Encode validates the required set per kind.
type Message struct {
	Kind      Kind
	Timestamp int64 // milliseconds since midnight
	OrderID   string
	Side      byte // 'B' or 'S'
	Shares    int64
	Symbol    string
	Price     decimal.Decimal
	Display   byte
	ExecID    string
}

// TimestampNow returns the wire timestamp for the current wall clock.
func TimestampNow() int64 {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return now.Sub(midnight).Milliseconds()
}
