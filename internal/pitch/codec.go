package pitch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field widths, in wire order after the "S" prefix and the 8-digit timestamp.
//
//	Add:     Type(1) OrderID(12) Side(1) Shares(6) Symbol(6) Price(10) Display(1)
//	Cancel:  Type(1) OrderID(12) Shares(6) Symbol(6)
//	Execute: Type(1) OrderID(12) Shares(6) ExecutionID(12)
//	Trade:   Type(1) OrderID(12) Side(1) Shares(6) Symbol(6) Price(10) ExecutionID(12)
//
// Prices travel as zero-padded integers in 1/10,000 currency units and are
// held internally in major units.
const (
	timestampWidth = 8
	orderIDWidth   = 12
	sharesWidth    = 6
	symbolWidth    = 6
	priceWidth     = 10
	execIDWidth    = 12

	priceScale = 4

	maxShares = 999999 // widest value the shares field can carry
)

var (
	ErrMalformedFrame = errors.New("pitch: malformed frame")
	ErrMissingField   = errors.New("pitch: missing required field")
)

// Encode renders m as a wire frame. Fields required by m.Kind must be set.
func Encode(m Message) (string, error) {
	if m.OrderID == "" {
		return "", fmt.Errorf("%w: OrderID", ErrMissingField)
	}
	if len(m.OrderID) != orderIDWidth {
		return "", fmt.Errorf("%w: order id %q must be %d chars", ErrMalformedFrame, m.OrderID, orderIDWidth)
	}

	var b strings.Builder
	b.WriteByte('S')
	fmt.Fprintf(&b, "%0*d", timestampWidth, m.Timestamp)
	b.WriteByte(byte(m.Kind))
	b.WriteString(m.OrderID)

	switch m.Kind {
	case KindAdd:
		if err := encodeSide(&b, m); err != nil {
			return "", err
		}
		if err := encodeShares(&b, m); err != nil {
			return "", err
		}
		if err := encodeSymbol(&b, m); err != nil {
			return "", err
		}
		encodePrice(&b, m)
		if m.Display == 0 {
			return "", fmt.Errorf("%w: Display", ErrMissingField)
		}
		b.WriteByte(m.Display)
	case KindCancel:
		if err := encodeShares(&b, m); err != nil {
			return "", err
		}
		if err := encodeSymbol(&b, m); err != nil {
			return "", err
		}
	case KindExecute:
		if err := encodeShares(&b, m); err != nil {
			return "", err
		}
		if err := encodeExecID(&b, m); err != nil {
			return "", err
		}
	case KindTrade:
		if err := encodeSide(&b, m); err != nil {
			return "", err
		}
		if err := encodeShares(&b, m); err != nil {
			return "", err
		}
		if err := encodeSymbol(&b, m); err != nil {
			return "", err
		}
		encodePrice(&b, m)
		if err := encodeExecID(&b, m); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrMalformedFrame, byte(m.Kind))
	}

	return b.String(), nil
}

func encodeSide(b *strings.Builder, m Message) error {
	if m.Side != 'B' && m.Side != 'S' {
		return fmt.Errorf("%w: Side", ErrMissingField)
	}
	b.WriteByte(m.Side)
	return nil
}

func encodeShares(b *strings.Builder, m Message) error {
	if m.Shares < 0 || m.Shares > maxShares {
		return fmt.Errorf("%w: shares %d does not fit %d digits", ErrMalformedFrame, m.Shares, sharesWidth)
	}
	fmt.Fprintf(b, "%0*d", sharesWidth, m.Shares)
	return nil
}

func encodeSymbol(b *strings.Builder, m Message) error {
	if m.Symbol == "" {
		return fmt.Errorf("%w: Symbol", ErrMissingField)
	}
	if len(m.Symbol) > symbolWidth {
		return fmt.Errorf("%w: symbol %q exceeds %d chars", ErrMalformedFrame, m.Symbol, symbolWidth)
	}
	fmt.Fprintf(b, "%*s", symbolWidth, m.Symbol)
	return nil
}

func encodePrice(b *strings.Builder, m Message) {
	fmt.Fprintf(b, "%0*d", priceWidth, m.Price.Shift(priceScale).IntPart())
}

func encodeExecID(b *strings.Builder, m Message) error {
	if len(m.ExecID) != execIDWidth {
		return fmt.Errorf("%w: ExecutionID", ErrMissingField)
	}
	b.WriteString(m.ExecID)
	return nil
}

// Parse decodes one wire frame.
func Parse(frame string) (Message, error) {
	if len(frame) < 1+timestampWidth+1 || frame[0] != 'S' {
		return Message{}, fmt.Errorf("%w: short or unprefixed frame", ErrMalformedFrame)
	}

	ts, err := strconv.ParseInt(frame[1:1+timestampWidth], 10, 64)
	if err != nil {
		return Message{}, fmt.Errorf("%w: timestamp: %v", ErrMalformedFrame, err)
	}

	m := Message{
		Kind:      Kind(frame[1+timestampWidth]),
		Timestamp: ts,
	}
	body := frame[1+timestampWidth+1:]

	switch m.Kind {
	case KindAdd:
		if len(body) != orderIDWidth+1+sharesWidth+symbolWidth+priceWidth+1 {
			return Message{}, fmt.Errorf("%w: add frame length %d", ErrMalformedFrame, len(frame))
		}
		m.OrderID = body[:orderIDWidth]
		body = body[orderIDWidth:]
		m.Side = body[0]
		body = body[1:]
		if m.Shares, err = parseShares(body[:sharesWidth]); err != nil {
			return Message{}, err
		}
		body = body[sharesWidth:]
		m.Symbol = strings.TrimSpace(body[:symbolWidth])
		body = body[symbolWidth:]
		if m.Price, err = parsePrice(body[:priceWidth]); err != nil {
			return Message{}, err
		}
		m.Display = body[priceWidth]
	case KindCancel:
		if len(body) != orderIDWidth+sharesWidth+symbolWidth {
			return Message{}, fmt.Errorf("%w: cancel frame length %d", ErrMalformedFrame, len(frame))
		}
		m.OrderID = body[:orderIDWidth]
		body = body[orderIDWidth:]
		if m.Shares, err = parseShares(body[:sharesWidth]); err != nil {
			return Message{}, err
		}
		m.Symbol = strings.TrimSpace(body[sharesWidth:])
	case KindExecute:
		if len(body) != orderIDWidth+sharesWidth+execIDWidth {
			return Message{}, fmt.Errorf("%w: execute frame length %d", ErrMalformedFrame, len(frame))
		}
		m.OrderID = body[:orderIDWidth]
		body = body[orderIDWidth:]
		if m.Shares, err = parseShares(body[:sharesWidth]); err != nil {
			return Message{}, err
		}
		m.ExecID = body[sharesWidth:]
	case KindTrade:
		if len(body) != orderIDWidth+1+sharesWidth+symbolWidth+priceWidth+execIDWidth {
			return Message{}, fmt.Errorf("%w: trade frame length %d", ErrMalformedFrame, len(frame))
		}
		m.OrderID = body[:orderIDWidth]
		body = body[orderIDWidth:]
		m.Side = body[0]
		body = body[1:]
		if m.Shares, err = parseShares(body[:sharesWidth]); err != nil {
			return Message{}, err
		}
		body = body[sharesWidth:]
		m.Symbol = strings.TrimSpace(body[:symbolWidth])
		body = body[symbolWidth:]
		if m.Price, err = parsePrice(body[:priceWidth]); err != nil {
			return Message{}, err
		}
		m.ExecID = body[priceWidth:]
	default:
		return Message{}, fmt.Errorf("%w: unknown kind %q", ErrMalformedFrame, byte(m.Kind))
	}

	return m, nil
}

func parseShares(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: shares %q", ErrMalformedFrame, s)
	}
	return n, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return decimal.Zero, fmt.Errorf("%w: price %q", ErrMalformedFrame, s)
	}
	return decimal.New(n, -priceScale), nil
}
