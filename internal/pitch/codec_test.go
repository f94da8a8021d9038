package pitch

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAddRoundTrip(t *testing.T) {
	in := NewBuilder(KindAdd).
		Timestamp(12345678).
		OrderID("1234567890AB").
		Side('B').
		Shares(100).
		Symbol("SPY").
		Price(decimal.RequireFromString("100.0000")).
		Display('Y').
		Build()

	frame, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if frame != "S12345678A1234567890ABB000100   SPY0001000000Y" {
		t.Fatalf("unexpected frame: %q", frame)
	}

	out, err := Parse(frame)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.Kind != KindAdd || out.OrderID != "1234567890AB" || out.Side != 'B' ||
		out.Shares != 100 || out.Symbol != "SPY" || out.Display != 'Y' {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if !out.Price.Equal(decimal.New(100, 0)) {
		t.Fatalf("price: want 100, got %s", out.Price)
	}
}

func TestPriceWireScaling(t *testing.T) {
	// 123.4567 in major units travels as 0001234567 (1/10,000 units).
	in := NewBuilder(KindAdd).
		Timestamp(1).
		OrderID("000000000001").
		Side('S').
		Shares(1).
		Symbol("AAPL").
		Price(decimal.RequireFromString("123.4567")).
		Display('Y').
		Build()

	frame, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := Parse(frame)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !out.Price.Equal(decimal.RequireFromString("123.4567")) {
		t.Fatalf("price survived as %s", out.Price)
	}
}

func TestCancelRoundTrip(t *testing.T) {
	in := NewBuilder(KindCancel).
		Timestamp(99).
		OrderID("000000000002").
		Shares(50).
		Symbol("MSFT").
		Build()

	frame, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Parse(frame)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.Kind != KindCancel || out.OrderID != "000000000002" || out.Shares != 50 || out.Symbol != "MSFT" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestExecuteRoundTrip(t *testing.T) {
	in := NewBuilder(KindExecute).
		Timestamp(1).
		OrderID("000000000003").
		Shares(25).
		ExecID("00000000000A").
		Build()

	frame, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Parse(frame)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.Kind != KindExecute || out.ExecID != "00000000000A" || out.Shares != 25 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestTradeRoundTrip(t *testing.T) {
	in := NewBuilder(KindTrade).
		Timestamp(7).
		OrderID("000000000004").
		Side('S').
		Shares(10).
		Symbol("NVDA").
		Price(decimal.RequireFromString("120.5")).
		ExecID("00000000000B").
		Build()

	frame, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Parse(frame)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.Kind != KindTrade || out.Symbol != "NVDA" || out.ExecID != "00000000000B" ||
		!out.Price.Equal(decimal.RequireFromString("120.5")) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestEncodeMissingFields(t *testing.T) {
	cases := []Message{
		{Kind: KindAdd, OrderID: "000000000001", Side: 0, Shares: 1, Symbol: "SPY", Display: 'Y'},
		{Kind: KindAdd, OrderID: "000000000001", Side: 'B', Shares: 1, Symbol: "", Display: 'Y'},
		{Kind: KindAdd, OrderID: "000000000001", Side: 'B', Shares: 1, Symbol: "SPY", Display: 0},
		{Kind: KindExecute, OrderID: "000000000001", Shares: 1, ExecID: ""},
		{Kind: KindCancel, OrderID: "", Shares: 1, Symbol: "SPY"},
	}
	for i, m := range cases {
		if _, err := Encode(m); err == nil {
			t.Fatalf("case %d: expected encode error", i)
		}
	}
}

func TestEncodeSharesFieldOverflow(t *testing.T) {
	cases := []Message{
		{Kind: KindAdd, OrderID: "000000000001", Side: 'B', Shares: 1000000, Symbol: "SPY", Display: 'Y'},
		{Kind: KindCancel, OrderID: "000000000001", Shares: 1000000, Symbol: "SPY"},
		{Kind: KindExecute, OrderID: "000000000001", Shares: -1, ExecID: "00000000000A"},
	}
	for i, m := range cases {
		if _, err := Encode(m); !errors.Is(err, ErrMalformedFrame) {
			t.Fatalf("case %d: expected ErrMalformedFrame, got %v", i, err)
		}
	}

	// The widest representable value still fits exactly.
	frame, err := Encode(Message{Kind: KindCancel, OrderID: "000000000001", Shares: 999999, Symbol: "SPY"})
	if err != nil {
		t.Fatalf("max shares: %v", err)
	}
	if _, err := Parse(frame); err != nil {
		t.Fatalf("max shares frame must round trip: %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		"",
		"X12345678A",                   // no S prefix
		"S1234",                        // truncated timestamp
		"S12345678Q000000000001",       // unknown kind
		"S12345678A0001",               // short add body
		"SabcdefghA1234567890ABB000100   SPY0001000000Y", // non-numeric timestamp
	}
	for i, frame := range cases {
		if _, err := Parse(frame); !errors.Is(err, ErrMalformedFrame) {
			t.Fatalf("case %d: expected ErrMalformedFrame, got %v", i, err)
		}
	}
}

func TestBuilderSetsAllFields(t *testing.T) {
	m := NewBuilder(KindTrade).
		Timestamp(5).
		OrderID("000000000009").
		Side('B').
		Shares(3).
		Symbol("SPY").
		Price(decimal.New(1, 0)).
		Display('Y').
		ExecID("00000000000C").
		Build()

	if m.Kind != KindTrade || m.Timestamp != 5 || m.OrderID != "000000000009" ||
		m.Side != 'B' || m.Shares != 3 || m.Symbol != "SPY" || m.Display != 'Y' ||
		m.ExecID != "00000000000C" || !m.Price.Equal(decimal.New(1, 0)) {
		t.Fatalf("builder lost a field: %+v", m)
	}
}
