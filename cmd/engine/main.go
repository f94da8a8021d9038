// Offline single-engine demo: one matching engine, no reporter, a scripted
// burst of orders, and a dump of what rests afterwards.
package main

import (
	"fmt"

	"github.com/pitchcore/exchange-sim/internal/engine"
	"github.com/pitchcore/exchange-sim/internal/pitch"
	"github.com/shopspring/decimal"
)

func main() {
	eng := engine.NewMatchingEngine(nil)
	eng.PopulateSymbols([]string{"SPY"})

	add := func(id string, side byte, shares int64, price string) {
		p, _ := decimal.NewFromString(price)
		msg := pitch.NewBuilder(pitch.KindAdd).
			Timestamp(pitch.TimestampNow()).
			OrderID(id).
			Side(side).
			Shares(shares).
			Symbol("SPY").
			Price(p).
			Display('Y').
			Build()
		if err := eng.IngestMessage(msg); err != nil {
			fmt.Println("ingest failed:", err)
		}
	}

	// Two bids rest, then a crossing sell sweeps the better one.
	add("00000000000A", 'B', 100, "100.00")
	add("00000000000B", 'B', 50, "99.50")
	add("00000000000C", 'S', 120, "99.00")

	if last, ok := eng.LastPrice("SPY"); ok {
		fmt.Println("last trade price:", last)
	}
	fmt.Println("open orders:", eng.OpenOrders())
	fmt.Println("bid depth:", eng.Depth("SPY", engine.SideBuy))
	fmt.Println("ask depth:", eng.Depth("SPY", engine.SideSell))

	if o, ok := eng.RestingOrder("00000000000B"); ok {
		fmt.Printf("resting %s: %d @ %s\n", o.ID, o.Shares, o.Price)
	}
}
