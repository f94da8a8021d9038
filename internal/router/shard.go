package router

import (
	"context"

	"github.com/pitchcore/exchange-sim/internal/engine"
	"github.com/pitchcore/exchange-sim/internal/pitch"
	"github.com/shopspring/decimal"
)

const shardBuffer = 1024

type cmdType int

const (
	cmdIngest cmdType = iota
	cmdLastPrice
)

type command struct {
	typ    cmdType
	msg    pitch.Message // cmdIngest
	symbol string        // cmdLastPrice
	resp   chan result
}

type result struct {
	err   error
	price decimal.Decimal
	found bool
}

// shard gives one MatchingEngine exclusive single-goroutine ownership of its
// symbols: all traffic funnels through the command channel and each message
// runs to completion before the next is considered.
type shard struct {
	eng     *engine.MatchingEngine
	symbols []string
	cmds    chan command
	done    chan struct{}
}

func newShard(symbols []string, reporter engine.ExecutionReporter) *shard {
	eng := engine.NewMatchingEngine(reporter)
	eng.PopulateSymbols(symbols)
	return &shard{
		eng:     eng,
		symbols: symbols,
		cmds:    make(chan command, shardBuffer),
		done:    make(chan struct{}),
	}
}

func (s *shard) run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case cmd := <-s.cmds:
			switch cmd.typ {
			case cmdIngest:
				cmd.resp <- result{err: s.eng.IngestMessage(cmd.msg)}
			case cmdLastPrice:
				price, found := s.eng.LastPrice(cmd.symbol)
				cmd.resp <- result{price: price, found: found}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *shard) ingest(msg pitch.Message) error {
	resp := make(chan result, 1)
	select {
	case s.cmds <- command{typ: cmdIngest, msg: msg, resp: resp}:
	case <-s.done:
		return ErrShardStopped
	}
	select {
	case res := <-resp:
		return res.err
	case <-s.done:
		return ErrShardStopped
	}
}

func (s *shard) lastPrice(symbol string) (decimal.Decimal, bool, error) {
	resp := make(chan result, 1)
	select {
	case s.cmds <- command{typ: cmdLastPrice, symbol: symbol, resp: resp}:
	case <-s.done:
		return decimal.Zero, false, ErrShardStopped
	}
	select {
	case res := <-resp:
		return res.price, res.found, nil
	case <-s.done:
		return decimal.Zero, false, ErrShardStopped
	}
}
