// Package dataservice collects execution and trade traffic from all matching
// shards. It owns the process-wide execution-ID counter and the bounded
// hand-off queue, and drains the queue on its own goroutine so a slow
// consumer can never stall matching.
package dataservice

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchcore/exchange-sim/db"
	"github.com/pitchcore/exchange-sim/internal/ids"
	"github.com/pitchcore/exchange-sim/internal/pitch"
	"github.com/pitchcore/exchange-sim/pricefeed"
	"go.uber.org/zap"
)

// Config wires the optional collaborators. Zero values give a fully offline
// service: no persistence, no cache updates, nop logging.
type Config struct {
	QueueCapacity int
	Pool          *pgxpool.Pool         // nil skips persistence
	Cache         *pricefeed.PriceCache // nil skips trade price caching
	Logger        *zap.Logger
}

type DataService struct {
	queue   *Queue
	execIDs *ids.Counter
	pool    *pgxpool.Pool
	cache   *pricefeed.PriceCache
	log     *zap.Logger

	executions atomic.Uint64
	trades     atomic.Uint64
}

func New(cfg Config) *DataService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &DataService{
		queue:   NewQueue(cfg.QueueCapacity),
		execIDs: ids.NewCounter(),
		pool:    cfg.Pool,
		cache:   cfg.Cache,
		log:     cfg.Logger,
	}
}

// Queue exposes the hand-off buffer, mainly for backpressure monitoring.
func (s *DataService) Queue() *Queue {
	return s.queue
}

// Executions reports how many execution frames have been consumed.
func (s *DataService) Executions() uint64 {
	return s.executions.Load()
}

// ReportExecution builds one Execute frame for a fill against a resting
// order and hands it off. Called from matching goroutines; must not block.
// Exhausting the execution-ID space is unrecoverable.
func (s *DataService) ReportExecution(orderID string, shares int64) {
	execID, err := s.execIDs.Next()
	if err != nil {
		s.log.Fatal("execution id allocation failed", zap.Error(err))
	}

	msg := pitch.NewBuilder(pitch.KindExecute).
		Timestamp(pitch.TimestampNow()).
		OrderID(orderID).
		Shares(shares).
		ExecID(execID).
		Build()

	s.queue.TryPush(msg)
}

// ForwardTrade hands a trade passthrough frame off unchanged.
func (s *DataService) ForwardTrade(msg pitch.Message) {
	s.queue.TryPush(msg)
}

// Run drains the queue until ctx is canceled, then logs a consumption
// summary including the drop count.
func (s *DataService) Run(ctx context.Context) {
	for {
		select {
		case msg := <-s.queue.ch:
			s.consume(ctx, msg)
		case <-ctx.Done():
			s.log.Info("data service stopped",
				zap.Uint64("executions", s.executions.Load()),
				zap.Uint64("trades", s.trades.Load()),
				zap.Uint64("dropped", s.queue.Dropped()),
			)
			return
		}
	}
}

func (s *DataService) consume(ctx context.Context, msg pitch.Message) {
	switch msg.Kind {
	case pitch.KindExecute:
		s.executions.Add(1)
		if s.pool != nil {
			row := db.ExecutionRow{
				OrderID:     msg.OrderID,
				Shares:      msg.Shares,
				ExecutionID: msg.ExecID,
				ExecutedAt:  time.Now().UTC(),
			}
			if err := db.InsertExecution(ctx, s.pool, row); err != nil {
				s.log.Error("persist execution failed",
					zap.String("execution_id", msg.ExecID), zap.Error(err))
			}
		}
	case pitch.KindTrade:
		s.trades.Add(1)
		if s.cache != nil && msg.Symbol != "" {
			s.cache.Set(msg.Symbol, msg.Price)
		}
	default:
		s.log.Warn("unexpected frame kind on data queue", zap.String("kind", msg.Kind.String()))
	}
}
