// Simulation driver: builds the full exchange (data service, sharded router,
// trader pool) from configuration and pumps synthetic order flow through it.
package main

import (
	"context"
	"errors"
	"flag"

	"go.uber.org/zap"

	"github.com/pitchcore/exchange-sim/config"
	"github.com/pitchcore/exchange-sim/db"
	"github.com/pitchcore/exchange-sim/internal/dataservice"
	"github.com/pitchcore/exchange-sim/internal/engine"
	"github.com/pitchcore/exchange-sim/internal/ids"
	"github.com/pitchcore/exchange-sim/internal/router"
	"github.com/pitchcore/exchange-sim/internal/traders"
	"github.com/pitchcore/exchange-sim/pricefeed"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := pricefeed.NewPriceCache()
	dsCfg := dataservice.Config{
		QueueCapacity: cfg.QueueCapacity,
		Cache:         cache,
		Logger:        logger,
	}
	if cfg.DatabaseURL != "" {
		pool, poolErr := db.NewPool(ctx, cfg.DatabaseURL)
		if poolErr != nil {
			logger.Fatal("connect database", zap.Error(poolErr))
		}
		defer pool.Close()
		dsCfg.Pool = pool
	}
	ds := dataservice.New(dsCfg)
	go ds.Run(ctx)

	rt, err := router.New(cfg.Symbols, cfg.EngineCount, ds)
	if err != nil {
		logger.Fatal("build router", zap.Error(err))
	}
	go rt.Run(ctx)

	pool := traders.NewTraderPool(ids.NewCounter(), buildBots(cfg.Sim)...)

	var routed, rejected, cancelMisses uint64
	for round := 0; round < cfg.Sim.Rounds; round++ {
		msgs, err := pool.Round(cfg.Sim.OrdersPerBot)
		if err != nil {
			logger.Fatal("order id allocation failed", zap.Error(err))
		}
		for _, msg := range msgs {
			switch err := rt.RouteMessage(msg); {
			case err == nil:
				routed++
			case errors.Is(err, engine.ErrOrderNotFound):
				// The order already filled before the bot tried to pull it.
				cancelMisses++
			default:
				rejected++
				logger.Warn("message rejected", zap.String("kind", msg.Kind.String()), zap.Error(err))
			}
		}
	}

	for _, symbol := range cfg.Symbols {
		if price, found, err := rt.RouteGetLastPrice(symbol); err == nil && found {
			logger.Info("last trade", zap.String("symbol", symbol), zap.String("price", price.String()))
		}
	}

	logger.Info("simulation complete",
		zap.Int("rounds", cfg.Sim.Rounds),
		zap.Uint64("routed", routed),
		zap.Uint64("cancel_misses", cancelMisses),
		zap.Uint64("rejected", rejected),
		zap.Uint64("executions", ds.Executions()),
		zap.Uint64("queue_dropped", ds.Queue().Dropped()),
	)
}

func buildBots(cfg config.Sim) []traders.Strategy {
	bots := make([]traders.Strategy, 0, len(cfg.Bots))
	for i, b := range cfg.Bots {
		side := engine.SideBuy
		if b.Side == "S" {
			side = engine.SideSell
		}
		seed := cfg.Seed + int64(i)

		switch b.Kind {
		case "gaussian":
			bots = append(bots, traders.NewGaussianBot(b.Symbol, side, b.Shares, b.Mean, b.Stddev, seed))
		case "market_maker":
			bots = append(bots, traders.NewMarketMakerBot(b.Symbol, b.Shares, b.Center, b.Spread))
		case "spoofer":
			bots = append(bots, traders.NewSpooferBot(b.Symbol, side, b.Shares, b.Price))
		case "trade_messenger":
			bots = append(bots, traders.NewTradeMessenger(b.Symbol, side, b.Shares, b.Mean, b.Stddev, seed))
		}
	}
	return bots
}
