// HTTP driver over the engine router: order entry, cancellation, last-price
// queries, and backpressure stats. The matching core itself knows nothing of
// this surface.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pitchcore/exchange-sim/config"
	"github.com/pitchcore/exchange-sim/db"
	"github.com/pitchcore/exchange-sim/internal/dataservice"
	"github.com/pitchcore/exchange-sim/internal/engine"
	"github.com/pitchcore/exchange-sim/internal/ids"
	"github.com/pitchcore/exchange-sim/internal/pitch"
	"github.com/pitchcore/exchange-sim/internal/router"
	"github.com/pitchcore/exchange-sim/pricefeed"
)

type placeOrderRequest struct {
	ID     string `json:"id"` // optional, allocated when empty
	Symbol string `json:"symbol"`
	Side   string `json:"side"` // "B" | "S"
	Shares int64  `json:"shares"`
	Price  string `json:"price"` // decimal string, major units
}

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

	feed := pricefeed.NewRouterFeed(rt)
	go pricefeed.StartPriceUpdater(ctx, feed, cache, cfg.Symbols, time.Second, logger)

	orderIDs := ids.NewCounter()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(3 * time.Second))

	writeProblem := func(w http.ResponseWriter, req *http.Request, code int, title, detail string) {
		reqID := middleware.GetReqID(req.Context())
		w.Header().Set("Content-Type", "application/problem+json")
		w.Header().Set("X-Request-ID", reqID)
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"title":      title,
			"status":     code,
			"detail":     detail,
			"instance":   req.URL.Path,
			"request_id": reqID,
		})
	}

	// POST /orders
	r.Post("/orders", func(w http.ResponseWriter, req *http.Request) {
		var body placeOrderRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeProblem(w, req, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}

		msg, err := toAddMessage(body, orderIDs)
		if err != nil {
			writeProblem(w, req, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		if err := rt.RouteMessage(msg); err != nil {
			status, title := classifyRouteError(err)
			writeProblem(w, req, status, title, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Location", "/orders/"+msg.Symbol+"/"+msg.OrderID)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"order_id": msg.OrderID,
			"symbol":   msg.Symbol,
			"accepted": true,
		})
	})

	// DELETE /orders/{symbol}/{id}?shares=N
	r.Delete("/orders/{symbol}/{id}", func(w http.ResponseWriter, req *http.Request) {
		symbol := chi.URLParam(req, "symbol")
		id := chi.URLParam(req, "id")
		shares, err := strconv.ParseInt(req.URL.Query().Get("shares"), 10, 64)
		if err != nil || shares <= 0 {
			writeProblem(w, req, http.StatusBadRequest, "validation_error", "shares must be a positive integer")
			return
		}

		msg := pitch.NewBuilder(pitch.KindCancel).
			Timestamp(pitch.TimestampNow()).
			OrderID(id).
			Shares(shares).
			Symbol(symbol).
			Build()

		if err := rt.RouteMessage(msg); err != nil {
			status, title := classifyRouteError(err)
			writeProblem(w, req, status, title, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// GET /lastprice/{symbol}
	r.Get("/lastprice/{symbol}", func(w http.ResponseWriter, req *http.Request) {
		symbol := chi.URLParam(req, "symbol")

		price, ok := cache.Get(symbol)
		if !ok {
			var found bool
			var err error
			price, found, err = rt.RouteGetLastPrice(symbol)
			if err != nil {
				writeProblem(w, req, http.StatusNotFound, "unknown_symbol", err.Error())
				return
			}
			if !found {
				writeProblem(w, req, http.StatusNotFound, "no_trade_yet", "no trade recorded for "+symbol)
				return
			}
			cache.Set(symbol, price)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"symbol": symbol,
			"price":  price.String(),
		})
	})

	// GET /stats
	r.Get("/stats", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"shards":        rt.ShardCount(),
			"executions":    ds.Executions(),
			"queue_len":     ds.Queue().Len(),
			"queue_dropped": ds.Queue().Dropped(),
		})
	})

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
}

func toAddMessage(req placeOrderRequest, counter *ids.Counter) (pitch.Message, error) {
	req.Symbol = strings.TrimSpace(req.Symbol)
	req.Side = strings.TrimSpace(req.Side)

	if req.Symbol == "" {
		return pitch.Message{}, errors.New("symbol is required")
	}
	if req.Side != "B" && req.Side != "S" {
		return pitch.Message{}, errors.New(`side must be "B" or "S"`)
	}
	if req.Shares <= 0 {
		return pitch.Message{}, errors.New("shares must be positive")
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return pitch.Message{}, errors.New("price must be a non-negative decimal")
	}

	id := req.ID
	if id == "" {
		if id, err = counter.Next(); err != nil {
			return pitch.Message{}, err
		}
	} else if len(id) != ids.Width {
		return pitch.Message{}, errors.New("id must be 12 characters")
	}

	return pitch.NewBuilder(pitch.KindAdd).
		Timestamp(pitch.TimestampNow()).
		OrderID(id).
		Side(req.Side[0]).
		Shares(req.Shares).
		Symbol(req.Symbol).
		Price(price).
		Display('Y').
		Build(), nil
}

func classifyRouteError(err error) (int, string) {
	switch {
	case errors.Is(err, router.ErrNoOwningEngine), errors.Is(err, engine.ErrUnknownSymbol):
		return http.StatusNotFound, "unknown_symbol"
	case errors.Is(err, engine.ErrOrderNotFound):
		return http.StatusNotFound, "order_not_found"
	case errors.Is(err, engine.ErrUnexpectedMessageType), errors.Is(err, engine.ErrInvalidShares):
		return http.StatusBadRequest, "bad_message"
	default:
		return http.StatusInternalServerError, "engine_error"
	}
}
