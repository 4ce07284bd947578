// README: Entry point; loads config, wires the advisor, stores and predictor backend, serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agriadvisor/internal/ai"
	"agriadvisor/internal/config"
	httptransport "agriadvisor/internal/http"
	"agriadvisor/internal/infra"
	"agriadvisor/internal/modules/history"
	"agriadvisor/internal/modules/predictor"
	"agriadvisor/internal/service"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := infra.NewLogger(cfg.Env, cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("advisor-api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	engine, err := service.LoadEngine()
	if err != nil {
		return err
	}

	var store *history.Store
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer dbPool.Close()
		store = history.NewStore(dbPool)
	} else {
		logger.Info("no db.dsn configured; consultation history disabled")
	}
	hist := history.NewService(store)

	pred, closePred, err := newPredictor(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePred()

	advisor := service.NewAdvisor(engine, pred, hist, cfg.Predictor.Timeout, logger)
	if !advisor.Ready() {
		logger.Warn("no predictor configured; /predict will answer 503")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httptransport.NewRouter(advisor, hist, httptransport.RouterConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
		PerMinute:    cfg.RateLimit.PerMinute,
		Burst:        cfg.RateLimit.Burst,
	}, logger)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("predictor", cfg.Predictor.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newPredictor builds the configured backend, wrapped in the Redis cache when
// redis.addr is set. The returned func releases backend resources.
func newPredictor(ctx context.Context, cfg config.Config, logger *zap.Logger) (predictor.Predictor, func(), error) {
	noop := func() {}
	var (
		pred    predictor.Predictor
		closeFn = noop
	)
	switch cfg.Predictor.Backend {
	case config.BackendHTTP:
		pred = predictor.NewHTTPPredictor(cfg.Predictor.URL, cfg.Predictor.Timeout)
	case config.BackendGemini:
		client, err := ai.NewGeminiClient(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
		if err != nil {
			return nil, noop, err
		}
		pred = ai.NewGeminiPredictor(client, nil)
		closeFn = client.Close
	case config.BackendNone:
		return nil, noop, nil
	}

	if cfg.Redis.Addr == "" || cfg.Predictor.CacheTTL <= 0 {
		return pred, closeFn, nil
	}
	rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Warn("prediction cache disabled", zap.Error(err))
		return pred, closeFn, nil
	}
	cached := predictor.NewCachedPredictor(pred, rdb, cfg.Predictor.CacheTTL, logger)
	return cached, func() {
		_ = rdb.Close()
		closeFn()
	}, nil
}
