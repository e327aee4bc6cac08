package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"startpage/internal/config"
	"startpage/internal/infra/extractor"
	"startpage/internal/infra/feedfetch"
	"startpage/internal/infra/httpclient"
	"startpage/internal/infra/market"
	"startpage/internal/infra/sysinfo"
	"startpage/internal/infra/weatherapi"
	"startpage/internal/observability/logging"
	"startpage/internal/observability/tracing"

	articleUC "startpage/internal/usecase/article"
	feedUC "startpage/internal/usecase/feed"
	stocksUC "startpage/internal/usecase/stocks"
	"startpage/internal/usecase/telemetry"
	weatherUC "startpage/internal/usecase/weather"

	hhttp "startpage/internal/handler/http"
	harticle "startpage/internal/handler/http/article"
	hnews "startpage/internal/handler/http/news"
	"startpage/internal/handler/http/requestid"
	hstats "startpage/internal/handler/http/stats"
	hstocks "startpage/internal/handler/http/stocks"
	hweather "startpage/internal/handler/http/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	handler := setupServer(cfg, logger)
	runServer(cfg, logger, handler)
}

// setupServer wires upstream clients, services and routes into one
// handler.
func setupServer(cfg config.Config, logger *slog.Logger) http.Handler {
	client := httpclient.New(cfg.UpstreamTimeout)

	telemetrySvc := telemetry.NewCollector(sysinfo.NewReader(), logger)
	feedSvc := feedUC.NewService(feedfetch.NewFetcher(client), logger)
	articleSvc := articleUC.NewService(extractor.NewReadabilityExtractor(client), logger)
	stocksSvc := stocksUC.NewService(market.NewClient(client), cfg.QuoteWorkers, cfg.QuoteTimeout, logger)
	weatherSvc := weatherUC.NewService(weatherapi.NewClient(client))

	mux := http.NewServeMux()
	hstats.Register(mux, telemetrySvc, logger)
	hnews.Register(mux, feedSvc, cfg.FeedURL, logger)
	harticle.Register(mux, articleSvc, logger)
	hstocks.Register(mux, stocksSvc, logger)
	hweather.Register(mux, weatherSvc, logger)

	mux.Handle("GET /healthz", &hhttp.HealthHandler{Version: version(), Logger: logger})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /", hhttp.StaticHandler(cfg.StaticDir))

	// Outermost first: request id, tracing, logging, panic recovery,
	// per-request deadline.
	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.Timeout(cfg.RequestTimeout),
	)
}

// runServer starts the HTTP server and blocks until shutdown.
func runServer(cfg config.Config, logger *slog.Logger, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr()),
			slog.String("feed_url", cfg.FeedURL),
			slog.String("version", version()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func version() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
