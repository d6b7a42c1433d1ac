package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/i-onlabs/sigmax/pkg/httplib/healthcheck"
	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/i-onlabs/sigmax/pkg/redis"
	app "github.com/i-onlabs/sigmax/services/execution-engine/internal/app/engine"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/app/processor"
	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
	matchpublisher "github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/match-publisher"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/matching"
	orderreader "github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/order-reader"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/snapshot"
	"github.com/i-onlabs/sigmax/services/execution-engine/pkg/config"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger(
		logger.WithLoggingLevel(cfg.LoggerLevel()),
		logger.WithName("execution-engine"),
	)
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	options, err := cfg.ToEngineOptions()
	if err != nil {
		log.Error(err, logger.NewField("action", "load_engine_options"))
		return
	}
	if options.Mode == executionv1.ModeLive {
		log.Error(executionv1.ErrLiveVenueMissing, logger.NewField("action", "create_engine"))
		return
	}

	rclient := redis.NewClient(log, &cfg.Redis)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.NewField("action", "connect_redis"))
		if !rclient.Reconnect(ctx) {
			return
		}
	}

	// Initialize components
	matcher := matching.NewEngine(log,
		matching.WithClock(options.Clock),
		matching.WithIDSeed(options.LatencySeed),
	)
	for _, symbol := range cfg.Symbols {
		if err := matcher.RegisterSymbol(symbol, cfg.TickSize); err != nil {
			log.Error(err, logger.NewField("action", "register_symbol"))
			return
		}
	}

	engine, err := app.NewEngineWithOptions(matcher, log, options)
	if err != nil {
		log.Error(err, logger.NewField("action", "create_engine"))
		return
	}

	oReader := orderreader.NewReader(cfg.KafkaConfig, log)
	publisher := matchpublisher.NewPublisher(cfg.MatchPublisherConfig, log)
	snapshotStore := snapshot.NewSnapshotStore(rclient, cfg.Redis.DefaultTTL, cfg.SnapshotConfig.Channel, log)

	procOptions := processor.DefaultProcessorOptions()
	procOptions.QueueSize = cfg.WorkerQueueSize
	procOptions.SnapshotInterval = cfg.SnapshotConfig.Interval
	proc := processor.NewProcessorWithOptions(engine, oReader, publisher, snapshotStore, log, cfg.Symbols, procOptions)

	// Start the processor
	if err := proc.Start(ctx); err != nil {
		log.Error(err, logger.NewField("action", "start_processor"))
		return
	}

	health := healthcheck.New(map[string]healthcheck.Checker{
		"engine": engine.Ready,
		"redis":  rclient.Ping,
	})
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(engine.GetPerformanceStats())
	})
	server := &http.Server{
		Addr:              cfg.HealthAddr,
		Handler:           health.Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, logger.NewField("action", "serve_health"))
		}
	}()

	log.Info("Execution engine started successfully",
		logger.NewField("symbols", cfg.Symbols),
		logger.NewField("mode", options.Mode),
		logger.NewField("latencyPreset", options.LatencyPreset.Name),
		logger.NewField("healthAddr", cfg.HealthAddr),
	)

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.NewField("signal", sig.String()))

	// Cancel the main context to signal shutdown
	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "stop_health_server"))
	}
	if err := proc.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "stop_processor"))
	}
	if err := engine.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "shutdown_engine"))
	}
	if err := publisher.Close(); err != nil {
		log.Error(err, logger.NewField("action", "close_publisher"))
	}
	if err := rclient.Disconnect(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "disconnect_redis"))
	}

	stats := engine.GetPerformanceStats()
	log.Info("Execution engine shutdown complete",
		logger.NewField("totalOrders", stats.TotalOrders),
		logger.NewField("fillRate", stats.FillRate),
		logger.NewField("avgLatencyNs", stats.Latency.AvgNs),
	)
	_ = log.Sync()
}
