package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshly-yours/marketplace/internal/market/core/ports"
	"github.com/freshly-yours/marketplace/internal/market/core/service"
	"github.com/freshly-yours/marketplace/internal/market/eventlog"
	eventsqlite "github.com/freshly-yours/marketplace/internal/market/eventlog/sqlite"
	"github.com/freshly-yours/marketplace/internal/market/infra/adapters/memory"
	"github.com/freshly-yours/marketplace/internal/market/infra/adapters/mongodb"
	"github.com/freshly-yours/marketplace/internal/market/infra/httpx"
	"github.com/freshly-yours/marketplace/internal/market/infra/token"
	"github.com/freshly-yours/marketplace/internal/notify"
	"github.com/freshly-yours/marketplace/internal/pkg/telemetry"
)

func main() {
	ctx := context.Background()

	telemetry.InitLogger()

	shutdown, err := telemetry.SetupTracer(ctx, "marketd")
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	addr := getEnv("MARKET_HTTP_ADDR", ":8080")
	mongoURI := os.Getenv("MONGO_URI")

	secret := os.Getenv("AUTH_SECRET_KEY")
	if secret == "" {
		secret = "development-key"
		slog.Warn("AUTH_SECRET_KEY not set, using a development key")
	}

	var (
		ledger    ports.OrderLedger
		directory ports.ActorDirectory
		catalog   ports.ProductCatalog
	)
	if mongoURI != "" {
		db, disconnect, err := mongodb.Connect(ctx, mongoURI, getEnv("MONGO_DATABASE", "freshmarket"))
		if err != nil {
			log.Fatalf("failed to connect to mongodb: %v", err)
		}
		defer func() { _ = disconnect(context.Background()) }()

		dir, err := mongodb.NewActorDirectory(ctx, db)
		if err != nil {
			log.Fatalf("failed to prepare actor directory: %v", err)
		}
		ledger = mongodb.NewOrderLedger(db)
		directory = dir
		catalog = mongodb.NewProductCatalog(db)
		slog.Info("using mongodb stores", "database", getEnv("MONGO_DATABASE", "freshmarket"))
	} else {
		ledger = memory.NewOrderLedger()
		directory = memory.NewActorDirectory()
		catalog = memory.NewProductCatalog()
		slog.Warn("MONGO_URI not set, using in-memory stores (nothing survives a restart)")
	}

	var trail eventlog.Repository
	if path := getEnv("EVENTLOG_PATH", "market-events.db"); path != "off" {
		repo, err := eventsqlite.Open(path)
		if err != nil {
			log.Fatalf("failed to open event trail: %v", err)
		}
		defer func() { _ = repo.Close() }()
		trail = repo
	}

	hub := notify.NewHub()

	// With a Redis address configured, events fan out through Pub/Sub so
	// sessions on other instances receive them too. Without one, the local
	// hub delivers directly — correct for a single instance.
	var notifier ports.Notifier = hub
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		bridge, err := notify.NewRedisBridge(ctx, redisAddr, getEnv("REDIS_CHANNEL", "market:events"), hub)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer func() { _ = bridge.Close() }()
		notifier = bridge

		bridgeCtx, cancelBridge := context.WithCancel(ctx)
		defer cancelBridge()
		go func() {
			if err := bridge.Run(bridgeCtx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("fan-out bridge stopped", "error", err)
			}
		}()
		slog.Info("redis fan-out bridge enabled", "addr", redisAddr)
	}

	tokens := token.NewJWTManager(secret)
	authService := service.NewAuthService(directory, tokens)
	catalogService := service.NewCatalogService(catalog, directory)
	orderService := service.NewOrderService(
		ledger,
		directory,
		service.NewFirstAvailablePicker(directory),
		notifier,
		trail,
	)

	handler := httpx.NewHandler(authService, catalogService, orderService, hub)
	router := httpx.NewRouter(handler, authService)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("marketd listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		slog.Info("received shutdown signal, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown", "error", err)
		}
	case err := <-serverErrChan:
		log.Fatalf("http server failed: %v", err)
	}

	slog.Info("marketd stopped")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
