package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/decade006/java-database-capstone/internal/config"
	"github.com/decade006/java-database-capstone/internal/handlers"
	"github.com/decade006/java-database-capstone/internal/logging"
	"github.com/decade006/java-database-capstone/internal/metrics"
	"github.com/decade006/java-database-capstone/internal/middleware"
	"github.com/decade006/java-database-capstone/internal/services"
	"github.com/decade006/java-database-capstone/internal/session"
	"github.com/decade006/java-database-capstone/internal/telemetry"
)

const (
	serviceName         = "hospital-portal"
	memorySweepInterval = 5 * time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, relying on environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	if err := run(cfg, logger); err != nil {
		logger.Error("portal stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, serviceName, cfg.OTLPEndpoint, cfg.OTLPInsecure, logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	// --- Session store ---
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	portalMetrics := metrics.NewPortalMetrics(registry)

	// --- Backend client and handlers ---
	client := services.NewClient(cfg.APIBaseURL,
		services.WithTimeout(cfg.BackendTimeout),
		services.WithLogger(logger),
		services.WithMetrics(portalMetrics),
	)
	h := handlers.NewHandler(client, logger, portalMetrics)

	router := handlers.NewRouter(h, handlers.RouterOptions{
		Store:          store,
		RateLimiter:    middleware.NewRateLimiter(ctx, cfg.LoginRateLimitPerMinute, cfg.LoginRateLimitBurst),
		CORSOrigins:    cfg.CORSAllowedOrigins,
		Gatherer:       registry,
		TrustedProxies: cfg.TrustedProxies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting portal", "port", cfg.Port, "env", cfg.Env, "session_store", cfg.SessionStore, "api_base_url", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down portal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStore builds the configured session store and its cleanup.
func openStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (session.Store, func(), error) {
	cookie := session.CookieOptions{TTL: cfg.SessionTTL, Secure: cfg.SessionCookieSecure || cfg.IsProduction()}
	noop := func() {}

	switch cfg.SessionStore {
	case config.StoreMemory:
		store := session.NewMemoryStore(cookie)
		store.StartSweeper(ctx, memorySweepInterval)
		return store, noop, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("session store: connect to redis: %w", err)
		}
		logger.Info("connected to redis", "addr", cfg.RedisAddr)
		return session.NewRedisStore(rdb, cookie), func() { _ = rdb.Close() }, nil

	case config.StoreMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("session store: connect to mongo: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("session store: ping mongo: %w", err)
		}
		store := session.NewMongoStore(client.Database(cfg.MongoDatabase), cookie)
		if err := store.EnsureIndexes(connectCtx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("session store: %w", err)
		}
		logger.Info("connected to mongo", "database", cfg.MongoDatabase)
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		return store, closeFn, nil

	default:
		store, err := session.NewCookieStore(cfg.SessionSecret, cookie)
		if err != nil {
			return nil, nil, fmt.Errorf("session store: %w", err)
		}
		return store, noop, nil
	}
}
