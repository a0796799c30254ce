// Package main is the entry point for the local library catalog server.
// It wires together configuration, the catalog store, and the HTTP router.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/aoideee/locallibrary/internal/catalog"
	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/database"
	"github.com/aoideee/locallibrary/internal/logging"
	"github.com/aoideee/locallibrary/internal/metrics"
)

// appVersion is the current version of the server, shown in logs and the healthcheck.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup via command-line flags.
// Every flag takes its default from the environment, so a .env file is enough to
// configure a deployment.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 4000)
	environment string // Runtime environment: development, staging, or production
	store       database.Config
	limiter     struct {
		rps     float64 // Requests per second allowed per client IP
		burst   int     // Bucket size: requests a client may make at once
		enabled bool    // Turn rate limiting off entirely for load tests
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config  serverConfig     // Server configuration loaded from flags
	logger  *slog.Logger     // Structured logger
	catalog *catalog.Catalog // Record lifecycle controllers over the open store
	metrics *metrics.Metrics // Prometheus collectors served on /metrics
}

// main is the application entry point.
// It parses flags, opens the store, wires up dependencies, and starts the HTTP server.
func main() {
	// Pull a .env file into the environment when one exists; real environment
	// variables win over it.
	envErr := godotenv.Load()

	var settings serverConfig

	// Register command-line flags so operators can override defaults at runtime.
	flag.IntVar(&settings.port, "port", getEnvInt("PORT", 4000), "Server port")
	flag.StringVar(&settings.environment, "env", getEnv("ENV", "development"), "Environment(development|staging|production)")

	flag.StringVar(&settings.store.Driver, "store-driver", getEnv("STORE_DRIVER", database.DriverMemory), "Store driver(memory|sqlite|postgres|mongo)")
	flag.StringVar(&settings.store.DSN, "store-dsn", getEnv("STORE_DSN", ""), "Store DSN: SQLite file path or Postgres/MongoDB URI")
	flag.StringVar(&settings.store.MongoDatabase, "mongo-database", getEnv("MONGO_DATABASE", "local_library"), "MongoDB database name")
	flag.IntVar(&settings.store.MaxOpenConns, "db-max-open-conns", getEnvInt("DB_MAX_OPEN_CONNS", 25), "SQL max open connections")
	flag.IntVar(&settings.store.MaxIdleConns, "db-max-idle-conns", getEnvInt("DB_MAX_IDLE_CONNS", 25), "SQL max idle connections")
	flag.DurationVar(&settings.store.MaxIdleTime, "db-max-idle-time", getEnvDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "SQL max connection idle time")

	flag.Float64Var(&settings.limiter.rps, "limiter-rps", getEnvFloat("LIMITER_RPS", 2), "Rate limiter maximum requests per second")
	flag.IntVar(&settings.limiter.burst, "limiter-burst", getEnvInt("LIMITER_BURST", 4), "Rate limiter maximum burst")
	flag.BoolVar(&settings.limiter.enabled, "limiter-enabled", getEnvBool("LIMITER_ENABLED", true), "Enable rate limiter")

	flag.Parse()

	// Colored text in development, JSON in production; level from LOG_LEVEL.
	logger := logging.Setup(settings.environment)
	if envErr != nil {
		logger.Debug("no .env file loaded, using process environment")
	}

	// Open and verify the store.
	store, err := database.Open(context.Background(), settings.store)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	logger.Info("catalog store opened", "driver", store.Driver)

	// Bundle all shared dependencies into a single struct.
	app := newApplication(settings, logger, store.Models)

	err = app.serve()

	// Close the store cleanly once the server has drained.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cerr := store.Close(ctx); cerr != nil {
		logger.Error("closing store", "error", cerr)
	}

	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// newApplication builds the dependency bundle around models.
func newApplication(settings serverConfig, logger *slog.Logger, models data.Models) *applicationDependencies {
	return &applicationDependencies{
		config:  settings,
		logger:  logger,
		catalog: catalog.New(models, catalog.WithLogger(logger)),
		metrics: metrics.New(),
	}
}
