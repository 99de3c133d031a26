package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/api"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/config"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/ingest"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/logger"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

// dbLoadTimeout bounds the startup dataset load from PostgreSQL.
const dbLoadTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	store := storage.NewDatasetStore()
	if err := loadDataset(cfg, log, store); err != nil {
		log.Error("Failed to load dataset", logger.Error(err))
		return 1
	}

	return runServer(cfg, log, store)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// loadDataset fills the store from the configured source. A dataset that
// loads with zero rows is allowed; the service reports degraded health and
// every aggregate reads as zero until a replacement is uploaded.
func loadDataset(cfg *config.Config, log logger.Logger, store *storage.DatasetStore) error {
	switch cfg.Service.DatasetSource {
	case config.SourcePostgres:
		return loadFromPostgres(cfg, log, store)
	default:
		return loadFromFile(cfg, log, store)
	}
}

func loadFromFile(cfg *config.Config, log logger.Logger, store *storage.DatasetStore) error {
	res, err := ingest.LoadFile(cfg.Service.DatasetPath)
	if err != nil {
		return err
	}

	store.Replace(&storage.Snapshot{
		Records:  res.Records,
		Source:   cfg.Service.DatasetPath,
		LoadedAt: time.Now(),
	})

	log.Info("Dataset loaded from file",
		logger.String("path", cfg.Service.DatasetPath),
		logger.Int("rows", len(res.Records)),
		logger.Int("rejected", res.Rejected()),
	)
	return nil
}

func loadFromPostgres(cfg *config.Config, log logger.Logger, store *storage.DatasetStore) error {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), dbLoadTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return fmt.Errorf("ping database: %w", pingErr)
	}

	records, err := storage.LoadRecords(ctx, db)
	if err != nil {
		return err
	}

	store.Replace(&storage.Snapshot{
		Records:  records,
		Source:   config.SourcePostgres,
		LoadedAt: time.Now(),
	})

	log.Info("Dataset loaded from PostgreSQL",
		logger.String("host", cfg.Database.Host),
		logger.String("database", cfg.Database.Database),
		logger.Int("rows", len(records)),
	)
	return nil
}

// runServer creates the HTTP server and blocks until shutdown.
func runServer(cfg *config.Config, log logger.Logger, store *storage.DatasetStore) int {
	// done signals background goroutines (rate limiter) on shutdown
	done := make(chan struct{})
	defer close(done)

	server := api.NewServer(cfg, log, store, done)

	log.Info("Analytics service starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("dataset_source", cfg.Service.DatasetSource),
	)

	if err := server.Run(); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Analytics service exited cleanly")
	return 0
}
