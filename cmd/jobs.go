package cmd

import (
	"fmt"

	"ordered-sync/core/config"
	"ordered-sync/core/database"
	"ordered-sync/core/logger"
	"ordered-sync/core/reconcile"
	"ordered-sync/core/storage"
	"ordered-sync/feature/countries"
	"ordered-sync/feature/objects"
	"ordered-sync/feature/tables"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setup loads the configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

func tablesJob(cfg *config.Config, db *gorm.DB) reconcile.Job {
	return reconcile.NewJob[tables.Row, string](tables.NewAdapter(db, cfg.Tables))
}

func countriesJob(cfg *config.Config, db *gorm.DB) reconcile.Job {
	return reconcile.NewJob[countries.Country, string](countries.NewAdapter(db, nil, cfg.Countries))
}

func objectsJob(cfg *config.Config, client storage.Client) reconcile.Job {
	return reconcile.NewJob[objects.Object, string](objects.NewAdapter(client, cfg.Objects))
}

// registerJobs adds every job whose backing store is reachable. A missing
// database or storage only disables the jobs that need it.
func registerJobs(runner *reconcile.Runner, cfg *config.Config, l *zap.Logger) {
	if db, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Database unavailable, table and country jobs disabled", zap.Error(err))
	} else {
		l.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		runner.Register(tablesJob(cfg, db))
		runner.Register(countriesJob(cfg, db))
	}

	if client, err := storage.NewClient(cfg.Storage); err != nil {
		l.Warn("Storage unavailable, object job disabled", zap.Error(err))
	} else {
		runner.Register(objectsJob(cfg, client))
	}
}
