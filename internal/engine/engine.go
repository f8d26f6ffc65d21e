package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/admindash/internal/cache"
	"github.com/jon4hz/admindash/internal/config"
	"github.com/jon4hz/admindash/internal/database"
	"github.com/jon4hz/admindash/internal/scheduler"
	"github.com/jonboulle/clockwork"
)

// CacheStatser exposes the statistics of a cache for the maintenance report.
type CacheStatser interface {
	CacheStats() *cache.Stats
}

// Engine runs the background maintenance of the preference database.
type Engine struct {
	cfg       *config.Config
	db        database.DB
	caches    []CacheStatser
	scheduler *scheduler.Scheduler
}

// New creates a new Engine instance. A nil clock uses the real clock.
func New(cfg *config.Config, db database.DB, clock clockwork.Clock, caches ...CacheStatser) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	sched, err := scheduler.New(clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	e := &Engine{
		cfg:       cfg,
		db:        db,
		caches:    caches,
		scheduler: sched,
	}

	if err := e.setupJobs(); err != nil {
		_ = sched.Stop()
		return nil, err
	}
	return e, nil
}

// GetScheduler returns the scheduler of the engine.
func (e *Engine) GetScheduler() *scheduler.Scheduler {
	return e.scheduler
}

// Run starts the scheduler and blocks until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	e.scheduler.Start()

	<-ctx.Done()
	return nil
}

// Close stops the engine and cleans up resources.
func (e *Engine) Close() error {
	return e.scheduler.Stop()
}

func (e *Engine) setupJobs() error {
	if err := e.scheduler.AddCronJob(
		maintenanceJobID,
		"Database Maintenance",
		"Optimizes the preference database and reports cache statistics",
		e.cfg.MaintenanceSchedule,
		e.runMaintenance,
	); err != nil {
		return fmt.Errorf("failed to add maintenance job: %w", err)
	}

	log.Info("Scheduled jobs configured successfully")
	return nil
}
