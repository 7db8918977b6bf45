package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// Exporter writes the inventory to the spreadsheet.
type Exporter interface {
	ExportInventory(ctx context.Context) (int, error)
}

// Snapshotter stores dashboard snapshots.
type Snapshotter interface {
	SnapshotStatistics(ctx context.Context) (*models.StatisticsSnapshot, error)
}

// Alerter sends the low-stock alert.
type Alerter interface {
	SendLowStockAlert(ctx context.Context) (*models.AlertResult, error)
}

// Jobs groups the optional job targets. Nil targets are not scheduled.
type Jobs struct {
	Exporter    Exporter
	Snapshotter Snapshotter
	Alerter     Alerter
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	jobs   Jobs
	cfg    config.ReportingConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, jobs Jobs, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		jobs:   jobs,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Start registers the configured jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if s.jobs.Exporter != nil {
		if _, err := s.cron.AddFunc(s.cfg.ExportSchedule, s.exportInventory); err != nil {
			return fmt.Errorf("schedule inventory export: %w", err)
		}
	}

	if s.jobs.Alerter != nil {
		if _, err := s.cron.AddFunc(s.cfg.AlertSchedule, s.sendLowStockAlert); err != nil {
			return fmt.Errorf("schedule low stock alert: %w", err)
		}
	}

	if s.jobs.Snapshotter != nil {
		if _, err := s.cron.AddFunc(s.cfg.SnapshotSchedule, s.snapshotStatistics); err != nil {
			return fmt.Errorf("schedule statistics snapshot: %w", err)
		}
	}

	s.logger.Info("scheduler jobs registered", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) exportInventory() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	rows, err := s.jobs.Exporter.ExportInventory(ctx)
	if err != nil {
		s.logger.Error("inventory export failed", zap.Error(err))
		return
	}
	s.logger.Info("inventory export done", zap.Int("rows", rows))
}

func (s *Scheduler) sendLowStockAlert() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := s.jobs.Alerter.SendLowStockAlert(ctx)
	if err != nil {
		s.logger.Error("failed to send low stock alert", zap.Error(err))
		return
	}
	s.logger.Info("low stock alert job done", zap.Bool("sent", result.Sent))
}

func (s *Scheduler) snapshotStatistics() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.jobs.Snapshotter.SnapshotStatistics(ctx); err != nil {
		s.logger.Error("statistics snapshot failed", zap.Error(err))
	}
}
