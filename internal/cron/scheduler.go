package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"sweeply/internal/config"
	"sweeply/internal/repository"
	"sweeply/internal/service"
)

// Scheduler manages all cron jobs.
type Scheduler struct {
	cron    *cron.Cron
	cfg     *config.Config
	logger  *zap.Logger
	series  *service.SeriesManager
	invoice *service.InvoiceService
	apiLogs *repository.APILogRepository
}

// New creates a new cron scheduler.
func New(cfg *config.Config, series *service.SeriesManager, invoice *service.InvoiceService, apiLogs *repository.APILogRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		cfg:     cfg,
		logger:  logger,
		series:  series,
		invoice: invoice,
		apiLogs: apiLogs,
	}
}

// Start registers and starts all cron jobs.
func (s *Scheduler) Start() {
	s.logger.Info("Starting cron scheduler...")

	// Top up recurring series so instances cover the rolling window - hourly
	s.cron.AddFunc("0 0 * * * *", func() {
		s.logger.Debug("Running: refresh recurring series")
		s.refreshSeries()
	})

	// Retire series that reached their end date or occurrence cap - daily at 01:00
	s.cron.AddFunc("0 0 1 * * *", func() {
		s.logger.Debug("Running: retire ended series")
		s.retireSeries()
	})

	// Flag sent invoices past their due date - daily at 02:00
	s.cron.AddFunc("0 0 2 * * *", func() {
		s.logger.Debug("Running: mark overdue invoices")
		s.markOverdueInvoices()
	})

	// Trim old API request logs - daily at 03:00
	s.cron.AddFunc("0 0 3 * * *", func() {
		s.logger.Debug("Running: prune api logs")
		s.pruneAPILogs()
	})

	s.cron.Start()
	s.logger.Info("Cron scheduler started")
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) refreshSeries() {
	defer s.recoverFromPanic("refreshSeries")

	if err := s.series.RefreshAllSeries(); err != nil {
		s.logger.Error("Series refresh failed", zap.Error(err))
	}
}

func (s *Scheduler) retireSeries() {
	defer s.recoverFromPanic("retireSeries")

	if err := s.series.RetireEndedSeries(); err != nil {
		s.logger.Error("Series retirement failed", zap.Error(err))
	}
}

func (s *Scheduler) markOverdueInvoices() {
	defer s.recoverFromPanic("markOverdueInvoices")

	s.invoice.MarkOverdueInvoices()
}

func (s *Scheduler) pruneAPILogs() {
	defer s.recoverFromPanic("pruneAPILogs")

	retention := s.cfg.Schedule.LogRetentionDays
	if retention <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -retention)
	removed, err := s.apiLogs.PruneOlderThan(cutoff)
	if err != nil {
		s.logger.Error("API log prune failed", zap.Error(err))
		return
	}
	s.logger.Debug("API log prune completed", zap.Int64("removed", removed))
}

func (s *Scheduler) recoverFromPanic(jobName string) {
	if r := recover(); r != nil {
		s.logger.Error("Cron job panicked", zap.String("job", jobName), zap.Any("error", r))
	}
}
