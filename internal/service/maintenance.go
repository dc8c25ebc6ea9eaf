package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type MaintenanceConfig struct {
	SessionIdleTTL  time.Duration
	SweepSchedule   string
	RefreshSchedule string
}

// MaintenanceService periodically drops idle chat sessions and refreshes the map catalog.
type MaintenanceService struct {
	sessions SessionSweeper
	catalog  RegionCatalog
	cfg      MaintenanceConfig
	logger   *zap.Logger
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(
	sessions SessionSweeper,
	catalog RegionCatalog,
	cfg MaintenanceConfig,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		sessions: sessions,
		catalog:  catalog,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start runs the scheduled jobs until ctx is done.
func (s *MaintenanceService) Start(ctx context.Context) error {
	s.logger.Info("maintenance service started")

	c := cron.New(cron.WithLocation(time.UTC))

	if s.cfg.SweepSchedule != "" {
		if _, err := c.AddFunc(s.cfg.SweepSchedule, s.SweepSessions); err != nil {
			return fmt.Errorf("add sweep job: %w", err)
		}
	}

	if s.cfg.RefreshSchedule != "" {
		_, err := c.AddFunc(s.cfg.RefreshSchedule, func() {
			s.RefreshCatalog(ctx)
		})
		if err != nil {
			return fmt.Errorf("add refresh job: %w", err)
		}
	}

	c.Start()
	s.logger.Info("cron scheduler started", zap.Int("jobs", len(c.Entries())))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("maintenance service stopped")

	return nil
}

// SweepSessions removes chat sessions idle for longer than the configured TTL.
func (s *MaintenanceService) SweepSessions() {
	if s.cfg.SessionIdleTTL <= 0 {
		return
	}

	removed := s.sessions.Sweep(s.cfg.SessionIdleTTL)
	if removed > 0 {
		s.logger.Info("idle sessions removed", zap.Int("count", removed))
	}
}

// RefreshCatalog reloads the map regions; the previous catalog stays on failure.
func (s *MaintenanceService) RefreshCatalog(ctx context.Context) {
	if err := s.catalog.Refresh(ctx); err != nil {
		s.logger.Warn("failed to refresh map catalog", zap.Error(err))
	}
}
