package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/store"
)

// HousekeepingService periodically prunes audit logs older than Retention.
// Invites are never deleted: their expiry is evaluated on read.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Now       func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. If interval is 0 or
// negative, it defaults to 1 hour. A zero retention disables pruning.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		slog.Duration("interval", s.Interval),
		slog.Duration("retention", s.Retention),
	)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one pruning pass and reports how many entries were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	if s.Retention <= 0 {
		return 0
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	cutoff := now.UTC().Add(-s.Retention)

	n, err := s.Store.AuditLogs().DeleteAuditLogsBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to prune audit logs", slog.Any("error", err))
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed",
		slog.Int64("audit_logs_deleted", n),
		slog.Time("cutoff", cutoff),
	)
	return n
}
