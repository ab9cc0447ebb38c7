package scheduler

import (
	"context"
	"fmt"
	"time"

	"technohunter_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StatsCollector computes the application statistics for the digest.
type StatsCollector interface {
	CollectStats(ctx context.Context) (app.Stats, error)
}

// DigestSender delivers the digest to administrators.
type DigestSender interface {
	SendDigest(ctx context.Context, stats app.Stats) []app.DeliveryResult
}

// DigestScheduler posts the daily statistics digest to administrators.
type DigestScheduler struct {
	cronEngine *cron.Cron
	stats      StatsCollector
	sender     DigestSender
	logger     *logrus.Entry
	cronSpec   string
}

func NewDigestScheduler(
	stats StatsCollector,
	sender DigestSender,
	logger *logrus.Entry,
	cronSpec string, // e.g., "0 10 * * *" (10:00 AM daily), empty disables the job
) *DigestScheduler {
	return &DigestScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		stats:      stats,
		sender:     sender,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

// Start registers the digest job and starts the cron engine.
func (s *DigestScheduler) Start() error {
	if s.cronSpec == "" {
		s.logger.Info("Daily digest disabled, scheduler not started")
		return nil
	}

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily digest.")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.RunDigest(ctx); err != nil {
			s.logger.WithError(err).Error("Error during daily digest")
		}
	})
	if err != nil {
		return fmt.Errorf("could not add daily digest cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Digest scheduler started")
	return nil
}

// RunDigest collects statistics and sends them once.
func (s *DigestScheduler) RunDigest(ctx context.Context) error {
	stats, err := s.stats.CollectStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect stats: %w", err)
	}
	results := s.sender.SendDigest(ctx, stats)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.WithFields(logrus.Fields{
		"total":      stats.Total,
		"recipients": len(results),
		"failed":     failed,
	}).Info("Daily digest processed")
	return nil
}

func (s *DigestScheduler) Stop() {
	s.logger.Info("Stopping digest scheduler...")
	ctx := s.cronEngine.Stop() // waits for running jobs
	<-ctx.Done()
	s.logger.Info("Digest scheduler gracefully stopped.")
}
