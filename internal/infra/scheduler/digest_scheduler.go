// Package scheduler runs the periodic jobs of the service.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mealsync/backend/internal/application/usecase/plan"
)

const (
	// digestJobTimeout bounds one run of the weekly digest job.
	digestJobTimeout  = 2 * time.Minute
	cleanupJobTimeout = 1 * time.Minute
)

// DigestQueuer queues the digest of every subscribed plan.
type DigestQueuer interface {
	Execute(ctx context.Context) (*plan.QueueWeeklyDigestsOutput, error)
}

// JobCleaner removes sent email jobs past their retention.
type JobCleaner interface {
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}

// DigestScheduler queues weekly digest emails on a cron schedule and,
// when a cleaner is set, prunes sent jobs on a second schedule.
type DigestScheduler struct {
	cron   *cron.Cron
	spec   string
	queuer DigestQueuer

	cleanupSpec   string
	retentionDays int
	cleaner       JobCleaner
}

// NewDigestScheduler creates a scheduler for the given five-field cron expression.
func NewDigestScheduler(spec string, queuer DigestQueuer) *DigestScheduler {
	return &DigestScheduler{
		cron:   cron.New(),
		spec:   spec,
		queuer: queuer,
	}
}

// WithCleanup adds a job deleting sent emails older than retentionDays.
func (s *DigestScheduler) WithCleanup(spec string, retentionDays int, cleaner JobCleaner) *DigestScheduler {
	s.cleanupSpec = spec
	s.retentionDays = retentionDays
	s.cleaner = cleaner
	return s
}

// Start registers the jobs and starts the cron loop.
func (s *DigestScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", s.spec, err)
	}
	if s.cleaner != nil {
		if _, err := s.cron.AddFunc(s.cleanupSpec, s.CleanupOnce); err != nil {
			return fmt.Errorf("invalid cleanup schedule %q: %w", s.cleanupSpec, err)
		}
	}

	s.cron.Start()
	slog.Info("Digest scheduler started", "schedule", s.spec, "cleanup_schedule", s.cleanupSpec)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *DigestScheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("Digest scheduler stopped")
}

// RunOnce queues the digests immediately.
func (s *DigestScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), digestJobTimeout)
	defer cancel()

	output, err := s.queuer.Execute(ctx)
	if err != nil {
		slog.Error("Failed to queue weekly digests", "error", err)
		return
	}

	slog.Info("Weekly digests queued",
		"queued", output.Queued,
		"failed", output.Failed,
	)
}

// CleanupOnce deletes old sent jobs immediately.
func (s *DigestScheduler) CleanupOnce() {
	if s.cleaner == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cleanupJobTimeout)
	defer cancel()

	deleted, err := s.cleaner.DeleteOldSentJobs(ctx, s.retentionDays)
	if err != nil {
		slog.Error("Failed to delete old email jobs", "error", err)
		return
	}

	slog.Info("Old email jobs deleted", "deleted", deleted, "retention_days", s.retentionDays)
}
