package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/domain/entity"
	"github.com/mealsync/backend/internal/integration/persistence/model"
)

func TestEmailQueueRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewEmailQueueRepository(db)
	planID := uuid.New()

	due := entity.NewEmailJob(planID, entity.TemplatePlanDigest, "cook@example.com", "Your week", map[string]string{"week": "2"})
	due.ScheduledAt = time.Now().UTC().Add(-time.Minute)
	later := entity.NewEmailJob(planID, entity.TemplatePlanDigest, "cook@example.com", "Your week", nil)
	later.ScheduledAt = time.Now().UTC().Add(time.Hour)

	for _, job := range []*entity.EmailJob{due, later} {
		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("pending jobs are due only", func(t *testing.T) {
		jobs, err := repo.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(jobs) != 1 || jobs[0].ID != due.ID {
			t.Fatalf("expected only the due job, got %d jobs", len(jobs))
		}
		if jobs[0].TemplateData["week"] != "2" {
			t.Errorf("expected template data to round trip, got %v", jobs[0].TemplateData)
		}
		if jobs[0].PlanID != planID {
			t.Errorf("expected plan id %s, got %s", planID, jobs[0].PlanID)
		}
	})

	t.Run("update marks sent", func(t *testing.T) {
		due.MarkSent("provider-1")
		if err := repo.Update(ctx, due); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var stored model.EmailQueueModel
		if err := db.First(&stored, "id = ?", due.ID).Error; err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sent := stored.ToEntity()
		if sent.Status != entity.EmailStatusSent || sent.ProviderID != "provider-1" || sent.ProcessedAt == nil {
			t.Errorf("expected sent job with provider id, got %+v", sent)
		}

		pending, err := repo.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("expected no due pending jobs, got %d", len(pending))
		}
	})

	t.Run("failed attempt reschedules", func(t *testing.T) {
		later.MarkFailed(errors.New("timeout"), false)
		if later.Status != entity.EmailStatusPending || later.Attempts != 1 {
			t.Errorf("expected pending after first failure, got %s/%d", later.Status, later.Attempts)
		}
		if err := repo.Update(ctx, later); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("delete old sent jobs", func(t *testing.T) {
		deleted, err := repo.DeleteOldSentJobs(ctx, -1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 1 {
			t.Errorf("expected 1 deleted job, got %d", deleted)
		}
	})
}
