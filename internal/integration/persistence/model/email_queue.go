package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table in the database.
type EmailQueueModel struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	PlanID         uuid.UUID    `gorm:"type:uuid;not null;index"`
	TemplateType   string       `gorm:"type:varchar(50);not null"`
	RecipientEmail string       `gorm:"type:varchar(255);not null"`
	Subject        string       `gorm:"type:varchar(500);not null"`
	TemplateData   string       `gorm:"type:text;not null;default:'{}'"`
	Status         string       `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts       int          `gorm:"not null;default:0"`
	MaxAttempts    int          `gorm:"not null;default:3"`
	LastError      string       `gorm:"type:text"`
	ProviderID     string       `gorm:"type:varchar(100)"`
	CreatedAt      time.Time    `gorm:"not null"`
	ScheduledAt    time.Time    `gorm:"not null;index"`
	ProcessedAt    *time.Time
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts an EmailQueueModel to a domain EmailJob entity.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := make(map[string]string)
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &data); err != nil {
			slog.Warn("Failed to unmarshal email template data", "error", err, "id", m.ID)
		}
	}

	var processedAt *time.Time
	if m.ProcessedAt != nil {
		t := m.ProcessedAt.UTC()
		processedAt = &t
	}

	return &entity.EmailJob{
		ID:             m.ID,
		PlanID:         m.PlanID,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		RecipientEmail: m.RecipientEmail,
		Subject:        m.Subject,
		TemplateData:   data,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ProviderID:     m.ProviderID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ProcessedAt:    processedAt,
	}
}

// EmailQueueModelFromEntity creates an EmailQueueModel from a domain EmailJob entity.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	data, err := json.Marshal(job.TemplateData)
	if err != nil || job.TemplateData == nil {
		data = []byte("{}")
	}

	var processedAt *time.Time
	if job.ProcessedAt != nil {
		t := job.ProcessedAt.UTC()
		processedAt = &t
	}

	return &EmailQueueModel{
		ID:             job.ID,
		PlanID:         job.PlanID,
		TemplateType:   string(job.TemplateType),
		RecipientEmail: job.RecipientEmail,
		Subject:        job.Subject,
		TemplateData:   string(data),
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ProviderID:     job.ProviderID,
		CreatedAt:      job.CreatedAt,
		ScheduledAt:    job.ScheduledAt,
		ProcessedAt:    processedAt,
	}
}
