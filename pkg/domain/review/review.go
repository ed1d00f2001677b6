package review

import (
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/infra/database/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusQueued   Status = "queued"
	StatusResolved Status = "resolved"
)

// Review is a manual-review submission. It is the only durable record
// the service keeps about submitted text.
type Review struct {
	ID           uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	Text         string               `json:"text" gorm:"type:text"`
	Reason       string               `json:"reason"`
	ContactEmail string               `json:"contact_email"`
	Decision     string               `json:"decision"`
	RiskScore    float64              `json:"risk_score"`
	IssueTypes   types.IssueTypeArray `json:"issue_types" gorm:"type:text[]"`
	Status       Status               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusQueued
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

func (r *Review) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}
