package audit

import (
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
)

// Event is one decision record emitted for observability. Events carry
// verdict metadata only, never the submitted text.
type Event struct {
	ID               string              `json:"id"`
	Kind             string              `json:"kind"`
	Decision         moderation.Decision `json:"decision"`
	RiskScore        float64             `json:"risk_score"`
	IsFinanceRelated bool                `json:"is_finance_related"`
	TopSignal        string              `json:"top_signal,omitempty"`
	IssueTypes       []string            `json:"issue_types,omitempty"`
	OverallScore     *float64            `json:"overall_score,omitempty"`
	Grade            string              `json:"grade,omitempty"`
	DeviceClass      string              `json:"device_class,omitempty"`
	LatencyMs        int64               `json:"latency_ms"`
	CreatedAt        time.Time           `json:"created_at"`
}

const (
	KindModeration = "moderation"
	KindAnalysis   = "analysis"
)
