package gate

import (
	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
)

// Gate decides whether a submission is finance content at all, before
// any safety verdict is computed. Pure and deterministic.
type Gate struct {
	flagThreshold float64
	passThreshold float64
}

func New(cfg config.ModerationConfig) *Gate {
	return &Gate{
		flagThreshold: cfg.FinanceFlagThreshold,
		passThreshold: cfg.FinancePassThreshold,
	}
}

// Evaluate derives the finance-relevance verdict from the relevance
// signal alone.
func (g *Gate) Evaluate(rel signal.Signal) moderation.DomainVerdict {
	return moderation.DomainVerdict{
		RelevanceScore:   rel.Score,
		IsFinanceRelated: rel.Score >= g.flagThreshold,
	}
}

// ShortCircuits reports whether the verdict blocks the request before
// any safety signal is consumed.
func (g *Gate) ShortCircuits(v moderation.DomainVerdict) bool {
	return !v.IsFinanceRelated
}

// Escalates reports whether ambiguous relevance forces the final verdict
// up to at least FLAG.
func (g *Gate) Escalates(v moderation.DomainVerdict) bool {
	return v.RelevanceScore < g.passThreshold
}
