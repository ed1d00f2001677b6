package signal_test

import (
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/stretchr/testify/assert"
)

func TestSignal_Discount(t *testing.T) {
	t.Run("No Flags Means No Discount", func(t *testing.T) {
		sig := signal.Signal{Name: signal.ScamRules, Score: 0.9}

		assert.Equal(t, signal.ContextFlag(""), sig.HighestPriorityFlag())
		assert.Equal(t, 1.0, sig.Discount())
	})

	t.Run("Strongest Flag Wins And Never Stacks", func(t *testing.T) {
		sig := signal.Signal{
			Name:  signal.ScamRules,
			Score: 1.0,
			Evidence: []signal.Evidence{
				{Pattern: "guaranteed returns", Flags: []signal.ContextFlag{signal.FlagDisclaimer}},
				{Pattern: "double your money", Flags: []signal.ContextFlag{signal.FlagWarning, signal.FlagQuestion}},
			},
		}

		assert.Equal(t, signal.FlagWarning, sig.HighestPriorityFlag())
		assert.Equal(t, 0.30, sig.Discount())
	})

	t.Run("Signal Level Flags Count Too", func(t *testing.T) {
		sig := signal.Signal{
			Name:  signal.ScamRules,
			Score: 0.8,
			Flags: []signal.ContextFlag{signal.FlagOpinionMarker},
		}

		assert.Equal(t, signal.FlagOpinionMarker, sig.HighestPriorityFlag())
		assert.Equal(t, 0.80, sig.Discount())
	})

	t.Run("Negated Is Not A Discount Flag", func(t *testing.T) {
		sig := signal.Signal{
			Name:     signal.Toxicity,
			Score:    0.7,
			Evidence: []signal.Evidence{{Pattern: "fraud", Flags: []signal.ContextFlag{signal.FlagNegated}}},
		}

		assert.Equal(t, signal.ContextFlag(""), sig.HighestPriorityFlag())
		assert.Equal(t, 1.0, sig.Discount())
	})

	t.Run("Table Order Matches Severity", func(t *testing.T) {
		assert.Equal(t, 0.30, signal.DiscountFor(signal.FlagWarning))
		assert.Equal(t, 0.60, signal.DiscountFor(signal.FlagDisclaimer))
		assert.Equal(t, 0.70, signal.DiscountFor(signal.FlagPastTense))
		assert.Equal(t, 0.70, signal.DiscountFor(signal.FlagQuestion))
		assert.Equal(t, 0.80, signal.DiscountFor(signal.FlagOpinionMarker))
		assert.Equal(t, 1.0, signal.DiscountFor(signal.FlagNegated))
	})
}

func TestSignal_TopEvidence(t *testing.T) {
	t.Run("Prefers Highest Score Then Earliest Span", func(t *testing.T) {
		sig := signal.Signal{
			Name: signal.Toxicity,
			Evidence: []signal.Evidence{
				{Pattern: "crap", Start: 4, Score: 0.3},
				{Pattern: "fraudster", Start: 20, Score: 0.7},
				{Pattern: "scammer", Start: 35, Score: 0.7},
			},
		}

		top, ok := sig.TopEvidence()

		assert.True(t, ok)
		assert.Equal(t, "fraudster", top.Pattern)
	})

	t.Run("Empty Evidence Reports False", func(t *testing.T) {
		_, ok := signal.Signal{Name: signal.Fuzzy}.TopEvidence()

		assert.False(t, ok)
	})
}

func TestEvidence_Negated(t *testing.T) {
	t.Run("Detects The Negated Flag", func(t *testing.T) {
		ev := signal.Evidence{Flags: []signal.ContextFlag{signal.FlagQuestion, signal.FlagNegated}}

		assert.True(t, ev.Negated())
		assert.False(t, signal.Evidence{Flags: []signal.ContextFlag{signal.FlagQuestion}}.Negated())
	})
}
