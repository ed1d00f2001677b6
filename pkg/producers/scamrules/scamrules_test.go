package scamrules_test

import (
	"context"
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/producers/scamrules"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProducer(t *testing.T) *scamrules.Producer {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	p, err := scamrules.NewProducer(logger)
	require.NoError(t, err)
	return p
}

func doc(text string) *content.Document {
	return &content.Document{Raw: text, Text: text}
}

func categories(sig signal.Signal) map[string]int {
	m := make(map[string]int)
	for _, ev := range sig.Evidence {
		m[ev.Category]++
	}
	return m
}

func TestProduce(t *testing.T) {
	p := newProducer(t)
	ctx := context.Background()

	t.Run("Scam Blast Clamps To Full Score", func(t *testing.T) {
		d := doc("guaranteed 500% returns, dm me on telegram now!!! act fast.")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.Equal(t, signal.ScamRules, sig.Name)
		assert.Equal(t, 1.0, sig.Score)

		cats := categories(sig)
		assert.Equal(t, 1, cats[scamrules.CategoryUnrealisticGain])
		assert.Equal(t, 1, cats[scamrules.CategoryExternalRedirect])
		assert.Equal(t, 1, cats[scamrules.CategorySolicitation])
	})

	t.Run("Keyword Weights Sum Per Tier", func(t *testing.T) {
		d := doc("guaranteed returns with easy money, act now")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		// 0.8 high + 0.5 medium + 0.3 low, clamped
		assert.InDelta(t, 1.0, sig.Score, 1e-9)
		assert.Len(t, sig.Evidence, 3)
	})

	t.Run("Money Request Scores High Tier", func(t *testing.T) {
		d := doc("pay the registration fee to my upi before joining")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.InDelta(t, 0.8, sig.Score, 1e-9)
		assert.Equal(t, 1, categories(sig)[scamrules.CategoryMoneyRequest])
	})

	t.Run("MLM Pattern Fires Once Per Rule", func(t *testing.T) {
		d := doc("our network marketing platform changed my life")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.InDelta(t, 0.8, sig.Score, 1e-9)
		assert.Equal(t, 1, categories(sig)[scamrules.CategoryMLM])
	})

	t.Run("Evidence Carries Warning Flag From Annotations", func(t *testing.T) {
		text := "beware of anyone promising guaranteed returns on stocks"
		d := doc(text)
		d.Annotations = content.Annotations{
			Available: true,
			FlagSpans: map[signal.ContextFlag][]content.Span{
				signal.FlagWarning: {{Start: 0, End: len(text)}},
			},
		}

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.InDelta(t, 0.8, sig.Score, 1e-9)
		require.NotEmpty(t, sig.Evidence)
		assert.Contains(t, sig.Evidence[0].Flags, signal.FlagWarning)
		assert.Equal(t, signal.FlagWarning, sig.HighestPriorityFlag())
	})

	t.Run("Clean Thesis Text Scores Zero", func(t *testing.T) {
		d := doc("infosys revenue grew 12% yoy and the balance sheet is healthy. i expect margin expansion next quarter.")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.Equal(t, 0.0, sig.Score)
		assert.Empty(t, sig.Evidence)
	})

	t.Run("Deterministic Across Runs", func(t *testing.T) {
		d := doc("join my premium telegram group for sure shot tips, pay joining fee today")

		first, err := p.Produce(ctx, d)
		require.NoError(t, err)
		second, err := p.Produce(ctx, d)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
