package toxicity_test

import (
	"context"
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/producers/toxicity"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProducer(t *testing.T) *toxicity.Producer {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	p, err := toxicity.NewProducer(logger)
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

	t.Run("Profanity Counts Once Per Category", func(t *testing.T) {
		d := doc("this fucking stock is a fucking disaster")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.Equal(t, signal.Toxicity, sig.Name)
		assert.InDelta(t, 0.6, sig.Score, 1e-9)
		require.Len(t, sig.Evidence, 1)
		assert.Equal(t, toxicity.CategorySevereProfanity, sig.Evidence[0].Category)
		assert.Equal(t, "fucking", sig.Evidence[0].Excerpt)
	})

	t.Run("Each Category Adds Its Base Score", func(t *testing.T) {
		d := doc("you idiot, your analysis is laughable")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		// 0.5 personal attack + 0.4 mockery
		assert.InDelta(t, 0.9, sig.Score, 1e-9)

		cats := categories(sig)
		assert.Equal(t, 1, cats[toxicity.CategoryPersonalAttack])
		assert.Equal(t, 1, cats[toxicity.CategoryMockery])
	})

	t.Run("Score Clamps At One", func(t *testing.T) {
		d := doc("you idiot i will kill you, kill yourself you pathetic fucking loser")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.Equal(t, 1.0, sig.Score)
		assert.Len(t, sig.Evidence, 5)
	})

	t.Run("Negated Accusation Records Zero Score Evidence", func(t *testing.T) {
		d := doc("zerodha is not a fraud")
		d.Annotations = content.Annotations{
			Available:    true,
			Entities:     []content.Entity{{Text: "zerodha", Label: content.EntityOrg, Start: 0, End: 7}},
			NegatedSpans: []content.Span{{Start: 15, End: 22}},
		}

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.Equal(t, 0.0, sig.Score)
		require.Len(t, sig.Evidence, 1)
		ev := sig.Evidence[0]
		assert.Equal(t, toxicity.CategoryDefamation, ev.Category)
		assert.Equal(t, "zerodha", ev.Pattern)
		assert.Equal(t, "fraud", ev.Excerpt)
		assert.Equal(t, 0.0, ev.Score)
		assert.True(t, ev.Negated())
	})

	t.Run("Scanning Continues Past A Negated Hit", func(t *testing.T) {
		d := doc("ramu is not a thief but he is a crook")
		d.Annotations = content.Annotations{
			Available:    true,
			Entities:     []content.Entity{{Text: "ramu", Label: content.EntityPerson, Start: 0, End: 4}},
			NegatedSpans: []content.Span{{Start: 12, End: 19}},
		}

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.InDelta(t, 0.7, sig.Score, 1e-9)
		require.Len(t, sig.Evidence, 2)
		assert.Equal(t, "thief", sig.Evidence[0].Excerpt)
		assert.Equal(t, 0.0, sig.Evidence[0].Score)
		assert.True(t, sig.Evidence[0].Negated())
		assert.Equal(t, "crook", sig.Evidence[1].Excerpt)
		assert.InDelta(t, 0.7, sig.Evidence[1].Score, 1e-9)
	})

	t.Run("Defamation Needs A Named Subject", func(t *testing.T) {
		d := doc("this fraud will not last long")
		d.Annotations = content.Annotations{Available: true}

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.Equal(t, 0.0, sig.Score)
		assert.Empty(t, sig.Evidence)
	})

	t.Run("Spam Counts Only With Two Indicators", func(t *testing.T) {
		single, err := p.Produce(ctx, doc("click here to read my full analysis"))
		require.NoError(t, err)
		assert.Equal(t, 0.0, single.Score)
		assert.Empty(t, single.Evidence)

		double, err := p.Produce(ctx, doc("click here and use promo code save20"))
		require.NoError(t, err)
		assert.InDelta(t, 0.3, double.Score, 1e-9)
		require.Len(t, double.Evidence, 1)
		assert.Equal(t, toxicity.CategorySpam, double.Evidence[0].Category)
		assert.Equal(t, "click here, promo code", double.Evidence[0].Pattern)
		assert.Equal(t, "click here", double.Evidence[0].Excerpt)
	})

	t.Run("Hate Pattern Scores Once", func(t *testing.T) {
		d := doc("go back to your country and stay there")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.InDelta(t, 0.6, sig.Score, 1e-9)
		require.Len(t, sig.Evidence, 1)
		assert.Equal(t, toxicity.CategoryHateSpeech, sig.Evidence[0].Category)
		assert.Equal(t, "go back to your country", sig.Evidence[0].Excerpt)
	})

	t.Run("Doxxing Scores Highest Tier", func(t *testing.T) {
		d := doc("his phone number is 9876543210, call him and complain")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.InDelta(t, 0.7, sig.Score, 1e-9)
		assert.Equal(t, 1, categories(sig)[toxicity.CategoryDoxxing])
	})

	t.Run("Word Boundaries Stop Substring Hits", func(t *testing.T) {
		d := doc("closers win deals in every market")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.Equal(t, 0.0, sig.Score)
		assert.Empty(t, sig.Evidence)
	})

	t.Run("Clean Analysis Scores Zero", func(t *testing.T) {
		d := doc("infosys revenue grew twelve percent and management guidance points to margin expansion next quarter.")

		sig, err := p.Produce(ctx, d)

		require.NoError(t, err)
		assert.Equal(t, 0.0, sig.Score)
		assert.Empty(t, sig.Evidence)
	})

	t.Run("Deterministic Across Runs", func(t *testing.T) {
		d := doc("you idiot i will kill you, kill yourself you pathetic fucking loser")

		first, err := p.Produce(ctx, d)
		require.NoError(t, err)
		second, err := p.Produce(ctx, d)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
