package quality

import (
	"strings"
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/quality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *localScorer {
	t.Helper()
	scorer, err := newLocalScorer()
	require.NoError(t, err)
	return scorer
}

func plainDoc(text string) *content.Document {
	return &content.Document{Raw: text, Text: strings.ToLower(text)}
}

func sentenceSpans(full string, parts ...string) []content.Sentence {
	var out []content.Sentence
	idx := 0
	for _, p := range parts {
		start := strings.Index(full[idx:], p) + idx
		out = append(out, content.Sentence{Text: p, Start: start, End: start + len(p)})
		idx = start + len(p)
	}
	return out
}

func TestLocalScorer_Evidence(t *testing.T) {
	scorer := newLocal(t)

	t.Run("Rewards Numbers And Citations", func(t *testing.T) {
		doc := plainDoc("according to the annual report, revenue grew 18% versus 12% last year, from $5,000,000,000 to $5,900,000,000.")

		score, notes := scorer.scoreEvidence(doc)

		assert.Equal(t, 19.0, score)
		assert.Empty(t, notes)
	})

	t.Run("Caps Each Bonus", func(t *testing.T) {
		doc := plainDoc("1 2 3 4 5 6 7")

		score, notes := scorer.scoreEvidence(doc)

		assert.Equal(t, 14.0, score)
		assert.Equal(t, []string{"no source citations"}, notes)
	})

	t.Run("Bare Assertion Scores Low", func(t *testing.T) {
		doc := plainDoc("this stock will definitely go up a lot")

		score, notes := scorer.scoreEvidence(doc)

		assert.Equal(t, 4.0, score)
		assert.Equal(t, []string{"no quantitative data points", "no source citations"}, notes)
	})
}

func TestLocalScorer_Coherence(t *testing.T) {
	scorer := newLocal(t)
	text := "buy tata motors because demand is rising. however, wait for a dip. therefore, stagger entries."

	t.Run("Counts Connectives And Supported Claims", func(t *testing.T) {
		doc := plainDoc(text)
		doc.Annotations = content.Annotations{
			Sentences: sentenceSpans(doc.Text,
				"buy tata motors because demand is rising.",
				"however, wait for a dip.",
				"therefore, stagger entries.",
			),
			Triples:   []content.Triple{{Subject: "demand", Verb: "is", Object: "rising"}},
			Available: true,
		}

		score, notes := scorer.scoreCoherence(doc)

		assert.Equal(t, 16.0, score)
		assert.Empty(t, notes)
	})

	t.Run("Sentence Count Falls Back Without Annotations", func(t *testing.T) {
		doc := plainDoc(text)

		score, notes := scorer.scoreCoherence(doc)

		assert.Equal(t, 14.5, score)
		assert.Empty(t, notes)
	})

	t.Run("Single Sentence Reads As Fragmented", func(t *testing.T) {
		doc := plainDoc("buy gold now")

		score, notes := scorer.scoreCoherence(doc)

		assert.Equal(t, 4.0, score)
		assert.Equal(t, []string{"no discourse connectives linking claims", "single-sentence submission"}, notes)
	})
}

func TestLocalScorer_RiskAwareness(t *testing.T) {
	scorer := newLocal(t)

	t.Run("Rewards Downside Talk", func(t *testing.T) {
		doc := plainDoc("the main risk is regulatory pressure and volatility. bears argue margins could compress in a recession.")

		score, notes := scorer.scoreRiskAwareness(doc)

		assert.Equal(t, 17.5, score)
		assert.Empty(t, notes)
	})

	t.Run("No Risk Talk Scores Floor", func(t *testing.T) {
		doc := plainDoc("this fund always goes up and everyone wins")

		score, notes := scorer.scoreRiskAwareness(doc)

		assert.Equal(t, 2.0, score)
		assert.Equal(t, []string{"no downside or risk discussion", "no counterargument considered"}, notes)
	})
}

func TestLocalScorer_Clarity(t *testing.T) {
	scorer := newLocal(t)

	t.Run("Rewards Readable Prose", func(t *testing.T) {
		doc := plainDoc("The bank currently trades at eight times forward earnings per share. Deposit growth has remained close to nine percent for three years. Management guided for stable net interest margins through next year.")

		score, notes := scorer.scoreClarity(doc)

		assert.Equal(t, 16.0, score)
		assert.Empty(t, notes)
	})

	t.Run("Penalizes Shouting", func(t *testing.T) {
		doc := plainDoc("BUY THIS STOCK NOW!!! IT WILL EXPLODE!!! EVERYONE IS BUYING!!!")

		score, notes := scorer.scoreClarity(doc)

		assert.Equal(t, 0.0, score)
		assert.Equal(t, []string{
			"sentence length outside readable range",
			"excessive capitalization",
			"excessive punctuation",
		}, notes)
	})
}

func TestLocalScorer_Actionability(t *testing.T) {
	scorer := newLocal(t)

	t.Run("Rewards Position Target And Horizon", func(t *testing.T) {
		doc := plainDoc("buy at 1800 with a price target of 2200 over the next six months")

		score, notes := scorer.scoreActionability(doc)

		assert.Equal(t, 17.0, score)
		assert.Empty(t, notes)
	})

	t.Run("Accepts Year Horizons", func(t *testing.T) {
		doc := plainDoc("accumulate the stock and hold until 2027 for full value")

		score, notes := scorer.scoreActionability(doc)

		assert.Equal(t, 17.0, score)
		assert.Empty(t, notes)
	})

	t.Run("Commentary Without A Call Scores Low", func(t *testing.T) {
		doc := plainDoc("the market looks interesting these days")

		score, notes := scorer.scoreActionability(doc)

		assert.Equal(t, 2.0, score)
		assert.Equal(t, []string{"no explicit position stated", "no time horizon given"}, notes)
	})
}

func TestLocalScorer_Score(t *testing.T) {
	scorer := newLocal(t)

	t.Run("Covers Every Dimension", func(t *testing.T) {
		doc := plainDoc("buy infosys because revenue grew 12% and the stock trades below fair value. the main risk is wage inflation.")

		scores, notes, err := scorer.Score(doc)

		require.NoError(t, err)
		assert.Len(t, scores, len(quality.Dimensions))
		for _, dim := range quality.Dimensions {
			score := scores[dim]
			assert.GreaterOrEqual(t, score, 0.0, string(dim))
			assert.LessOrEqual(t, score, quality.MaxDimensionScore, string(dim))
		}
		assert.NotEmpty(t, notes)
	})

	t.Run("Empty Text Is A Scoring Error", func(t *testing.T) {
		doc := &content.Document{Raw: "   ", Text: "   "}

		_, _, err := scorer.Score(doc)

		require.Error(t, err)
		assert.True(t, domain.IsLocalScoringError(err))
	})
}
