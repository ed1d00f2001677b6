package textnorm_test

import (
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/infra/textnorm"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("Lowercases And Collapses Whitespace", func(t *testing.T) {
		res := textnorm.Normalize("  HDFC Bank   looks\tundervalued  ")
		assert.Equal(t, "hdfc bank looks undervalued", res.Text)
		assert.False(t, res.HadObfuscation)
	})

	t.Run("Decodes Leet Speak", func(t *testing.T) {
		res := textnorm.Normalize("gu4r4nteed pr0fit every m0nth")
		assert.Equal(t, "guaranteed profit every month", res.Text)
		assert.True(t, res.HadObfuscation)
	})

	t.Run("Preserves Money And Percentage Tokens", func(t *testing.T) {
		res := textnorm.Normalize("invest $100 for 15% returns on 1,50,000")
		assert.Equal(t, "invest $100 for 15% returns on 1,50,000", res.Text)
		assert.False(t, res.HadObfuscation)
	})

	t.Run("Extracts URLs", func(t *testing.T) {
		res := textnorm.Normalize("read my thesis at https://example.com/thesis and www.example.org")
		assert.Len(t, res.URLs, 2)
		assert.Equal(t, "read my thesis at [url] and [url]", res.Text)
	})

	t.Run("Extracts Mentions", func(t *testing.T) {
		res := textnorm.Normalize("DM @tipster99 for entry levels")
		assert.Equal(t, []string{"@tipster99"}, res.Mentions)
		assert.Contains(t, res.Text, "[mention]")
	})

	t.Run("Keeps Hashtag Words", func(t *testing.T) {
		res := textnorm.Normalize("#nifty is at all time highs")
		assert.Equal(t, []string{"nifty"}, res.Hashtags)
		assert.Equal(t, "nifty is at all time highs", res.Text)
	})

	t.Run("Folds Fullwidth Unicode", func(t *testing.T) {
		res := textnorm.Normalize("ＧＵＡＲＡＮＴＥＥＤ returns")
		assert.Equal(t, "guaranteed returns", res.Text)
	})

	t.Run("Keeps Sentence Punctuation Through Leet Decode", func(t *testing.T) {
		res := textnorm.Normalize("D0uble y0ur m0ney now!!! Act fast.")
		assert.Equal(t, "double your money now!!! act fast.", res.Text)
		assert.True(t, res.HadObfuscation)
	})

	t.Run("Preserves Cashtags", func(t *testing.T) {
		res := textnorm.Normalize("$NVDA earnings beat estimates")
		assert.Equal(t, "$nvda earnings beat estimates", res.Text)
	})

	t.Run("Deterministic", func(t *testing.T) {
		input := "D0uble y0ur m0ney!! Join @fastcash via https://t.me/x #crypto"
		first := textnorm.Normalize(input)
		second := textnorm.Normalize(input)
		assert.Equal(t, first, second)
	})
}
