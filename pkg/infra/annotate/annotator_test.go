package annotate_test

import (
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/infra/annotate"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnnotator(t *testing.T) annotate.Annotator {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	a := annotate.NewAnnotator(logger)
	require.NoError(t, a.Warmup())
	return a
}

func TestAnnotate(t *testing.T) {
	a := newAnnotator(t)

	t.Run("Splits Sentences With Offsets", func(t *testing.T) {
		text := "hdfc bank reported strong earnings. margins expanded again."
		ann := a.Annotate(text)

		require.Len(t, ann.Sentences, 2)
		assert.Equal(t, "hdfc bank reported strong earnings.", ann.Sentences[0].Text)
		assert.Equal(t, 0, ann.Sentences[0].Start)
		assert.Equal(t, text[ann.Sentences[1].Start:ann.Sentences[1].End], ann.Sentences[1].Text)
	})

	t.Run("Decimal Point Is Not A Boundary", func(t *testing.T) {
		ann := a.Annotate("the stock trades at 1.5 times book value today.")
		assert.Len(t, ann.Sentences, 1)
	})

	t.Run("Tokens Strip Edge Punctuation", func(t *testing.T) {
		ann := a.Annotate("buy now, profit later!")
		var words []string
		for _, tok := range ann.Tokens {
			words = append(words, tok.Text)
		}
		assert.Equal(t, []string{"buy", "now", "profit", "later"}, words)
	})

	t.Run("Finds Money Entities", func(t *testing.T) {
		ann := a.Annotate("deposit $500 today and receive 2 lakhs next month.")
		var money []string
		for _, ent := range ann.Entities {
			if ent.Label == content.EntityMoney {
				money = append(money, ent.Text)
			}
		}
		require.Len(t, money, 2)
		assert.Contains(t, money, "$500")
		assert.Contains(t, money, "2 lakhs")
	})

	t.Run("Finds Org And Ticker Entities", func(t *testing.T) {
		ann := a.Annotate("zerodha and $nvda both had a strong quarter at acme capital.")
		var orgs, tickers []string
		for _, ent := range ann.Entities {
			switch ent.Label {
			case content.EntityOrg:
				orgs = append(orgs, ent.Text)
			case content.EntityTicker:
				tickers = append(tickers, ent.Text)
			}
		}
		assert.Contains(t, orgs, "zerodha")
		assert.Contains(t, orgs, "acme capital")
		assert.Contains(t, tickers, "$nvda")
	})

	t.Run("Detects Negated Scope", func(t *testing.T) {
		text := "this is not a scam at all."
		ann := a.Annotate(text)

		idx := indexOf(text, "scam")
		require.GreaterOrEqual(t, idx, 0)
		assert.True(t, ann.InNegatedScope(idx, idx+len("scam")))
	})

	t.Run("Negation Does Not Cross Clause Boundary", func(t *testing.T) {
		text := "i am not sure about this, guaranteed returns sound great."
		ann := a.Annotate(text)

		idx := indexOf(text, "guaranteed")
		require.GreaterOrEqual(t, idx, 0)
		assert.False(t, ann.InNegatedScope(idx, idx+len("guaranteed")))
	})

	t.Run("Warning Flag Covers Whole Document", func(t *testing.T) {
		text := "beware of messages claiming guaranteed returns. they are traps."
		ann := a.Annotate(text)

		idx := indexOf(text, "guaranteed returns")
		flags := ann.FlagsAt(idx, idx+len("guaranteed returns"))
		assert.Contains(t, flags, signal.FlagWarning)

		idx = indexOf(text, "traps")
		flags = ann.FlagsAt(idx, idx+len("traps"))
		assert.Contains(t, flags, signal.FlagWarning)
	})

	t.Run("Question Flag Scopes Its Sentence Only", func(t *testing.T) {
		text := "is this fund any good? it doubled my money last year."
		ann := a.Annotate(text)

		idx := indexOf(text, "fund")
		assert.Contains(t, ann.FlagsAt(idx, idx+len("fund")), signal.FlagQuestion)

		idx = indexOf(text, "doubled")
		assert.NotContains(t, ann.FlagsAt(idx, idx+len("doubled")), signal.FlagQuestion)
	})

	t.Run("Opinion Marker Flag", func(t *testing.T) {
		text := "i think this valuation is stretched."
		ann := a.Annotate(text)
		idx := indexOf(text, "valuation")
		assert.Contains(t, ann.FlagsAt(idx, idx+len("valuation")), signal.FlagOpinionMarker)
	})

	t.Run("Past Tense Flag", func(t *testing.T) {
		text := "i lost money to a tip group last year."
		ann := a.Annotate(text)
		idx := indexOf(text, "tip group")
		assert.Contains(t, ann.FlagsAt(idx, idx+len("tip group")), signal.FlagPastTense)
	})

	t.Run("Extracts Claim Triples", func(t *testing.T) {
		ann := a.Annotate("revenue grew 20% this quarter.")
		require.NotEmpty(t, ann.Triples)
		assert.Equal(t, "revenue", ann.Triples[0].Subject)
		assert.Equal(t, "grew", ann.Triples[0].Verb)
		assert.False(t, ann.Triples[0].Negated)
	})

	t.Run("Marks Negated Triples", func(t *testing.T) {
		ann := a.Annotate("management did not guarantee dividends.")
		found := false
		for _, tr := range ann.Triples {
			if tr.Verb == "guarantee" {
				found = true
				assert.True(t, tr.Negated)
			}
		}
		assert.True(t, found)
	})

	t.Run("Available After Warmup", func(t *testing.T) {
		assert.True(t, a.Ready())
		ann := a.Annotate("anything")
		assert.True(t, ann.Available)
	})
}

func indexOf(text, sub string) int {
	for i := 0; i+len(sub) <= len(text); i++ {
		if text[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
