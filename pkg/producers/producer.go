package producers

import (
	"context"
	"fmt"
	"regexp"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
)

// Producer computes one independent safety or relevance signal over a
// normalized document. Implementations are side-effect free and safe to
// run concurrently with each other.
//
//go:generate mockery --name=Producer --dir=. --output=./mocks --filename=producer_mock.go --case=underscore --with-expecter
type Producer interface {
	Name() string
	Produce(ctx context.Context, doc *content.Document) (signal.Signal, error)
}

// TermMatcher matches one lexicon term with word boundaries, so "fed"
// does not fire inside "fedex".
type TermMatcher struct {
	Term string
	re   *regexp.Regexp
}

func CompileTerms(terms []string) ([]TermMatcher, error) {
	matchers := make([]TermMatcher, 0, len(terms))
	for _, term := range terms {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", term, err)
		}
		matchers = append(matchers, TermMatcher{Term: term, re: re})
	}
	return matchers, nil
}

func (m TermMatcher) Match(text string) bool {
	return m.re.MatchString(text)
}

// FindFirst returns the first occurrence of the term, as byte offsets.
func (m TermMatcher) FindFirst(text string) (start, end int, ok bool) {
	loc := m.re.FindStringIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// EvidenceAt builds an evidence entry for a matched span, stamping the
// context flags the annotator found over that span.
func EvidenceAt(doc *content.Document, category, pattern string, start, end int, score float64) signal.Evidence {
	ev := signal.Evidence{
		Category: category,
		Pattern:  pattern,
		Excerpt:  doc.Text[start:end],
		Start:    start,
		End:      end,
		Score:    score,
	}
	if doc.Annotations.Available {
		ev.Flags = doc.Annotations.FlagsAt(start, end)
		if doc.Annotations.InNegatedScope(start, end) {
			ev.Flags = append(ev.Flags, signal.FlagNegated)
		}
	}
	return ev
}
