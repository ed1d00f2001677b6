package toxicity

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/producers"
	"github.com/sirupsen/logrus"
)

// Evidence categories reported by this producer. The report assembler
// keys suggestion templates off these.
const (
	CategorySevereProfanity = "severe_profanity"
	CategoryMildProfanity   = "mild_profanity"
	CategoryPersonalAttack  = "personal_attack"
	CategoryThreat          = "threat"
	CategoryHarassment      = "harassment"
	CategoryMockery         = "mockery"
	CategoryDoxxing         = "doxxing"
	CategoryDefamation      = "defamation"
	CategoryHateSpeech      = "hate_speech"
	CategorySpam            = "spam"
)

// spamMinIndicators is how many distinct promotional phrases must appear
// before the spam category counts.
const spamMinIndicators = 2

type termCategory struct {
	name     string
	score    float64
	matchers []producers.TermMatcher
}

// Producer sums per-category toxicity hits into one clamped score. Each
// category counts at most once, and a match inside negated scope records
// evidence but contributes nothing.
type Producer struct {
	logger     *logrus.Logger
	categories []termCategory
	defamation []producers.TermMatcher
	hate       []*regexp.Regexp
	spam       []producers.TermMatcher
}

func NewProducer(logger *logrus.Logger) (*Producer, error) {
	p := &Producer{logger: logger}

	for _, spec := range []struct {
		name  string
		score float64
		terms []string
	}{
		{CategorySevereProfanity, severeProfanityScore, severeProfanityTerms},
		{CategoryMildProfanity, mildProfanityScore, mildProfanityTerms},
		{CategoryPersonalAttack, personalAttackScore, personalAttackTerms},
		{CategoryThreat, threatScore, threatTerms},
		{CategoryHarassment, harassmentScore, harassmentTerms},
		{CategoryMockery, mockeryScore, mockeryTerms},
		{CategoryDoxxing, doxxingScore, doxxingTerms},
	} {
		matchers, err := producers.CompileTerms(spec.terms)
		if err != nil {
			return nil, err
		}
		p.categories = append(p.categories, termCategory{
			name:     spec.name,
			score:    spec.score,
			matchers: matchers,
		})
	}

	var err error
	if p.defamation, err = producers.CompileTerms(defamationTerms); err != nil {
		return nil, err
	}
	if p.spam, err = producers.CompileTerms(spamIndicatorTerms); err != nil {
		return nil, err
	}
	for _, expr := range hateSpeechPatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", expr, err)
		}
		p.hate = append(p.hate, re)
	}

	return p, nil
}

func (p *Producer) Name() string {
	return signal.Toxicity
}

func (p *Producer) Produce(_ context.Context, doc *content.Document) (signal.Signal, error) {
	sig := signal.Signal{Name: signal.Toxicity}
	raw := 0.0

	for _, cat := range p.categories {
		raw += p.matchCategory(doc, &sig, cat.name, cat.score, cat.matchers, "")
	}

	raw += p.matchDefamation(doc, &sig)
	raw += p.matchHateSpeech(doc, &sig)
	raw += p.matchSpam(doc, &sig)

	if raw > 1.0 {
		raw = 1.0
	}
	sig.Score = raw
	return sig, nil
}

// matchCategory scans the category's terms in order and counts the first
// match found outside negated scope. Negated matches are recorded as
// zero-score evidence and scanning continues past them. pattern, when
// non-empty, overrides the matched term in the evidence entry.
func (p *Producer) matchCategory(doc *content.Document, sig *signal.Signal, name string, score float64, matchers []producers.TermMatcher, pattern string) float64 {
	for _, m := range matchers {
		start, end, ok := m.FindFirst(doc.Text)
		if !ok {
			continue
		}
		label := pattern
		if label == "" {
			label = m.Term
		}
		if doc.Annotations.Available && doc.Annotations.InNegatedScope(start, end) {
			sig.Evidence = append(sig.Evidence,
				producers.EvidenceAt(doc, name, label, start, end, 0))
			continue
		}
		sig.Evidence = append(sig.Evidence,
			producers.EvidenceAt(doc, name, label, start, end, score))
		return score
	}
	return 0
}

// matchDefamation counts accusation terms only when the text names a
// person, company, or place the accusation could be about.
func (p *Producer) matchDefamation(doc *content.Document, sig *signal.Signal) float64 {
	entity, ok := namedEntity(doc)
	if !ok {
		return 0
	}
	return p.matchCategory(doc, sig, CategoryDefamation, defamationScore, p.defamation, entity)
}

func (p *Producer) matchHateSpeech(doc *content.Document, sig *signal.Signal) float64 {
	for _, re := range p.hate {
		loc := re.FindStringIndex(doc.Text)
		if loc == nil {
			continue
		}
		if doc.Annotations.Available && doc.Annotations.InNegatedScope(loc[0], loc[1]) {
			sig.Evidence = append(sig.Evidence,
				producers.EvidenceAt(doc, CategoryHateSpeech, CategoryHateSpeech, loc[0], loc[1], 0))
			continue
		}
		sig.Evidence = append(sig.Evidence,
			producers.EvidenceAt(doc, CategoryHateSpeech, CategoryHateSpeech, loc[0], loc[1], hateSpeechScore))
		return hateSpeechScore
	}
	return 0
}

// matchSpam counts once when at least two distinct promotional phrases
// appear.
func (p *Producer) matchSpam(doc *content.Document, sig *signal.Signal) float64 {
	var matched []string
	first := -1
	end := -1
	for _, m := range p.spam {
		start, stop, ok := m.FindFirst(doc.Text)
		if !ok {
			continue
		}
		matched = append(matched, m.Term)
		if first < 0 {
			first, end = start, stop
		}
	}
	if len(matched) < spamMinIndicators {
		return 0
	}
	sig.Evidence = append(sig.Evidence,
		producers.EvidenceAt(doc, CategorySpam, strings.Join(matched, ", "), first, end, spamScore))
	return spamScore
}

// namedEntity returns the first person, organization, or place the
// annotator found. Defamation needs a subject to be about.
func namedEntity(doc *content.Document) (string, bool) {
	if !doc.Annotations.Available {
		return "", false
	}
	for _, ent := range doc.Annotations.Entities {
		switch ent.Label {
		case content.EntityPerson, content.EntityOrg, content.EntityGPE:
			return ent.Text, true
		}
	}
	return "", false
}
