package scamrules

import (
	"context"
	"fmt"
	"regexp"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/producers"
	"github.com/sirupsen/logrus"
)

// Evidence categories reported by this producer. The report assembler
// keys suggestion templates off these.
const (
	CategoryScamKeyword      = "scam_keyword"
	CategoryMoneyRequest     = "money_request"
	CategoryUnrealisticGain  = "unrealistic_return"
	CategoryExternalRedirect = "external_redirect"
	CategorySolicitation     = "solicitation"
	CategoryMLM              = "mlm"
)

type keywordSet struct {
	category string
	weight   float64
	matchers []producers.TermMatcher
}

type regexRule struct {
	category string
	weight   float64
	re       *regexp.Regexp
}

// Producer sums severity-weighted keyword and pattern hits into one
// scam-rule score, clamped to 1.0.
type Producer struct {
	logger   *logrus.Logger
	keywords []keywordSet
	patterns []regexRule
}

func NewProducer(logger *logrus.Logger) (*Producer, error) {
	p := &Producer{logger: logger}

	for _, spec := range []struct {
		category string
		weight   float64
		terms    []string
	}{
		{CategoryScamKeyword, highSeverityWeight, highSeverityKeywords},
		{CategoryScamKeyword, mediumSeverityWeight, mediumSeverityKeywords},
		{CategoryScamKeyword, lowSeverityWeight, lowSeverityKeywords},
		{CategoryMoneyRequest, moneyRequestWeight, moneyRequestKeywords},
	} {
		matchers, err := producers.CompileTerms(spec.terms)
		if err != nil {
			return nil, err
		}
		p.keywords = append(p.keywords, keywordSet{
			category: spec.category,
			weight:   spec.weight,
			matchers: matchers,
		})
	}

	for _, spec := range []struct {
		category string
		weight   float64
		exprs    []string
	}{
		{CategoryUnrealisticGain, regexPatternWeight, unrealisticReturnPatterns},
		{CategoryExternalRedirect, regexPatternWeight, externalRedirectPatterns},
		{CategorySolicitation, solicitationWeight, solicitationPatterns},
		{CategoryMLM, mlmWeight, mlmPatterns},
	} {
		for _, expr := range spec.exprs {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", expr, err)
			}
			p.patterns = append(p.patterns, regexRule{
				category: spec.category,
				weight:   spec.weight,
				re:       re,
			})
		}
	}

	return p, nil
}

func (p *Producer) Name() string {
	return signal.ScamRules
}

func (p *Producer) Produce(_ context.Context, doc *content.Document) (signal.Signal, error) {
	sig := signal.Signal{Name: signal.ScamRules}
	raw := 0.0

	for _, set := range p.keywords {
		for _, m := range set.matchers {
			start, end, ok := m.FindFirst(doc.Text)
			if !ok {
				continue
			}
			raw += set.weight
			sig.Evidence = append(sig.Evidence,
				producers.EvidenceAt(doc, set.category, m.Term, start, end, set.weight))
		}
	}

	for _, rule := range p.patterns {
		loc := rule.re.FindStringIndex(doc.Text)
		if loc == nil {
			continue
		}
		raw += rule.weight
		sig.Evidence = append(sig.Evidence,
			producers.EvidenceAt(doc, rule.category, rule.category, loc[0], loc[1], rule.weight))
	}

	if raw > 1.0 {
		raw = 1.0
	}
	sig.Score = raw
	return sig, nil
}
