package quality

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/quality"
	"github.com/VettaLabs/ThesisGate/pkg/producers"
)

var (
	numberPattern        = regexp.MustCompile(`[$€£₹]?\d[\d,]*(?:\.\d+)?%?`)
	percentPattern       = regexp.MustCompile(`\d(?:\.\d+)?\s*%`)
	horizonYearPattern   = regexp.MustCompile(`\b(?:by|through|until|into)\s+(?:19|20)\d{2}\b`)
	sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)
)

// localScorer computes the five dimension heuristics. All scores land
// in [0, MaxDimensionScore] and are deterministic for a given document.
type localScorer struct {
	citations    []producers.TermMatcher
	comparatives []producers.TermMatcher
	connectives  []producers.TermMatcher
	risks        []producers.TermMatcher
	hedges       []producers.TermMatcher
	counters     []producers.TermMatcher
	positions    []producers.TermMatcher
	targets      []producers.TermMatcher
	horizons     []producers.TermMatcher
	structure    []producers.TermMatcher
}

func newLocalScorer() (*localScorer, error) {
	s := &localScorer{}
	for _, tbl := range []struct {
		dst   *[]producers.TermMatcher
		terms []string
	}{
		{&s.citations, citationTerms},
		{&s.comparatives, comparativeTerms},
		{&s.connectives, connectiveTerms},
		{&s.risks, riskTerms},
		{&s.hedges, hedgeTerms},
		{&s.counters, counterargumentTerms},
		{&s.positions, positionTerms},
		{&s.targets, targetTerms},
		{&s.horizons, horizonTerms},
		{&s.structure, structureTerms},
	} {
		matchers, err := producers.CompileTerms(tbl.terms)
		if err != nil {
			return nil, err
		}
		*tbl.dst = matchers
	}
	return s, nil
}

// Score runs every dimension heuristic over the document. A document
// with no scoreable text cannot be graded, so that is fatal rather than
// a zero score.
func (s *localScorer) Score(doc *content.Document) (map[quality.Dimension]float64, map[quality.Dimension][]string, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return nil, nil, domain.NewLocalScoringError("document", errors.New("no scoreable text"))
	}

	scores := make(map[quality.Dimension]float64, len(quality.Dimensions))
	notes := make(map[quality.Dimension][]string, len(quality.Dimensions))
	for _, dim := range quality.Dimensions {
		var score float64
		var dimNotes []string
		switch dim {
		case quality.DimensionEvidence:
			score, dimNotes = s.scoreEvidence(doc)
		case quality.DimensionCoherence:
			score, dimNotes = s.scoreCoherence(doc)
		case quality.DimensionRiskAwareness:
			score, dimNotes = s.scoreRiskAwareness(doc)
		case quality.DimensionClarity:
			score, dimNotes = s.scoreClarity(doc)
		case quality.DimensionActionability:
			score, dimNotes = s.scoreActionability(doc)
		}
		scores[dim] = score
		if len(dimNotes) > 0 {
			notes[dim] = dimNotes
		}
	}
	return scores, notes, nil
}

func (s *localScorer) scoreEvidence(doc *content.Document) (float64, []string) {
	var notes []string
	numbers := len(numberPattern.FindAllString(doc.Text, -1))
	percents := len(percentPattern.FindAllString(doc.Text, -1))
	citations := countMatched(s.citations, doc.Text)
	comparatives := countMatched(s.comparatives, doc.Text)

	score := 4.0
	score += 2.0 * float64(capCount(numbers, 5))
	score += 1.5 * float64(capCount(percents, 2))
	score += 1.5 * float64(capCount(citations, 2))
	score += 1.0 * float64(capCount(comparatives, 2))

	if numbers == 0 {
		notes = append(notes, "no quantitative data points")
	}
	if citations == 0 {
		notes = append(notes, "no source citations")
	}
	return clampScore(score), notes
}

func (s *localScorer) scoreCoherence(doc *content.Document) (float64, []string) {
	var notes []string
	connectives := countMatched(s.connectives, doc.Text)
	sentences := sentenceCount(doc)
	claims := supportedClaims(doc)

	score := 4.0
	score += 2.5 * float64(capCount(connectives, 4))
	switch {
	case sentences >= 3:
		score += 3.0
	case sentences == 2:
		score += 1.5
	}
	score += 1.5 * float64(capCount(claims, 2))

	if connectives == 0 {
		notes = append(notes, "no discourse connectives linking claims")
	}
	if sentences < 2 {
		notes = append(notes, "single-sentence submission")
	}
	return clampScore(score), notes
}

func (s *localScorer) scoreRiskAwareness(doc *content.Document) (float64, []string) {
	var notes []string
	risks := countMatched(s.risks, doc.Text)
	hedges := countMatched(s.hedges, doc.Text)
	counters := countMatched(s.counters, doc.Text)

	score := 2.0
	score += 3.0 * float64(capCount(risks, 4))
	score += 1.0 * float64(capCount(hedges, 3))
	score += 2.5 * float64(capCount(counters, 2))

	if risks == 0 {
		notes = append(notes, "no downside or risk discussion")
	}
	if counters == 0 {
		notes = append(notes, "no counterargument considered")
	}
	return clampScore(score), notes
}

// scoreClarity reads ratios off the raw submission: normalization
// lowercases the text, which would hide shouting.
func (s *localScorer) scoreClarity(doc *content.Document) (float64, []string) {
	var notes []string
	words := len(strings.Fields(doc.Text))
	sentences := sentenceCount(doc)
	if sentences == 0 {
		sentences = 1
	}
	avgWords := float64(words) / float64(sentences)

	score := 8.0
	switch {
	case avgWords >= 8 && avgWords <= 30:
		score += 8.0
	case avgWords >= 5 && avgWords <= 40:
		score += 4.0
	default:
		notes = append(notes, "sentence length outside readable range")
	}
	score += 2.0 * float64(capCount(countMatched(s.structure, doc.Text), 2))

	switch upper := upperRatio(doc.Raw); {
	case upper > 0.5:
		score -= 6.0
		notes = append(notes, "excessive capitalization")
	case upper > 0.3:
		score -= 3.0
	}
	if emphaticRatio(doc.Raw) > 0.1 {
		score -= 4.0
		notes = append(notes, "excessive punctuation")
	}
	return clampScore(score), notes
}

func (s *localScorer) scoreActionability(doc *content.Document) (float64, []string) {
	var notes []string
	positions := countMatched(s.positions, doc.Text)
	targets := countMatched(s.targets, doc.Text)
	hasHorizon := countMatched(s.horizons, doc.Text) > 0 || horizonYearPattern.MatchString(doc.Text)

	score := 2.0
	score += 5.0 * float64(capCount(positions, 2))
	if targets > 0 {
		score += 5.0
	}
	if hasHorizon {
		score += 5.0
	}

	if positions == 0 {
		notes = append(notes, "no explicit position stated")
	}
	if !hasHorizon {
		notes = append(notes, "no time horizon given")
	}
	return clampScore(score), notes
}

// countMatched counts distinct lexicon terms present in the text, not
// repeated occurrences of the same term.
func countMatched(matchers []producers.TermMatcher, text string) int {
	n := 0
	for _, m := range matchers {
		if m.Match(text) {
			n++
		}
	}
	return n
}

func sentenceCount(doc *content.Document) int {
	if doc.Annotations.Available && len(doc.Annotations.Sentences) > 0 {
		return len(doc.Annotations.Sentences)
	}
	n := 0
	for _, part := range sentenceSplitPattern.Split(doc.Text, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

func supportedClaims(doc *content.Document) int {
	n := 0
	for _, t := range doc.Annotations.Triples {
		if !t.Negated && t.Subject != "" && t.Object != "" {
			n++
		}
	}
	return n
}

func upperRatio(text string) float64 {
	letters, uppers := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(uppers) / float64(letters)
}

func emphaticRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	n := 0
	for _, r := range text {
		if r == '!' || r == '?' {
			n++
		}
	}
	return float64(n) / float64(len(text))
}

func capCount(n, limit int) int {
	if n > limit {
		return limit
	}
	return n
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > quality.MaxDimensionScore {
		return quality.MaxDimensionScore
	}
	return v
}
