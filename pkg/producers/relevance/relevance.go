package relevance

import (
	"context"
	"sort"
	"strings"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/producers"
	"github.com/sirupsen/logrus"
)

// Evidence categories reported by this producer.
const (
	CategoryFinanceTerm    = "finance_term"
	CategoryAmbiguousOnly  = "ambiguous_only"
	CategoryOffTopicTerm   = "off_topic_term"
	CategoryOffTopicEntity = "off_topic_entity"
)

const (
	highPriorityBoost  = 0.1
	orgEntityBoost     = 0.05
	tickerEntityBoost  = 0.05
	moneyEntityBoost   = 0.10
	entityBoostCap     = 0.20
	offTopicPenalty    = 0.15
	driftPenalty       = 0.15
	strongSignalFloor  = 0.25
	minDriftSentenceTk = 6
	maxTermEvidence    = 5
)

type vocabularyTerm struct {
	matcher      producers.TermMatcher
	category     string
	strong       bool
	highPriority bool
}

// Producer scores how much of the document is finance vocabulary, boosted
// by money/org/ticker entities and penalized for off-topic drift.
type Producer struct {
	logger   *logrus.Logger
	vocab    []vocabularyTerm
	offTopic []producers.TermMatcher
}

func NewProducer(logger *logrus.Logger) (*Producer, error) {
	highPriority := make(map[string]bool, len(highPriorityTerms))
	for _, term := range highPriorityTerms {
		highPriority[term] = true
	}

	var vocab []vocabularyTerm
	for category, terms := range vocabularyCategories {
		matchers, err := producers.CompileTerms(terms)
		if err != nil {
			return nil, err
		}
		for _, m := range matchers {
			vocab = append(vocab, vocabularyTerm{
				matcher:      m,
				category:     category,
				strong:       strongCategories[category] && !ambiguousTerms[m.Term],
				highPriority: highPriority[m.Term],
			})
		}
	}
	// Deterministic match order regardless of map iteration.
	sort.Slice(vocab, func(i, j int) bool { return vocab[i].matcher.Term < vocab[j].matcher.Term })

	offTopic, err := producers.CompileTerms(offTopicTerms)
	if err != nil {
		return nil, err
	}

	return &Producer{
		logger:   logger,
		vocab:    vocab,
		offTopic: offTopic,
	}, nil
}

func (p *Producer) Name() string {
	return signal.Relevance
}

func (p *Producer) Produce(_ context.Context, doc *content.Document) (signal.Signal, error) {
	sig := signal.Signal{Name: signal.Relevance}
	text := doc.Text

	meaningful := 0
	for _, w := range strings.Fields(text) {
		if len(w) > 2 {
			meaningful++
		}
	}
	if meaningful == 0 {
		return sig, nil
	}

	matched := make(map[string]vocabularyTerm)
	highPriorityHits := 0
	strongSignal := false
	for _, vt := range p.vocab {
		start, end, ok := vt.matcher.FindFirst(text)
		if !ok {
			continue
		}
		if _, seen := matched[vt.matcher.Term]; seen {
			continue
		}
		matched[vt.matcher.Term] = vt
		if vt.highPriority {
			highPriorityHits++
		}
		if vt.strong {
			strongSignal = true
		}
		if len(sig.Evidence) < maxTermEvidence {
			sig.Evidence = append(sig.Evidence,
				producers.EvidenceAt(doc, CategoryFinanceTerm, vt.matcher.Term, start, end, 0))
		}
	}

	offTopicHits := p.findOffTopic(doc, &sig)

	score := float64(len(matched)) / float64(meaningful)
	if highPriorityHits > 0 {
		score += highPriorityBoost * float64(highPriorityHits)
	}

	entityBoost, entityFound := p.entityBoost(doc, offTopicHits)
	score += entityBoost

	score -= offTopicPenalty * float64(len(offTopicHits))
	score -= p.driftPenalty(doc, &sig)

	// Terms like "budget" or "profit" occur in any domain. When nothing
	// stronger backs them up the document is not finance content.
	if len(matched) > 0 && p.allAmbiguous(matched) && !strongSignal && !entityFound {
		sig.Evidence = append(sig.Evidence, signal.Evidence{
			Category: CategoryAmbiguousOnly,
			Pattern:  strings.Join(termKeys(matched), ","),
		})
		sig.Score = 0
		return sig, nil
	}

	if len(offTopicHits) == 0 {
		if strongSignal {
			score = maxFloat(score, strongSignalFloor)
		} else if score >= 0.1 && entityFound {
			score = maxFloat(score, strongSignalFloor)
		}
	}

	sig.Score = clamp01(score)
	return sig, nil
}

func (p *Producer) findOffTopic(doc *content.Document, sig *signal.Signal) map[string]bool {
	hits := make(map[string]bool)
	for _, m := range p.offTopic {
		start, end, ok := m.FindFirst(doc.Text)
		if !ok || hits[m.Term] {
			continue
		}
		hits[m.Term] = true
		sig.Evidence = append(sig.Evidence,
			producers.EvidenceAt(doc, CategoryOffTopicTerm, m.Term, start, end, 0))
	}
	return hits
}

func (p *Producer) entityBoost(doc *content.Document, offTopicHits map[string]bool) (float64, bool) {
	if !doc.Annotations.Available {
		return 0, false
	}
	boost := 0.0
	found := false
	for _, ent := range doc.Annotations.Entities {
		lower := strings.ToLower(ent.Text)
		if ignoredEntityTexts[lower] || offTopicHits[lower] {
			continue
		}
		switch ent.Label {
		case content.EntityOrg:
			boost += orgEntityBoost
			found = true
		case content.EntityMoney:
			boost += moneyEntityBoost
			found = true
		case content.EntityTicker:
			boost += tickerEntityBoost
			found = true
		}
	}
	if boost > entityBoostCap {
		boost = entityBoostCap
	}
	return boost, found
}

// driftPenalty punishes sentences that talk about people or places with
// no finance context at all, which is how mixed posts wander off into
// politics or celebrity news.
func (p *Producer) driftPenalty(doc *content.Document, sig *signal.Signal) float64 {
	if !doc.Annotations.Available {
		return 0
	}

	penalty := 0.0
	for _, sent := range doc.Annotations.Sentences {
		tokenCount := 0
		for _, tok := range doc.Annotations.Tokens {
			if tok.Start >= sent.Start && tok.End <= sent.End {
				tokenCount++
			}
		}
		if tokenCount < minDriftSentenceTk {
			continue
		}

		if p.sentenceHasFinanceTerm(sent.Text) {
			continue
		}

		for _, ent := range doc.Annotations.Entities {
			if ent.Start < sent.Start || ent.End > sent.End {
				continue
			}
			if ent.Label == content.EntityPerson || ent.Label == content.EntityGPE {
				penalty += driftPenalty
				sig.Evidence = append(sig.Evidence,
					producers.EvidenceAt(doc, CategoryOffTopicEntity, string(ent.Label), ent.Start, ent.End, 0))
				break
			}
		}
	}
	return penalty
}

func (p *Producer) sentenceHasFinanceTerm(sentence string) bool {
	for _, vt := range p.vocab {
		if vt.matcher.Match(sentence) {
			return true
		}
	}
	return false
}

func (p *Producer) allAmbiguous(matched map[string]vocabularyTerm) bool {
	for term := range matched {
		if !ambiguousTerms[term] {
			return false
		}
	}
	return true
}

func termKeys(matched map[string]vocabularyTerm) []string {
	keys := make([]string, 0, len(matched))
	for term := range matched {
		keys = append(keys, term)
	}
	sort.Strings(keys)
	return keys
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
