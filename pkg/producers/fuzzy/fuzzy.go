package fuzzy

import (
	"context"
	"strings"
	"unicode"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/producers"
	"github.com/VettaLabs/ThesisGate/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	minGramWords = 2
	maxGramWords = 4
	minGramBytes = 10
	minLenRatio  = 0.7
	maxLenRatio  = 1.5
)

// CategoryFuzzyMatch marks evidence produced by approximate phrase
// matching; the matched canonical phrase is the evidence pattern.
const CategoryFuzzyMatch = "scam_fuzzy"

// Producer slides 2-4 word windows over the text and scores each against
// the known scam phrase list by normalized edit distance. The signal
// score is the best similarity at or above the threshold.
type Producer struct {
	logger    *logrus.Logger
	threshold float64
}

func NewProducer(threshold float64, logger *logrus.Logger) *Producer {
	return &Producer{logger: logger, threshold: threshold}
}

func (p *Producer) Name() string {
	return signal.Fuzzy
}

func (p *Producer) Produce(_ context.Context, doc *content.Document) (signal.Signal, error) {
	sig := signal.Signal{Name: signal.Fuzzy}

	words := splitWords(doc.Text)
	if len(words) < minGramWords {
		return sig, nil
	}

	seen := make(map[string]bool)
	best := 0.0

	for n := minGramWords; n <= maxGramWords && n <= len(words); n++ {
		for i := 0; i+n <= len(words); i++ {
			start, end := words[i].start, words[i+n-1].end
			gram := joinWords(words[i : i+n])
			if len(gram) < minGramBytes {
				continue
			}

			phrase, sim := closestPhrase(gram)
			if sim < p.threshold {
				continue
			}
			ratio := float64(len(gram)) / float64(len(phrase))
			if ratio < minLenRatio || ratio > maxLenRatio {
				continue
			}
			if seen[phrase] {
				continue
			}
			seen[phrase] = true

			sig.Evidence = append(sig.Evidence,
				producers.EvidenceAt(doc, CategoryFuzzyMatch, phrase, start, end, sim))
			if sim > best {
				best = sim
			}
		}
	}

	sig.Score = best
	return sig, nil
}

// closestPhrase returns the scam phrase nearest to the gram; earlier
// list entries win ties.
func closestPhrase(gram string) (string, float64) {
	bestPhrase := ""
	bestSim := -1.0
	for _, phrase := range scamPhrases {
		sim := utils.LevenshteinSimilarity(gram, phrase)
		if sim > bestSim {
			bestPhrase, bestSim = phrase, sim
		}
	}
	return bestPhrase, bestSim
}

type wordSpan struct {
	text  string
	start int
	end   int
}

func splitWords(text string) []wordSpan {
	var words []wordSpan
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, wordSpan{text: text[start:i], start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, wordSpan{text: text[start:], start: start, end: len(text)})
	}
	return words
}

func joinWords(words []wordSpan) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.text
	}
	return strings.Join(parts, " ")
}
