package annotate

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/sirupsen/logrus"
)

const (
	negationWindowTokens = 6
	negationLookBehind   = 3
)

// Annotator produces the linguistic annotations every producer and the
// quality scorer read. Implementations must be safe for concurrent use;
// annotations are request-scoped and read-only once built.
//
//go:generate mockery --name=Annotator --dir=. --output=./mocks --filename=annotator_mock.go --case=underscore --with-expecter
type Annotator interface {
	Annotate(text string) content.Annotations
	Warmup() error
	Ready() bool
}

type phraseMatcher struct {
	phrase string
	re     *regexp.Regexp
}

type lexiconIndex struct {
	warning    []phraseMatcher
	disclaimer []phraseMatcher
	opinion    []phraseMatcher
	past       []phraseMatcher
	orgs       []phraseMatcher
	gpes       []phraseMatcher

	money   *regexp.Regexp
	cashtag *regexp.Regexp
	person  *regexp.Regexp
}

type service struct {
	logger  *logrus.Logger
	once    sync.Once
	loadErr error
	idx     *lexiconIndex
}

func NewAnnotator(logger *logrus.Logger) Annotator {
	return &service{logger: logger}
}

// Warmup compiles the lexicon tables. Safe to call concurrently; the work
// runs once.
func (s *service) Warmup() error {
	s.once.Do(func() {
		idx, err := buildIndex()
		if err != nil {
			s.loadErr = fmt.Errorf("failed to build annotator index: %w", err)
			s.logger.WithError(err).Error("annotator initialization failed")
			return
		}
		s.idx = idx
	})
	return s.loadErr
}

func (s *service) Ready() bool {
	return s.Warmup() == nil
}

func (s *service) Annotate(text string) content.Annotations {
	if err := s.Warmup(); err != nil {
		return content.Annotations{Available: false}
	}

	ann := content.Annotations{
		FlagSpans: make(map[signal.ContextFlag][]content.Span),
		Available: true,
	}

	ann.Sentences = splitSentences(text)
	ann.Tokens = tokenize(text)
	ann.Entities = s.findEntities(text, ann.Tokens)
	ann.NegatedSpans = negatedSpans(text, ann.Tokens, ann.Sentences)
	s.collectFlagSpans(text, ann.Sentences, ann.Tokens, &ann)
	ann.Triples = extractTriples(ann.Sentences, ann.Tokens, ann.NegatedSpans)

	return ann
}

func buildIndex() (*lexiconIndex, error) {
	idx := &lexiconIndex{}

	var err error
	if idx.warning, err = compilePhrases(warningPhrases); err != nil {
		return nil, err
	}
	if idx.disclaimer, err = compilePhrases(disclaimerPhrases); err != nil {
		return nil, err
	}
	if idx.opinion, err = compilePhrases(opinionPhrases); err != nil {
		return nil, err
	}
	if idx.past, err = compilePhrases(pastIndicators); err != nil {
		return nil, err
	}
	if idx.orgs, err = compilePhrases(orgLexicon); err != nil {
		return nil, err
	}
	if idx.gpes, err = compilePhrases(gpeLexicon); err != nil {
		return nil, err
	}

	idx.money, err = regexp.Compile(`[$₹]\s?\d[\d,]*(\.\d+)?(\s?(k|million|billion|crore|crores|lakh|lakhs))?\b|\b\d[\d,]*(\.\d+)?\s?(rupees|rs|inr|usd|dollars|crore|crores|lakh|lakhs)\b`)
	if err != nil {
		return nil, err
	}
	idx.cashtag, err = regexp.Compile(`\$[a-z]{1,6}\b`)
	if err != nil {
		return nil, err
	}
	idx.person, err = regexp.Compile(`\b(mr|mrs|ms|dr|shri)\.?\s+([a-z]+)\b`)
	if err != nil {
		return nil, err
	}

	return idx, nil
}

func compilePhrases(phrases []string) ([]phraseMatcher, error) {
	matchers := make([]phraseMatcher, 0, len(phrases))
	for _, phrase := range phrases {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("phrase %q: %w", phrase, err)
		}
		matchers = append(matchers, phraseMatcher{phrase: phrase, re: re})
	}
	return matchers, nil
}

// splitSentences breaks text on runs of sentence punctuation followed by a
// space or end of input. Offsets are byte positions into the input.
func splitSentences(text string) []content.Sentence {
	var sentences []content.Sentence
	start := -1

	appendSentence := func(end int) {
		if start < 0 || end <= start {
			return
		}
		frag := strings.TrimRight(text[start:end], " ")
		if frag == "" {
			start = -1
			return
		}
		sentences = append(sentences, content.Sentence{
			Text:  frag,
			Start: start,
			End:   start + len(frag),
		})
		start = -1
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if start < 0 {
			if c != ' ' {
				start = i
			}
			continue
		}
		if c == '.' || c == '!' || c == '?' {
			j := i
			for j+1 < len(text) && (text[j+1] == '.' || text[j+1] == '!' || text[j+1] == '?') {
				j++
			}
			// A period glued to the next word ("1.5", "example.com") is
			// not a sentence boundary.
			if j+1 < len(text) && text[j+1] != ' ' {
				i = j
				continue
			}
			appendSentence(j + 1)
			i = j
		}
	}
	appendSentence(len(text))

	return sentences
}

// tokenize returns word tokens with edge punctuation stripped.
func tokenize(text string) []content.Token {
	var tokens []content.Token
	i := 0
	for i < len(text) {
		if text[i] == ' ' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] != ' ' {
			j++
		}
		lead, core := i, text[i:j]
		for len(core) > 0 && isEdgePunct(core[0]) {
			lead++
			core = core[1:]
		}
		for len(core) > 0 && isEdgePunct(core[len(core)-1]) {
			core = core[:len(core)-1]
		}
		if core != "" {
			tokens = append(tokens, content.Token{
				Text:  core,
				Start: lead,
				End:   lead + len(core),
			})
		}
		i = j
	}
	return tokens
}

func isEdgePunct(c byte) bool {
	switch c {
	case '.', ',', '!', '?', ';', ':', '"', '\'', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

func (s *service) findEntities(text string, tokens []content.Token) []content.Entity {
	var entities []content.Entity

	for _, loc := range s.idx.money.FindAllStringIndex(text, -1) {
		entities = append(entities, content.Entity{
			Text: text[loc[0]:loc[1]], Label: content.EntityMoney, Start: loc[0], End: loc[1],
		})
	}

	for _, loc := range s.idx.cashtag.FindAllStringIndex(text, -1) {
		entities = append(entities, content.Entity{
			Text: text[loc[0]:loc[1]], Label: content.EntityTicker, Start: loc[0], End: loc[1],
		})
	}
	for _, tok := range tokens {
		if tickerLexicon[tok.Text] {
			entities = append(entities, content.Entity{
				Text: tok.Text, Label: content.EntityTicker, Start: tok.Start, End: tok.End,
			})
		}
	}

	var orgs []content.Entity
	for _, m := range s.idx.orgs {
		for _, loc := range m.re.FindAllStringIndex(text, -1) {
			orgs = append(orgs, content.Entity{
				Text: text[loc[0]:loc[1]], Label: content.EntityOrg, Start: loc[0], End: loc[1],
			})
		}
	}
	for i := 1; i < len(tokens); i++ {
		if !orgSuffixes[tokens[i].Text] {
			continue
		}
		prev := tokens[i-1]
		if stopWords[prev.Text] || !isWordy(prev.Text) {
			continue
		}
		orgs = append(orgs, content.Entity{
			Text:  text[prev.Start:tokens[i].End],
			Label: content.EntityOrg,
			Start: prev.Start,
			End:   tokens[i].End,
		})
	}
	entities = append(entities, dedupeOverlaps(orgs)...)

	for _, loc := range s.idx.person.FindAllStringSubmatchIndex(text, -1) {
		// Group 2 is the name following the honorific.
		if len(loc) >= 6 && loc[4] >= 0 {
			entities = append(entities, content.Entity{
				Text: text[loc[4]:loc[5]], Label: content.EntityPerson, Start: loc[4], End: loc[5],
			})
		}
	}

	for _, m := range s.idx.gpes {
		for _, loc := range m.re.FindAllStringIndex(text, -1) {
			entities = append(entities, content.Entity{
				Text: text[loc[0]:loc[1]], Label: content.EntityGPE, Start: loc[0], End: loc[1],
			})
		}
	}

	return entities
}

// dedupeOverlaps keeps the longest entity among overlapping spans.
func dedupeOverlaps(entities []content.Entity) []content.Entity {
	var kept []content.Entity
	for _, cand := range entities {
		overlapIdx := -1
		for i, existing := range kept {
			if existing.Start < cand.End && cand.Start < existing.End {
				overlapIdx = i
				break
			}
		}
		if overlapIdx < 0 {
			kept = append(kept, cand)
		} else if cand.End-cand.Start > kept[overlapIdx].End-kept[overlapIdx].Start {
			kept[overlapIdx] = cand
		}
	}
	return kept
}

// negatedSpans opens a scope at every negation token, running to the
// earlier of the next clause boundary, a fixed token window, or the end of
// the sentence.
func negatedSpans(text string, tokens []content.Token, sentences []content.Sentence) []content.Span {
	var spans []content.Span
	for i, tok := range tokens {
		if !isNegation(tok.Text) {
			continue
		}

		end := tok.End
		limit := i + negationWindowTokens
		for j := i + 1; j < len(tokens) && j <= limit; j++ {
			end = tokens[j].End
		}
		if sentEnd, ok := sentenceEndAt(sentences, tok.Start); ok && sentEnd < end {
			end = sentEnd
		}
		if comma := strings.IndexAny(text[tok.End:end], ",;"); comma >= 0 {
			end = tok.End + comma
		}

		spans = append(spans, content.Span{Start: tok.Start, End: end})
	}
	return spans
}

func isNegation(word string) bool {
	return negationWords[word] || strings.HasSuffix(word, "n't")
}

func sentenceEndAt(sentences []content.Sentence, pos int) (int, bool) {
	for _, s := range sentences {
		if pos >= s.Start && pos < s.End {
			return s.End, true
		}
	}
	return 0, false
}

func (s *service) collectFlagSpans(text string, sentences []content.Sentence, tokens []content.Token, ann *content.Annotations) {
	// Warning and disclaimer phrases scope the whole message. A scam
	// phrase quoted anywhere under "beware of..." is reported speech.
	docSpan := content.Span{Start: 0, End: len(text)}
	if anyPhraseMatches(s.idx.warning, text) {
		ann.FlagSpans[signal.FlagWarning] = append(ann.FlagSpans[signal.FlagWarning], docSpan)
	}
	if anyPhraseMatches(s.idx.disclaimer, text) {
		ann.FlagSpans[signal.FlagDisclaimer] = append(ann.FlagSpans[signal.FlagDisclaimer], docSpan)
	}

	// Question, past-tense and opinion flags are properties of individual
	// sentences.
	for _, sent := range sentences {
		span := content.Span{Start: sent.Start, End: sent.End}

		if isQuestion(sent.Text) {
			ann.FlagSpans[signal.FlagQuestion] = append(ann.FlagSpans[signal.FlagQuestion], span)
		}
		if anyPhraseMatches(s.idx.opinion, sent.Text) {
			ann.FlagSpans[signal.FlagOpinionMarker] = append(ann.FlagSpans[signal.FlagOpinionMarker], span)
		}
		if isPastTense(s.idx.past, sent, tokens) {
			ann.FlagSpans[signal.FlagPastTense] = append(ann.FlagSpans[signal.FlagPastTense], span)
		}
	}
}

func anyPhraseMatches(matchers []phraseMatcher, text string) bool {
	for _, m := range matchers {
		if m.re.MatchString(text) {
			return true
		}
	}
	return false
}

func isQuestion(sentence string) bool {
	if strings.HasSuffix(sentence, "?") {
		return true
	}
	for _, lead := range questionLeads {
		if sentence == lead || strings.HasPrefix(sentence, lead+" ") {
			return true
		}
	}
	return false
}

func isPastTense(past []phraseMatcher, sent content.Sentence, tokens []content.Token) bool {
	if anyPhraseMatches(past, sent.Text) {
		return true
	}
	edCount := 0
	for _, tok := range tokens {
		if tok.Start < sent.Start || tok.End > sent.End {
			continue
		}
		if len(tok.Text) > 4 && strings.HasSuffix(tok.Text, "ed") {
			edCount++
			if edCount >= 2 {
				return true
			}
		}
	}
	return false
}

// extractTriples pulls subject-verb-object claims out of each sentence
// using the verb lexicon plus -ed/-ing morphology.
func extractTriples(sentences []content.Sentence, tokens []content.Token, negated []content.Span) []content.Triple {
	var triples []content.Triple

	for _, sent := range sentences {
		var ts []content.Token
		for _, tok := range tokens {
			if tok.Start >= sent.Start && tok.End <= sent.End {
				ts = append(ts, tok)
			}
		}

		for j, tok := range ts {
			if !isVerb(tok.Text) {
				continue
			}

			subject := ""
			for k := j - 1; k >= 0; k-- {
				if isContentWord(ts[k].Text) {
					subject = ts[k].Text
					break
				}
			}
			if subject == "" {
				continue
			}

			object := ""
			for k := j + 1; k < len(ts); k++ {
				if isContentWord(ts[k].Text) {
					object = ts[k].Text
					break
				}
			}

			triples = append(triples, content.Triple{
				Subject: subject,
				Verb:    tok.Text,
				Object:  object,
				Negated: verbNegated(ts, j, negated),
			})
		}
	}

	return triples
}

func isVerb(word string) bool {
	if verbLexicon[word] {
		return true
	}
	return len(word) > 4 && (strings.HasSuffix(word, "ed") || strings.HasSuffix(word, "ing"))
}

func isContentWord(word string) bool {
	return !stopWords[word] && !verbLexicon[word] && !isNegation(word) && isWordy(word)
}

func isWordy(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] >= 'a' && word[i] <= 'z' {
			return true
		}
	}
	return false
}

func verbNegated(ts []content.Token, verbIdx int, negated []content.Span) bool {
	for k := verbIdx - 1; k >= 0 && k >= verbIdx-negationLookBehind; k-- {
		if isNegation(ts[k].Text) {
			return true
		}
	}
	verb := ts[verbIdx]
	for _, sp := range negated {
		if sp.Overlaps(verb.Start, verb.End) {
			return true
		}
	}
	return false
}
