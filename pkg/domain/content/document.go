package content

import (
	"sort"

	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
)

type EntityLabel string

const (
	EntityMoney  EntityLabel = "MONEY"
	EntityOrg    EntityLabel = "ORG"
	EntityTicker EntityLabel = "TICKER"
	EntityPerson EntityLabel = "PERSON"
	EntityGPE    EntityLabel = "GPE"
)

type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Contains(start, end int) bool {
	return start >= s.Start && end <= s.End
}

func (s Span) Overlaps(start, end int) bool {
	return start < s.End && end > s.Start
}

type Entity struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}

type Sentence struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type Token struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Triple is a subject-verb-object extraction used for claim detection.
type Triple struct {
	Subject string `json:"subject"`
	Verb    string `json:"verb"`
	Object  string `json:"object"`
	Negated bool   `json:"negated"`
}

// Annotations is the linguistic annotator output: request-scoped and
// read-only once built.
type Annotations struct {
	Sentences    []Sentence
	Tokens       []Token
	Entities     []Entity
	NegatedSpans []Span
	FlagSpans    map[signal.ContextFlag][]Span
	Triples      []Triple
	Available    bool
}

// FlagsAt returns the context flags whose scope overlaps [start,end),
// sorted so repeated runs produce identical output.
func (a Annotations) FlagsAt(start, end int) []signal.ContextFlag {
	var flags []signal.ContextFlag
	for flag, spans := range a.FlagSpans {
		for _, sp := range spans {
			if sp.Overlaps(start, end) {
				flags = append(flags, flag)
				break
			}
		}
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
	return flags
}

// InNegatedScope reports whether [start,end) lies inside a negated span.
func (a Annotations) InNegatedScope(start, end int) bool {
	for _, sp := range a.NegatedSpans {
		if sp.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// Document is the normalized submission every producer reads. Immutable
// for the lifetime of the request.
type Document struct {
	Raw         string
	Text        string
	URLs        []string
	Mentions    []string
	Annotations Annotations
}
