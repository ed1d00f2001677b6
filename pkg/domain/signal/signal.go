package signal

// Producer names. Every signal carries the name of the producer that
// emitted it so verdicts can cite their source.
const (
	Relevance = "relevance"
	ScamRules = "scam_rules"
	Fuzzy     = "fuzzy"
	Semantic  = "semantic"
	Toxicity  = "toxicity"
)

type ContextFlag string

const (
	FlagWarning       ContextFlag = "warning"
	FlagDisclaimer    ContextFlag = "disclaimer"
	FlagPastTense     ContextFlag = "past_tense"
	FlagQuestion      ContextFlag = "question"
	FlagOpinionMarker ContextFlag = "opinion_marker"
	FlagNegated       ContextFlag = "negated"
)

// flagPriority orders context flags from strongest discount to weakest.
// Only the highest-priority flag present on a signal is applied; flags
// are never stacked.
var flagPriority = []ContextFlag{
	FlagWarning,
	FlagDisclaimer,
	FlagPastTense,
	FlagQuestion,
	FlagOpinionMarker,
}

var flagDiscounts = map[ContextFlag]float64{
	FlagWarning:       0.30,
	FlagDisclaimer:    0.60,
	FlagPastTense:     0.70,
	FlagQuestion:      0.70,
	FlagOpinionMarker: 0.80,
}

// Evidence is one matched span supporting a signal.
type Evidence struct {
	Category string        `json:"category"`
	Pattern  string        `json:"pattern"`
	Excerpt  string        `json:"excerpt"`
	Start    int           `json:"start"`
	End      int           `json:"end"`
	Score    float64       `json:"score"`
	Flags    []ContextFlag `json:"flags,omitempty"`
}

func (e Evidence) Negated() bool {
	for _, f := range e.Flags {
		if f == FlagNegated {
			return true
		}
	}
	return false
}

// Signal is a normalized [0,1] score with supporting evidence, produced
// by one analyzer over the input text. Immutable once produced.
type Signal struct {
	Name     string        `json:"name"`
	Score    float64       `json:"score"`
	Evidence []Evidence    `json:"evidence,omitempty"`
	Flags    []ContextFlag `json:"flags,omitempty"`
}

// HighestPriorityFlag returns the strongest-discount context flag present
// on the signal, or "" when none applies. NEGATED is not a discount flag.
func (s Signal) HighestPriorityFlag() ContextFlag {
	present := make(map[ContextFlag]bool, len(s.Flags))
	for _, f := range s.Flags {
		present[f] = true
	}
	for _, ev := range s.Evidence {
		for _, f := range ev.Flags {
			present[f] = true
		}
	}
	for _, f := range flagPriority {
		if present[f] {
			return f
		}
	}
	return ""
}

// Discount returns the multiplier for the signal's highest-priority
// context flag, or 1.0 when no flag applies.
func (s Signal) Discount() float64 {
	f := s.HighestPriorityFlag()
	if f == "" {
		return 1.0
	}
	return flagDiscounts[f]
}

// DiscountFor exposes the per-flag multiplier table.
func DiscountFor(f ContextFlag) float64 {
	if d, ok := flagDiscounts[f]; ok {
		return d
	}
	return 1.0
}

// TopEvidence returns the highest-scoring evidence span, preferring
// earlier spans on ties.
func (s Signal) TopEvidence() (Evidence, bool) {
	if len(s.Evidence) == 0 {
		return Evidence{}, false
	}
	top := s.Evidence[0]
	for _, ev := range s.Evidence[1:] {
		if ev.Score > top.Score {
			top = ev
		}
	}
	return top, true
}
