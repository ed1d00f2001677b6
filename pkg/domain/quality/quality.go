package quality

type Dimension string

const (
	DimensionEvidence      Dimension = "evidence"
	DimensionCoherence     Dimension = "coherence"
	DimensionRiskAwareness Dimension = "risk_awareness"
	DimensionClarity       Dimension = "clarity"
	DimensionActionability Dimension = "actionability"
)

// Dimensions lists the five scoring axes in report order.
var Dimensions = []Dimension{
	DimensionEvidence,
	DimensionCoherence,
	DimensionRiskAwareness,
	DimensionClarity,
	DimensionActionability,
}

// MaxDimensionScore is the ceiling of a single dimension.
const MaxDimensionScore = 20.0

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFor maps an overall score onto its letter band. Bands are
// half-open on the upper side except A, which closes at 100.
func GradeFor(overall float64) Grade {
	switch {
	case overall >= 80:
		return GradeA
	case overall >= 70:
		return GradeB
	case overall >= 60:
		return GradeC
	case overall >= 50:
		return GradeD
	default:
		return GradeF
	}
}

// DimensionScore carries the local heuristic score, the optional LLM
// refinement, and their merge for one dimension.
type DimensionScore struct {
	Dimension   Dimension `json:"dimension"`
	LocalScore  float64   `json:"local_score"`
	LLMScore    *float64  `json:"llm_score,omitempty"`
	MergedScore float64   `json:"merged_score"`
	Notes       []string  `json:"notes,omitempty"`
}

// PartialScores is the structured output of one LLM refinement call.
// Dimensions the model did not cover are simply absent.
type PartialScores struct {
	Scores map[Dimension]float64
	Notes  map[Dimension]string
	Bias   BiasAnalysis
}

type BiasAnalysis struct {
	Assessed   bool   `json:"assessed"`
	Balance    string `json:"balance,omitempty"`
	Commentary string `json:"commentary,omitempty"`
}

// NotAssessedBias is the degraded bias verdict used when the refinement
// call fails.
func NotAssessedBias() BiasAnalysis {
	return BiasAnalysis{Assessed: false, Balance: "not assessed"}
}

// Weakness is an Issue-like finding for a dimension scored below half
// credit.
type Weakness struct {
	Dimension Dimension `json:"dimension"`
	Score     float64   `json:"score"`
	Detail    string    `json:"detail"`
}

// Report is the full strength analysis of one thesis. Built once,
// immutable.
type Report struct {
	OverallScore float64                      `json:"overall_score"`
	Grade        Grade                        `json:"grade"`
	Dimensions   map[Dimension]DimensionScore `json:"dimensions"`
	MainClaim    string                       `json:"main_claim"`
	Weaknesses   []Weakness                   `json:"weaknesses"`
	Strengths    []string                     `json:"strengths"`
	Bias         BiasAnalysis                 `json:"bias_analysis"`
}
