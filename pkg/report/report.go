package report

import (
	"fmt"
	"strings"

	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
	"github.com/VettaLabs/ThesisGate/pkg/domain/quality"
)

// ModerationResponse is the wire shape of a phase-one verdict.
type ModerationResponse struct {
	Decision         string        `json:"decision"`
	RiskScore        float64       `json:"risk_score"`
	IsFinanceRelated bool          `json:"is_finance_related"`
	Issues           []IssueReport `json:"issues"`
	Explanation      string        `json:"explanation"`
	CanProceed       bool          `json:"can_proceed"`
}

type IssueReport struct {
	Type       string `json:"type"`
	Found      string `json:"found"`
	Suggestion string `json:"suggestion"`
}

// StrengthResponse is the wire shape of a phase-two report.
type StrengthResponse struct {
	OverallScore    float64                   `json:"overall_score"`
	OverallGrade    string                    `json:"overall_grade"`
	ComponentScores map[string]ComponentScore `json:"component_scores"`
	MainClaim       string                    `json:"main_claim"`
	Weaknesses      []WeaknessReport          `json:"weaknesses"`
	Strengths       []string                  `json:"strengths"`
	BiasAnalysis    BiasReport                `json:"bias_analysis"`
}

type ComponentScore struct {
	Score float64  `json:"score"`
	Max   float64  `json:"max"`
	Notes []string `json:"notes,omitempty"`
}

type WeaknessReport struct {
	Dimension string  `json:"dimension"`
	Score     float64 `json:"score"`
	Detail    string  `json:"detail"`
}

type BiasReport struct {
	Assessed   bool   `json:"assessed"`
	Balance    string `json:"balance"`
	Commentary string `json:"commentary,omitempty"`
}

// Assembler maps domain verdicts and reports onto the wire contracts.
// Pure; holds no state beyond compiled templates.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Moderation renders a verdict. The submitted text is the caller's raw
// input, used to locate matched excerpts with their original casing.
func (a *Assembler) Moderation(result *moderation.Result, submitted string) (*ModerationResponse, error) {
	if result.CanProceed != (result.Decision == moderation.DecisionPass) {
		return nil, fmt.Errorf("verdict invariant violated: can_proceed=%t with decision %s", result.CanProceed, result.Decision)
	}

	issues := make([]IssueReport, 0, len(result.Issues))
	for _, issue := range result.Issues {
		found := locateExcerpt(submitted, issue.Found)
		if found == "" {
			found = strings.ReplaceAll(string(issue.Type), "_", " ")
		}
		issues = append(issues, IssueReport{
			Type:       wireIssueType(issue),
			Found:      found,
			Suggestion: suggestionFor(issue),
		})
	}

	return &ModerationResponse{
		Decision:         strings.ToUpper(string(result.Decision)),
		RiskScore:        result.RiskScore,
		IsFinanceRelated: result.IsFinanceRelated,
		Issues:           issues,
		Explanation:      result.Explanation,
		CanProceed:       result.CanProceed,
	}, nil
}

// Strength renders a quality report. It refuses to assemble one for a
// verdict that did not pass, so a call-order bug upstream cannot leak a
// graded report for blocked content.
func (a *Assembler) Strength(result *moderation.Result, rep *quality.Report) (*StrengthResponse, error) {
	if result.Decision != moderation.DecisionPass || !result.CanProceed {
		return nil, fmt.Errorf("strength report requires a passing verdict, got %s", result.Decision)
	}

	components := make(map[string]ComponentScore, len(rep.Dimensions))
	for dim, ds := range rep.Dimensions {
		components[string(dim)] = ComponentScore{
			Score: ds.MergedScore,
			Max:   quality.MaxDimensionScore,
			Notes: ds.Notes,
		}
	}

	weaknesses := make([]WeaknessReport, 0, len(rep.Weaknesses))
	for _, w := range rep.Weaknesses {
		weaknesses = append(weaknesses, WeaknessReport{
			Dimension: string(w.Dimension),
			Score:     w.Score,
			Detail:    w.Detail,
		})
	}

	return &StrengthResponse{
		OverallScore:    rep.OverallScore,
		OverallGrade:    string(rep.Grade),
		ComponentScores: components,
		MainClaim:       rep.MainClaim,
		Weaknesses:      weaknesses,
		Strengths:       rep.Strengths,
		BiasAnalysis: BiasReport{
			Assessed:   rep.Bias.Assessed,
			Balance:    rep.Bias.Balance,
			Commentary: rep.Bias.Commentary,
		},
	}, nil
}
