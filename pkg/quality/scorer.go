package quality

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/quality"
	"github.com/sirupsen/logrus"
)

const (
	fallbackNoteUnavailable = "llm refinement unavailable, local score kept"
	fallbackNoteOmitted     = "llm refinement omitted this dimension, local score kept"
)

var weaknessDetails = map[quality.Dimension]string{
	quality.DimensionEvidence:      "thin quantitative support",
	quality.DimensionCoherence:     "argument lacks connective structure",
	quality.DimensionRiskAwareness: "downside is not addressed",
	quality.DimensionClarity:       "hard to read as written",
	quality.DimensionActionability: "no actionable stance",
}

var strengthPhrases = map[quality.Dimension]string{
	quality.DimensionEvidence:      "well-supported with data",
	quality.DimensionCoherence:     "clearly structured argument",
	quality.DimensionRiskAwareness: "balanced risk discussion",
	quality.DimensionClarity:       "readable and direct",
	quality.DimensionActionability: "concrete, actionable call",
}

// Scorer grades a thesis that already passed moderation. Local
// heuristics and the LLM refinement run concurrently; the merge waits
// for both, with the refinement bounded by its own timeout.
type Scorer struct {
	cfg     config.QualityConfig
	local   *localScorer
	refiner Refiner
	logger  *logrus.Logger
}

func NewScorer(cfg config.QualityConfig, refiner Refiner, logger *logrus.Logger) (*Scorer, error) {
	local, err := newLocalScorer()
	if err != nil {
		return nil, err
	}
	return &Scorer{
		cfg:     cfg,
		local:   local,
		refiner: refiner,
		logger:  logger,
	}, nil
}

type refineOutcome struct {
	partial quality.PartialScores
	err     error
}

// Score builds the full strength report for one document. Refinement
// failure degrades to local scores and is never fatal; local scoring
// failure is.
func (s *Scorer) Score(ctx context.Context, doc *content.Document) (*quality.Report, error) {
	refined := make(chan refineOutcome, 1)
	go func() {
		partial, err := s.refiner.Refine(ctx, refinementInput(doc))
		refined <- refineOutcome{partial: partial, err: err}
	}()

	localScores, localNotes, err := s.local.Score(doc)
	if err != nil {
		return nil, err
	}

	outcome := <-refined
	if outcome.err != nil {
		s.logger.WithError(outcome.err).Warn("llm refinement unavailable, falling back to local scores")
	}

	dims := make(map[quality.Dimension]quality.DimensionScore, len(quality.Dimensions))
	overall := 0.0
	for _, dim := range quality.Dimensions {
		ds := quality.DimensionScore{
			Dimension:  dim,
			LocalScore: localScores[dim],
			Notes:      append([]string(nil), localNotes[dim]...),
		}
		if llm, ok := outcome.partial.Scores[dim]; ok {
			llmScore := llm
			ds.LLMScore = &llmScore
			ds.MergedScore = round2(clampScore(s.cfg.LocalDimensionWeight*ds.LocalScore + s.cfg.LLMDimensionWeight*llm))
			if note := outcome.partial.Notes[dim]; note != "" {
				ds.Notes = append(ds.Notes, note)
			}
		} else {
			ds.MergedScore = ds.LocalScore
			if outcome.err != nil {
				ds.Notes = append(ds.Notes, fallbackNoteUnavailable)
			} else {
				ds.Notes = append(ds.Notes, fallbackNoteOmitted)
			}
		}
		dims[dim] = ds
		overall += ds.MergedScore
	}
	// The sum of 2-decimal merged scores carries float noise; rounding
	// to the same resolution keeps overall equal to the sum exactly.
	overall = round2(overall)

	bias := quality.NotAssessedBias()
	if outcome.err == nil {
		bias = outcome.partial.Bias
	}

	report := &quality.Report{
		OverallScore: overall,
		Grade:        quality.GradeFor(overall),
		Dimensions:   dims,
		MainClaim:    mainClaim(doc),
		Weaknesses:   collectWeaknesses(dims),
		Strengths:    collectStrengths(dims),
		Bias:         bias,
	}

	s.logger.WithFields(logrus.Fields{
		"overall_score": report.OverallScore,
		"grade":         report.Grade,
		"refined":       outcome.err == nil,
	}).Debug("thesis scored")
	return report, nil
}

func refinementInput(doc *content.Document) string {
	if doc.Raw != "" {
		return doc.Raw
	}
	return doc.Text
}

// collectWeaknesses lists dimensions below half credit, weakest first.
func collectWeaknesses(dims map[quality.Dimension]quality.DimensionScore) []quality.Weakness {
	var weaknesses []quality.Weakness
	for _, dim := range quality.Dimensions {
		ds := dims[dim]
		if ds.MergedScore >= quality.MaxDimensionScore/2 {
			continue
		}
		detail := weaknessDetails[dim]
		if len(ds.Notes) > 0 && ds.Notes[0] != fallbackNoteUnavailable && ds.Notes[0] != fallbackNoteOmitted {
			detail = ds.Notes[0]
		}
		weaknesses = append(weaknesses, quality.Weakness{
			Dimension: dim,
			Score:     ds.MergedScore,
			Detail:    detail,
		})
	}
	sort.SliceStable(weaknesses, func(i, j int) bool {
		return weaknesses[i].Score < weaknesses[j].Score
	})
	return weaknesses
}

// collectStrengths lists dimensions at or above 15, strongest first.
func collectStrengths(dims map[quality.Dimension]quality.DimensionScore) []string {
	type ranked struct {
		score  float64
		phrase string
	}
	var hits []ranked
	for _, dim := range quality.Dimensions {
		ds := dims[dim]
		if ds.MergedScore >= 15 {
			hits = append(hits, ranked{score: ds.MergedScore, phrase: strengthPhrases[dim]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	strengths := make([]string, 0, len(hits))
	for _, h := range hits {
		strengths = append(strengths, h.phrase)
	}
	return strengths
}

// mainClaim picks the first declarative sentence that carries an entity
// or a figure; SVO triples and a plain sentence split are fallbacks.
func mainClaim(doc *content.Document) string {
	if doc.Annotations.Available {
		for _, sent := range doc.Annotations.Sentences {
			text := strings.TrimSpace(sent.Text)
			if text == "" || strings.HasSuffix(text, "?") {
				continue
			}
			if sentenceBearsClaim(doc, sent) {
				return text
			}
		}
		for _, t := range doc.Annotations.Triples {
			if !t.Negated && t.Subject != "" && t.Object != "" {
				return strings.Join([]string{t.Subject, t.Verb, t.Object}, " ")
			}
		}
	}
	for _, part := range sentenceSplitPattern.Split(doc.Text, -1) {
		if text := strings.TrimSpace(part); text != "" {
			return text
		}
	}
	return strings.TrimSpace(doc.Text)
}

func sentenceBearsClaim(doc *content.Document, sent content.Sentence) bool {
	for _, e := range doc.Annotations.Entities {
		if e.Start >= sent.Start && e.End <= sent.End {
			return true
		}
	}
	return strings.ContainsAny(sent.Text, "0123456789")
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
