package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/producers/relevance"
	"github.com/sirupsen/logrus"
)

const explanationReasonLimit = 3

// Engine turns the producer signals and the domain verdict into one
// moderation result. Pure function of its inputs; deterministic.
type Engine struct {
	cfg    config.ModerationConfig
	logger *logrus.Logger
}

func New(cfg config.ModerationConfig, logger *logrus.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// contribution is one signal's weighted share of the risk score.
type contribution struct {
	issueType moderation.IssueType
	sig       signal.Signal
	weighted  float64
}

// Decide applies the decision table in order, first match wins. Signals
// for disabled or failed producers arrive with score 0.0, never absent.
func (e *Engine) Decide(signals []signal.Signal, verdict moderation.DomainVerdict) moderation.Result {
	byName := make(map[string]signal.Signal, len(signals))
	for _, s := range signals {
		byName[s.Name] = s
	}

	if !verdict.IsFinanceRelated && verdict.RelevanceScore < e.cfg.FinanceFlagThreshold {
		return e.offTopicResult(byName[signal.Relevance], verdict)
	}

	contributions := e.weigh(byName)
	risk := 0.0
	for _, c := range contributions {
		risk = math.Max(risk, c.weighted)
	}
	risk = round3(risk)

	issues := e.collectIssues(contributions, verdict)

	var result moderation.Result
	switch {
	case risk >= e.cfg.BlockThreshold:
		result = moderation.Result{
			Decision:    moderation.DecisionBlock,
			Issues:      issues,
			Explanation: buildExplanation(issues, "blocked"),
		}
	case risk >= e.cfg.FlagThreshold || verdict.RelevanceScore < e.cfg.FinancePassThreshold:
		result = moderation.Result{
			Decision:    moderation.DecisionFlag,
			Issues:      issues,
			Explanation: buildExplanation(issues, "flagged"),
		}
	default:
		result = moderation.Result{
			Decision:    moderation.DecisionPass,
			Explanation: "Content appears safe",
			CanProceed:  true,
		}
	}

	result.RiskScore = risk
	result.IsFinanceRelated = verdict.IsFinanceRelated

	e.logger.WithFields(logrus.Fields{
		"decision":   result.Decision,
		"risk_score": result.RiskScore,
		"relevance":  verdict.RelevanceScore,
		"issues":     len(result.Issues),
	}).Debug("moderation decision")

	return result
}

// weigh applies per-signal adjustments before weighting: the rule signal
// is discounted by its strongest context flag, the toxicity signal is
// zeroed when all its evidence sits in negated scope. Fuzzy and semantic
// scores enter raw.
func (e *Engine) weigh(byName map[string]signal.Signal) []contribution {
	rule := byName[signal.ScamRules]
	fuzzy := byName[signal.Fuzzy]
	semantic := byName[signal.Semantic]
	toxic := byName[signal.Toxicity]

	return []contribution{
		{moderation.IssueScam, rule, rule.Score * rule.Discount() * e.cfg.ScamWeight},
		{moderation.IssueFuzzyScam, fuzzy, fuzzy.Score * e.cfg.FuzzyWeight},
		{moderation.IssueSemanticScam, semantic, semantic.Score * e.cfg.SemanticWeight},
		{moderation.IssueToxicity, toxic, negationAware(toxic) * e.cfg.ToxicityWeight},
	}
}

// collectIssues reports every signal whose weighted score reaches the
// issue threshold, strongest first. A low-relevance issue leads the list
// when the document sits between the finance thresholds.
func (e *Engine) collectIssues(contributions []contribution, verdict moderation.DomainVerdict) []moderation.Issue {
	var issues []moderation.Issue

	if verdict.RelevanceScore < e.cfg.FinancePassThreshold {
		issues = append(issues, moderation.Issue{
			Type:     moderation.IssueLowRelevance,
			Severity: round3(1.0 - verdict.RelevanceScore),
		})
	}

	eligible := make([]contribution, 0, len(contributions))
	for _, c := range contributions {
		if c.weighted >= e.cfg.IssueReportThreshold {
			eligible = append(eligible, c)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].weighted > eligible[j].weighted
	})

	for _, c := range eligible {
		issue := moderation.Issue{
			Type:     c.issueType,
			Severity: round3(c.weighted),
		}
		if top, ok := c.sig.TopEvidence(); ok {
			issue.Category = top.Category
			issue.Found = top.Excerpt
		}
		issues = append(issues, issue)
	}

	return issues
}

func (e *Engine) offTopicResult(rel signal.Signal, verdict moderation.DomainVerdict) moderation.Result {
	issue := moderation.Issue{
		Type:     moderation.IssueOffTopic,
		Severity: round3(1.0 - verdict.RelevanceScore),
	}
	for _, ev := range rel.Evidence {
		if ev.Category == relevance.CategoryOffTopicTerm || ev.Category == relevance.CategoryOffTopicEntity {
			issue.Category = ev.Category
			issue.Found = ev.Excerpt
			break
		}
	}

	e.logger.WithField("relevance", verdict.RelevanceScore).Debug("off-topic block")

	return moderation.Result{
		Decision:         moderation.DecisionBlock,
		RiskScore:        0.0,
		IsFinanceRelated: false,
		Issues:           []moderation.Issue{issue},
		Explanation:      "Content is not related to finance",
	}
}

// negationAware returns the toxicity score unless every evidence entry
// sits in negated scope, in which case the whole signal is zeroed.
func negationAware(sig signal.Signal) float64 {
	if len(sig.Evidence) == 0 {
		return sig.Score
	}
	for _, ev := range sig.Evidence {
		if !ev.Negated() {
			return sig.Score
		}
	}
	return 0.0
}

// buildExplanation names the verdict and the reasons behind the top
// issues, deduplicated in order.
func buildExplanation(issues []moderation.Issue, action string) string {
	if len(issues) == 0 {
		return "Content " + action + " based on risk score"
	}

	limit := explanationReasonLimit
	if len(issues) < limit {
		limit = len(issues)
	}

	seen := make(map[string]bool, limit)
	reasons := make([]string, 0, limit)
	for _, issue := range issues[:limit] {
		reason := issueReason(issue)
		if seen[reason] {
			continue
		}
		seen[reason] = true
		reasons = append(reasons, reason)
	}

	return "Content " + action + ": " + strings.Join(reasons, ", ")
}

func issueReason(issue moderation.Issue) string {
	switch issue.Type {
	case moderation.IssueScam:
		return "scam pattern detected"
	case moderation.IssueFuzzyScam:
		return "misspelled scam phrase detected"
	case moderation.IssueSemanticScam:
		return "similar to known scam"
	case moderation.IssueToxicity:
		if issue.Category != "" {
			return issue.Category + " content"
		}
		return "toxic content"
	case moderation.IssueOffTopic:
		return "not finance related"
	case moderation.IssueLowRelevance:
		return "low finance relevance"
	default:
		return string(issue.Type)
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
