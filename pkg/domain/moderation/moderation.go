package moderation

type Decision string

const (
	DecisionBlock Decision = "block"
	DecisionFlag  Decision = "flag"
	DecisionPass  Decision = "pass"
)

type IssueType string

const (
	IssueScam         IssueType = "scam"
	IssueFuzzyScam    IssueType = "fuzzy_scam"
	IssueSemanticScam IssueType = "semantic_scam"
	IssueToxicity     IssueType = "toxicity"
	IssueOffTopic     IssueType = "off_topic"
	IssueLowRelevance IssueType = "low_relevance"
	IssueLowSubstance IssueType = "low_substance"
	IssueEmptyContent IssueType = "empty_content"
)

// Issue is one reportable finding behind a verdict. Category carries the
// evidence category of the strongest match (e.g. "money_request",
// "severe_profanity") so suggestions can be more specific than the type.
type Issue struct {
	Type       IssueType `json:"type"`
	Category   string    `json:"category,omitempty"`
	Found      string    `json:"found"`
	Suggestion string    `json:"suggestion"`
	Severity   float64   `json:"severity"`
}

// DomainVerdict is the finance-relevance outcome of the domain gate.
// Derived purely from signals; never mutated after creation.
type DomainVerdict struct {
	RelevanceScore   float64 `json:"relevance_score"`
	IsFinanceRelated bool    `json:"is_finance_related"`
}

// Result is the outcome of one moderation request. Created once, never
// mutated, never persisted.
type Result struct {
	Decision         Decision `json:"decision"`
	RiskScore        float64  `json:"risk_score"`
	IsFinanceRelated bool     `json:"is_finance_related"`
	Issues           []Issue  `json:"issues"`
	Explanation      string   `json:"explanation"`
	CanProceed       bool     `json:"can_proceed"`
}
