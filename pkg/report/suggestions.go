package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const excerptLimit = 80

// suggestionTemplate pairs a lookup key with its remediation line. Keys
// are checked in order by substring containment, so specific categories
// sit above the generic ones.
type suggestionTemplate struct {
	key    string
	render func(matched string) string
}

var suggestionTemplates = []suggestionTemplate{
	{"severe_profanity", func(m string) string {
		return fmt.Sprintf("Remove the profane language: \"%s\". Use professional language instead.", m)
	}},
	{"mild_profanity", func(m string) string {
		return fmt.Sprintf("Consider removing \"%s\" for a more professional tone.", m)
	}},
	{"personal_attack", func(m string) string {
		return fmt.Sprintf("Remove the personal attack: \"%s\". Focus on the investment argument.", m)
	}},
	{"hate_speech", func(string) string {
		return "Remove hate speech content. This type of language is not acceptable."
	}},
	{"threat", func(m string) string {
		return fmt.Sprintf("Remove threatening language: \"%s\". Keep content civil.", m)
	}},
	{"harassment", func(m string) string {
		return fmt.Sprintf("Remove harassment: \"%s\". Maintain respectful discourse.", m)
	}},
	{"defamation", func(m string) string {
		return fmt.Sprintf("Remove potentially defamatory statement about: \"%s\".", m)
	}},
	{"scam", func(m string) string {
		return fmt.Sprintf("Remove scam-like language: \"%s\". Avoid guaranteed returns claims.", m)
	}},
	{"off_topic", func(string) string {
		return "Ensure your content focuses on investment analysis and financial strategy."
	}},
	{"low_finance_relevance", func(string) string {
		return "Add more specific financial data, metrics, and investment reasoning."
	}},
	{"external_redirect", func(m string) string {
		return fmt.Sprintf("Remove external links or contact info: \"%s\".", m)
	}},
	{"spam", func(string) string {
		return "Remove promotional content and marketing language."
	}},
}

// suggestionFor picks the remediation line for an issue. The evidence
// category is consulted before the issue type, so a scam hit on an
// external-redirect pattern gets the link-specific advice.
func suggestionFor(issue moderation.Issue) string {
	matched := issue.Found
	if s, ok := lookupTemplate(issue.Category, matched); ok {
		return s
	}
	if s, ok := lookupTemplate(typeKey(issue.Type), matched); ok {
		return s
	}
	return fmt.Sprintf("Review and revise: \"%s...\"", runeTruncate(matched, 50))
}

func lookupTemplate(key, matched string) (string, bool) {
	if key == "" {
		return "", false
	}
	for _, tpl := range suggestionTemplates {
		if strings.Contains(key, tpl.key) {
			return tpl.render(matched), true
		}
	}
	return "", false
}

func typeKey(t moderation.IssueType) string {
	switch t {
	case moderation.IssueScam, moderation.IssueFuzzyScam, moderation.IssueSemanticScam:
		return "scam"
	case moderation.IssueLowRelevance:
		return "low_finance_relevance"
	default:
		return string(t)
	}
}

// wireIssueType humanizes the issue for the response body, using the
// evidence category for toxicity so "Severe Profanity" reads better
// than a bare "Toxicity".
func wireIssueType(issue moderation.Issue) string {
	switch issue.Type {
	case moderation.IssueFuzzyScam:
		return "Scam (Misspelled)"
	case moderation.IssueSemanticScam:
		return "Similar To Scam"
	case moderation.IssueLowRelevance:
		return "Low Finance Relevance"
	case moderation.IssueToxicity:
		if issue.Category != "" {
			return titleCase(issue.Category)
		}
		return "Toxicity"
	default:
		return titleCase(string(issue.Type))
	}
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// locateExcerpt finds the matched term in the submitted text and returns
// it with the submitter's casing. Single short words extend to the full
// word they start ("fraud" finds "Fraudster"); phrases match verbatim.
func locateExcerpt(submitted, term string) string {
	term = strings.TrimSpace(term)
	if term == "" || submitted == "" {
		return runeTruncate(term, excerptLimit)
	}

	lowerText := strings.ToLower(submitted)
	lowerTerm := strings.ToLower(term)

	if !strings.Contains(lowerTerm, " ") && len(lowerTerm) <= 20 {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(lowerTerm) + `\w*\b`)
		if err == nil {
			if loc := re.FindStringIndex(lowerText); loc != nil {
				return runeTruncate(submitted[loc[0]:loc[1]], excerptLimit)
			}
		}
	}

	if pos := strings.Index(lowerText, lowerTerm); pos >= 0 {
		end := pos + len(lowerTerm)
		if end > len(submitted) {
			end = len(submitted)
		}
		return runeTruncate(submitted[pos:end], excerptLimit)
	}
	return runeTruncate(term, excerptLimit)
}

func runeTruncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
