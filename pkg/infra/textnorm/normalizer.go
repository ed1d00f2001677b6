package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// leetMap decodes the character substitutions scammers use to slip past
// keyword filters ("gu4r4nteed pr0fit"). Standalone numeric and money
// tokens are preserved so "$100" and "10,000" survive intact.
var leetMap = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'@': 'a',
	'$': 's',
	'!': 'i',
}

var (
	urlPattern     = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	moneyToken     = regexp.MustCompile(`^[$₹]?[\d,]+(\.\d+)?[%$]?$`)
	cashtagToken   = regexp.MustCompile(`^\$[a-z]{1,6}$`)
	whitespace     = regexp.MustCompile(`\s+`)
)

const edgePunct = `.,!?;:"'()[]{}`

// Result carries the normalized text plus what was stripped out of it.
type Result struct {
	Text           string
	OriginalLength int
	URLs           []string
	Mentions       []string
	Hashtags       []string
	HadObfuscation bool
}

// Normalize cleans raw user text into the canonical lowercase form every
// signal producer reads. URLs and mentions are replaced by placeholder
// tokens, unicode is NFKC-folded, leet-speak is decoded and whitespace is
// collapsed. Deterministic.
func Normalize(text string) Result {
	result := Result{OriginalLength: len(text)}

	result.URLs = urlPattern.FindAllString(text, -1)
	text = urlPattern.ReplaceAllString(text, " [URL] ")

	result.Mentions = mentionPattern.FindAllString(text, -1)
	text = mentionPattern.ReplaceAllString(text, " [MENTION] ")

	for _, m := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		result.Hashtags = append(result.Hashtags, m[1])
	}
	text = hashtagPattern.ReplaceAllString(text, "$1")

	text = norm.NFKC.String(text)

	decoded, hadObfuscation := decodeLeet(text)
	result.HadObfuscation = hadObfuscation
	text = decoded

	result.Text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	return result
}

// decodeLeet lowercases the text and maps leet characters back to letters,
// word by word. Words that look like amounts ("$100", "100%", "1,50,000")
// or cashtags ("$nvda") are kept verbatim so money and ticker evidence is
// not mangled, and sentence punctuation at word edges survives so the
// annotator can still find sentence boundaries.
func decodeLeet(text string) (string, bool) {
	words := strings.Fields(strings.ToLower(text))
	decoded := make([]string, 0, len(words))
	changed := false

	for _, word := range words {
		lead, core, trail := splitEdges(word)
		if moneyToken.MatchString(core) || cashtagToken.MatchString(core) {
			decoded = append(decoded, word)
			continue
		}
		mapped := strings.Map(func(r rune) rune {
			if repl, ok := leetMap[r]; ok {
				return repl
			}
			return r
		}, core)
		if mapped != core {
			changed = true
		}
		decoded = append(decoded, lead+mapped+trail)
	}

	return strings.Join(decoded, " "), changed
}

func splitEdges(word string) (lead, core, trail string) {
	core = word
	for len(core) > 0 && strings.ContainsRune(edgePunct, rune(core[0])) {
		lead += string(core[0])
		core = core[1:]
	}
	for len(core) > 0 && strings.ContainsRune(edgePunct, rune(core[len(core)-1])) {
		trail = string(core[len(core)-1]) + trail
		core = core[:len(core)-1]
	}
	return lead, core, trail
}
