package annotate

// Term tables that drive the heuristic annotator. All matching happens on
// normalized lowercase text.

var warningPhrases = []string{
	"beware", "avoid", "scam alert", "fraud alert", "warning", "warn",
	"be careful", "stay away", "never trust", "don't trust", "dont trust",
	"don't fall", "fall for", "fell for", "falling for", "red flag",
	"red flags", "too good to be true", "ponzi scheme", "classic scam",
	"classic ponzi", "is a scam", "are scams", "definitely a scam",
	"scam warning", "fraud warning", "scammers", "fraudsters", "fraudster",
	"how to spot", "how to identify", "warning signs", "report them",
	"report immediately", "report such", "arrested", "convicted",
	"impersonator", "impersonators", "fact check", "hoax",
	"lost money to", "expensive lesson", "lesson learned",
	"sebi warns", "rbi warns", "investment fraud", "stay safe",
}

var disclaimerPhrases = []string{
	"not financial advice", "nfa", "dyor", "do your own research",
	"consult advisor", "consult a financial advisor", "consult your advisor",
	"subject to market risk", "subject to market risks",
	"for educational purposes", "educational purposes only",
	"past performance", "no guarantee", "no guaranteed returns",
	"there are no guaranteed", "anyone promising otherwise",
	"read all scheme related documents",
	"mutual fund investments are subject",
}

var opinionPhrases = []string{
	"i think", "i believe", "in my opinion", "imo", "imho", "my take",
	"i feel", "personally", "just my opinion", "my view", "i guess",
	"i reckon", "keep in mind", "remember that",
}

var questionLeads = []string{
	"what", "why", "how", "when", "where", "who", "which",
	"is it", "is this", "are these", "are there", "should i", "can i",
	"could i", "does anyone", "do you", "has anyone", "anyone know",
	"would it",
}

var pastIndicators = []string{
	"was", "were", "had", "ago", "used to", "last year", "last month",
	"last week", "back in", "back then", "at the time", "previously",
	"earlier", "yesterday",
}

var negationWords = map[string]bool{
	"not": true, "no": true, "never": true, "don't": true, "dont": true,
	"doesn't": true, "doesnt": true, "didn't": true, "didnt": true,
	"isn't": true, "isnt": true, "wasn't": true, "wasnt": true,
	"aren't": true, "arent": true, "weren't": true, "werent": true,
	"won't": true, "wont": true, "wouldn't": true, "wouldnt": true,
	"can't": true, "cant": true, "cannot": true, "couldn't": true,
	"couldnt": true, "shouldn't": true, "shouldnt": true,
	"nobody": true, "nothing": true, "neither": true, "nor": true,
	"without": true,
}

var orgLexicon = []string{
	"sebi", "rbi", "nse", "bse", "nasdaq", "sec", "amfi", "irdai",
	"hdfc bank", "hdfc", "icici", "sbi", "axis bank", "kotak",
	"reliance", "tata", "infosys", "tcs", "wipro", "adani",
	"zerodha", "groww", "upstox", "paytm",
	"vanguard", "blackrock", "fidelity", "goldman sachs", "jpmorgan",
	"morgan stanley", "berkshire", "berkshire hathaway",
	"tesla", "apple", "nvidia", "microsoft", "amazon", "google", "meta",
	"netflix",
}

var orgSuffixes = map[string]bool{
	"inc": true, "ltd": true, "limited": true, "corp": true,
	"corporation": true, "bank": true, "capital": true, "securities": true,
	"fund": true, "technologies": true, "industries": true, "motors": true,
	"pharma": true, "finance": true, "financial": true, "insurance": true,
	"amc": true, "labs": true,
}

var tickerLexicon = map[string]bool{
	"aapl": true, "tsla": true, "nvda": true, "msft": true, "amzn": true,
	"googl": true, "meta": true, "nflx": true, "amd": true, "intc": true,
	"spy": true, "qqq": true, "voo": true,
}

var gpeLexicon = []string{
	"india", "usa", "america", "china", "japan", "germany", "uk",
	"europe", "asia", "mumbai", "delhi", "bangalore", "bengaluru",
	"chennai", "hyderabad", "pune", "kolkata", "dubai", "singapore",
	"london", "new york",
}

// Verbs that commonly carry investment claims. Tokens ending in -ed or
// -ing are also treated as verbs during triple extraction.
var verbLexicon = map[string]bool{
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"has": true, "have": true, "had": true, "will": true,
	"do": true, "does": true, "did": true,
	"looks": true, "seems": true, "appears": true,
	"think": true, "believe": true, "expect": true, "expects": true,
	"trades": true, "trade": true, "grew": true, "grows": true,
	"beat": true, "beats": true, "missed": true, "misses": true,
	"reports": true, "guarantee": true, "guarantees": true,
	"promise": true, "promises": true, "doubles": true, "gains": true,
	"drops": true, "fell": true, "falls": true, "rose": true,
	"rises": true, "outperform": true, "outperforms": true,
	"holds": true, "hold": true, "buy": true, "sell": true,
	"targets": true, "yields": true, "pays": true, "earns": true,
	"make": true, "makes": true, "give": true, "gives": true,
	"send": true, "join": true, "pay": true,
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "this": true, "that": true,
	"these": true, "those": true, "my": true, "your": true, "our": true,
	"their": true, "its": true, "his": true, "her": true, "of": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"with": true, "by": true, "from": true, "as": true, "and": true,
	"or": true, "but": true, "so": true, "if": true, "then": true,
	"very": true, "really": true, "just": true, "about": true,
	"into": true, "over": true, "under": true, "up": true, "down": true,
	"out": true, "per": true, "any": true, "all": true, "some": true,
	"it": true, "he": true, "she": true, "they": true, "we": true,
	"you": true, "i": true,
}
