package toxicity

// Category term tables matched against normalized lowercase text. One
// match per category counts toward the score.
var severeProfanityTerms = []string{
	"fuck", "fucking", "motherfucker", "asshole", "bastard", "bitch",
	"bullshit", "chutiya", "bhenchod", "madarchod", "haramkhor",
}

var mildProfanityTerms = []string{
	"damn", "crap", "sucks", "wtf", "bloody hell", "screw this",
	"piss off", "nonsense",
}

var personalAttackTerms = []string{
	"you idiot", "you moron", "you fool", "you clown", "dumbass",
	"brainless", "you are stupid", "you are dumb", "loser",
	"know nothing", "pathetic excuse",
}

var threatTerms = []string{
	"i will kill", "i will hurt", "i will find you", "i will destroy you",
	"watch your back", "you will regret", "beat you up", "break your legs",
}

var harassmentTerms = []string{
	"kill yourself", "kys", "nobody wants you here", "get lost",
	"stop posting", "delete your account", "go away forever",
}

var mockeryTerms = []string{
	"what a joke", "laughable", "pathetic", "cry more", "hahaha you",
	"clown show", "embarrassing yourself",
}

var doxxingTerms = []string{
	"phone number is", "home address is", "lives at", "leaked address",
	"i have his address", "i have her address", "personal details below",
}

// Defamation terms count only when the text names a person, company,
// or place, and only outside negated scope.
var defamationTerms = []string{
	"fraud", "fraudster", "scammer", "thief", "crook", "conman",
	"criminal", "cheated investors", "ran away with money",
	"ponzi operator", "money launderer",
}

var hateSpeechPatterns = []string{
	`\bgo back to (your country|where you came from)\b`,
	`\b(all|every)\s+[a-z]+s\s+are\s+(criminals|thieves|scammers|terrorists|vermin)\b`,
	`\b[a-z]+s\s+(don't|dont|do not)\s+deserve to live\b`,
}

// spamIndicatorTerms flag promotional blasts; two or more distinct hits
// count as spam.
var spamIndicatorTerms = []string{
	"click here", "buy now", "limited offer", "subscribe now",
	"free gift", "promo code", "visit my profile", "check my bio",
	"like and share", "follow for more", "link in bio",
}

const (
	severeProfanityScore = 0.6
	mildProfanityScore   = 0.3
	personalAttackScore  = 0.5
	threatScore          = 0.6
	harassmentScore      = 0.6
	mockeryScore         = 0.4
	doxxingScore         = 0.7
	defamationScore      = 0.7
	hateSpeechScore      = 0.6
	spamScore            = 0.3
)
