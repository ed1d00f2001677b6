package scamrules

// Keyword tables are matched against normalized lowercase text. Weights
// follow the severity tiers; per-document score is the clamped sum.
const (
	highSeverityWeight   = 0.8
	mediumSeverityWeight = 0.5
	lowSeverityWeight    = 0.3
	moneyRequestWeight   = 0.8
	regexPatternWeight   = 0.7
	solicitationWeight   = 0.6
	mlmWeight            = 0.8
)

var highSeverityKeywords = []string{
	"guaranteed returns", "guaranteed profit", "guaranteed income",
	"guaranteed monthly returns", "assured returns", "assured profit",
	"double your money", "triple your money", "risk free profit",
	"risk free investment", "no risk investment", "zero risk profit",
	"sure shot profit", "sure shot call", "sure shot tips",
	"insider information", "insider tips", "leaked information",
	"never lose money", "always make profit", "fixed returns daily",
	"daily profit guaranteed", "hundred percent returns",
	"hundred percent accurate",
}

var mediumSeverityKeywords = []string{
	"get rich quick", "easy money", "quick money", "secret formula",
	"secret strategy", "foolproof system", "foolproof trading",
	"premium calls", "vip calls", "vip group", "premium telegram group",
	"exclusive signals", "jackpot calls", "multibagger tips",
	"money back guarantee",
}

var lowSeverityKeywords = []string{
	"act now", "act fast", "limited seats", "limited spots",
	"last chance", "hurry up", "dont miss", "don't miss",
	"once in a lifetime", "instant profit", "daily income",
}

var moneyRequestKeywords = []string{
	"send money", "transfer money", "deposit in our account",
	"send to my account", "send to my upi", "send money to my upi",
	"registration fee", "joining fee", "membership fee",
	"pay upfront", "advance payment", "deposit amount",
}

// Regex rules run against the normalized text, which is lowercase, so the
// patterns carry no case classes.
var unrealisticReturnPatterns = []string{
	`\b\d{2,}(\.\d+)?\s*%\s*(guaranteed\s+)?(returns?|profits?|gains?|interest)\b`,
	`\b(returns?|profits?|gains?)\s+(of\s+)?\d{2,}(\.\d+)?\s*%`,
	`\b\d+x\s+(returns?|profits?|gains?|growth)\b`,
	`\b(earn|make)\s+(lakhs?|crores?)\b`,
	`\b(lakhs?|crores?)\s+(daily|weekly|monthly)\b`,
}

var externalRedirectPatterns = []string{
	`\b(t\.me|wa\.me|bit\.ly|tinyurl\.com)/[\w-]+`,
	`\b(dm|message|msg|text|ping)\s+(me|us)\s+on\s+(telegram|whatsapp|instagram|insta|signal)\b`,
}

var solicitationPatterns = []string{
	`\bjoin\s+(my|our)\s+(premium\s+|vip\s+|private\s+|paid\s+)?(telegram|whatsapp|discord|signal)\s*(group|channel)?\b`,
	`\b(dm|message|msg|ping)\s+(me|us)\s+(on|at|for)\b`,
	`\binbox\s+me\b`,
	`\bcontact\s+(me|us)\s+for\s+(tips|calls|signals)\b`,
}

var mlmPatterns = []string{
	`\b(downline|upline|network marketing|chain marketing)\b`,
	`\b(refer and earn|referral income|earn from referrals)\b`,
	`\b(recruit|add)\s+(new\s+)?members\b`,
}
