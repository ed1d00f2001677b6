package quality

// Indicator vocabularies for the local dimension heuristics. Tables are
// lowercase because heuristics scan the normalized document text; only
// the clarity ratios read the raw submission.

var citationTerms = []string{
	"according to",
	"reported",
	"annual report",
	"quarterly report",
	"earnings call",
	"press release",
	"guidance",
	"consensus estimate",
	"filing",
	"10-k",
	"10-q",
	"prospectus",
	"investor presentation",
}

var comparativeTerms = []string{
	"compared to",
	"versus",
	"vs",
	"relative to",
	"outperform",
	"underperform",
	"higher than",
	"lower than",
	"year over year",
	"yoy",
	"quarter over quarter",
	"qoq",
	"industry average",
	"peer group",
}

var connectiveTerms = []string{
	"because",
	"therefore",
	"however",
	"moreover",
	"furthermore",
	"consequently",
	"as a result",
	"in addition",
	"on the other hand",
	"given that",
	"this suggests",
	"which means",
	"in contrast",
	"despite",
	"although",
	"thus",
	"first",
	"second",
	"finally",
}

var riskTerms = []string{
	"risk",
	"risks",
	"downside",
	"drawdown",
	"volatility",
	"uncertainty",
	"headwind",
	"headwinds",
	"exposure",
	"bear case",
	"worst case",
	"stop loss",
	"stop-loss",
	"margin of safety",
	"overvalued",
	"competition",
	"competitive pressure",
	"regulatory",
	"recession",
	"default",
	"liquidity",
	"concentration",
}

var hedgeTerms = []string{
	"may",
	"might",
	"could",
	"possibly",
	"likely",
	"unlikely",
	"appears",
	"suggests",
	"estimate",
	"assume",
	"assuming",
	"expect",
	"potential",
	"scenario",
	"probability",
}

var counterargumentTerms = []string{
	"bears argue",
	"the bear case",
	"critics",
	"skeptics",
	"counterargument",
	"on the other hand",
	"one could argue",
	"some argue",
	"pushback",
	"devil's advocate",
}

var positionTerms = []string{
	"buy",
	"sell",
	"hold",
	"accumulate",
	"long",
	"short",
	"overweight",
	"underweight",
	"trim",
	"exit",
	"initiate",
	"position size",
	"allocate",
	"allocation",
}

var targetTerms = []string{
	"price target",
	"target price",
	"target of",
	"fair value",
	"upside of",
	"upside to",
	"intrinsic value",
	"valuation of",
}

var horizonTerms = []string{
	"near term",
	"near-term",
	"long term",
	"long-term",
	"short term",
	"short-term",
	"medium term",
	"time horizon",
	"holding period",
	"over the next",
	"within the next",
	"next quarter",
	"next year",
	"12 months",
	"18 months",
	"24 months",
}

var structureTerms = []string{
	"thesis:",
	"summary:",
	"risks:",
	"valuation:",
	"catalysts:",
	"catalyst",
	"conclusion",
	"key points",
	"recommendation",
	"in summary",
}
