package relevance

// Finance vocabulary grouped by category. Categories in strongCategories
// mark a document as finance on a single unambiguous hit.
var vocabularyCategories = map[string][]string{
	"investing": {
		"invest", "investment", "investing", "investor", "portfolio",
		"diversification", "asset allocation", "compounding", "sip",
		"lumpsum", "equity", "returns", "cagr", "wealth",
		"long term investing", "value investing", "passive income",
		"risk",
	},
	"stock_market": {
		"stock", "stocks", "share", "shares", "stock market", "sensex",
		"nifty", "ipo", "listing", "delisting", "market cap", "midcap",
		"smallcap", "largecap", "bluechip", "index", "etf", "futures",
		"options", "derivatives", "intraday", "short selling",
		"offering",
	},
	"mutual_funds": {
		"mutual fund", "mutual funds", "nav", "expense ratio", "amc",
		"index fund", "elss", "debt fund", "liquid fund", "hybrid fund",
		"exit load", "folio",
	},
	"banking": {
		"bank", "banking", "fixed deposit", "recurring deposit", "fd",
		"savings account", "current account", "neft", "rtgs", "upi",
		"credit card", "debit card", "loan", "emi", "interest rate",
		"repo rate", "mortgage", "collateral", "bond", "premium",
		"security",
	},
	"trading": {
		"trading", "trader", "trade", "chart", "candlestick", "breakout",
		"stop loss", "entry price", "exit price", "swing trading",
		"scalping", "leverage", "margin", "brokerage", "demat",
		"buy", "sell", "buying", "selling", "target", "price",
	},
	"crypto": {
		"crypto", "cryptocurrency", "bitcoin", "ethereum", "blockchain",
		"altcoin", "stablecoin", "defi", "wallet", "exchange",
	},
	"metrics": {
		"revenue", "earnings", "ebitda", "eps", "pe ratio", "pb ratio",
		"roe", "roce", "dividend", "dividend yield", "cash flow",
		"balance sheet", "income statement", "operating margin",
		"net profit", "gross margin", "book value", "valuation",
		"guidance", "quarterly results", "profit", "loss", "cost",
	},
	"regulators": {
		"sebi", "rbi", "irdai", "amfi", "nse", "bse", "nasdaq", "sec",
		"federal reserve", "fomc",
	},
	"brands": {
		"hdfc", "icici", "sbi", "kotak", "axis bank", "zerodha", "groww",
		"upstox", "vanguard", "blackrock", "fidelity", "goldman sachs",
		"jpmorgan", "morgan stanley", "berkshire hathaway", "reliance",
		"tata", "infosys", "tcs", "wipro", "adani",
	},
	"technical": {
		"rsi", "macd", "moving average", "bollinger", "fibonacci",
		"support level", "resistance level", "volume", "momentum",
		"trendline", "oversold", "overbought", "support",
	},
	"fundamental_analysis": {
		"fundamentals", "fundamental analysis", "annual report",
		"promoter holding", "institutional holding", "moat",
		"competitive advantage", "intrinsic value", "margin of safety",
		"undervalued", "overvalued", "thesis", "investment thesis",
	},
	"safety": {
		"scam", "fraud", "ponzi", "pyramid scheme", "insider trading",
		"pump and dump", "money laundering", "phishing",
	},
	"career": {
		"chartered accountant", "financial analyst", "fund manager",
		"wealth manager", "financial advisor", "actuary", "cfa",
	},
	"personal_finance": {
		"budget", "budgeting", "savings", "retirement", "pension",
		"insurance", "term insurance", "health insurance", "tax",
		"income tax", "tds", "80c", "nps", "ppf", "epf", "gratuity",
		"emergency fund", "net worth", "inflation", "paid", "rs",
		"rupees", "inr",
	},
}

// offTopicTerms mark drift into non-finance domains and penalize
// relevance per unique hit.
var offTopicTerms = []string{
	"recipe", "cooking", "baking", "ingredients", "delicious", "cuisine",
	"restaurant", "wedding", "honeymoon", "bridal",
	"movie", "film", "bollywood", "hollywood", "actor", "actress",
	"trailer", "netflix series", "web series", "episode",
	"cricket", "football", "ipl match", "tournament", "goal", "wicket",
	"gaming", "playstation", "xbox", "fortnite", "minecraft",
	"haircut", "makeup", "skincare", "fashion",
	"vacation", "itinerary", "sightseeing", "resort",
	"homework", "assignment", "exam syllabus",
	"gym", "workout", "protein", "yoga",
	"iphone", "android", "smartphone", "laptop review",
	"election", "parliament", "minister", "politician",
}

// highPriorityTerms add a fixed boost per hit; these almost never occur
// outside finance discussions.
var highPriorityTerms = []string{
	"sip", "nifty", "sensex", "demat", "elss", "ebitda", "roce",
	"mutual fund", "stock market", "dividend yield", "pe ratio",
	"investment thesis", "intrinsic value", "sebi", "rbi",
	"fixed deposit", "expense ratio", "insider trading",
}

// ambiguousTerms are common general English; alone they never establish
// finance relevance ("budget hotel", "support your team").
var ambiguousTerms = map[string]bool{
	"budget": true, "loss": true, "support": true, "target": true,
	"profit": true, "risk": true, "offering": true, "bond": true,
	"security": true, "selling": true, "sell": true, "buy": true,
	"buying": true, "paid": true, "premium": true, "rs": true,
	"rupees": true, "inr": true, "cost": true, "price": true,
}

var strongCategories = map[string]bool{
	"brands":               true,
	"career":               true,
	"technical":            true,
	"regulators":           true,
	"safety":               true,
	"metrics":              true,
	"fundamental_analysis": true,
	"stock_market":         true,
	"investing":            true,
}

// Entity texts never counted toward the entity boost.
var ignoredEntityTexts = map[string]bool{
	"dm": true, "pm": true, "admin": true,
}
