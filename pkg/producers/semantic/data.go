package semantic

// Scam template sentences embedded once and compared against submissions
// by cosine similarity. Grouped by the pitch they represent.
var scamTemplates = []string{
	// Guaranteed returns
	"Join my group for guaranteed returns every month",
	"I guarantee you will make profit with my tips",
	"Get assured returns on your investment",
	"100 percent guaranteed profit in stock market",

	// Double money schemes
	"Double your money in just a few days",
	"Multiply your capital quickly with us",
	"Turn your investment into twice the amount",
	"Your money will grow 2x in short time",

	// Insider information
	"I have insider information about a stock",
	"Secret tip that will make you rich",
	"Confidential information from company insiders",
	"This stock will jump because of leaked news",

	// Risk-free claims
	"This is a completely risk-free investment",
	"Zero risk way to make money in stocks",
	"There is no chance of losing money here",
	"Safe investment with guaranteed profits",

	// Money requests
	"Send money to my account to join",
	"Pay the registration fee to my UPI",
	"Transfer funds to start making money",
	"Deposit amount in our trading pool",

	// Urgency and FOMO
	"Last chance to join our exclusive group",
	"Limited spots available act now",
	"This opportunity will not come again",
	"Hurry up before its too late",

	// Trading on behalf
	"We will trade on your behalf and give profits",
	"Just give us your capital we do the rest",
	"Let us handle your money for guaranteed returns",

	// Unrealistic daily returns
	"Make thousands of rupees every day from home",
	"Earn daily income through our trading system",
	"Get fixed daily returns on investment",

	// VIP and premium groups
	"Join our VIP telegram for premium stock tips",
	"Our premium members make lakhs every month",
	"Exclusive signals for VIP members only",
}
