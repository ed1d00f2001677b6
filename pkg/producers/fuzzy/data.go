package fuzzy

// Known scam phrases, including common intentional misspellings used to
// slip past exact keyword rules.
var scamPhrases = []string{
	"guaranteed returns",
	"guaranteed profit",
	"guaranteed monthly returns",
	"double your money",
	"triple your money",
	"risk free profit",
	"risk free investment",
	"no risk investment",
	"sure shot profit",
	"fixed returns daily",
	"get rich quick",
	"easy money scheme",
	"secret formula",
	"insider tip only",
	"insider information",
	"leaked information",
	"foolproof system",
	"foolproof trading",
	"never lose money",
	"always make profit",
	"daily profit guaranteed",
	"hundred percent accurate",
	"hundred percent returns",
	"join my telegram",
	"join my whatsapp",
	"join my premium",
	"deposit in our account",
	"trade on your behalf",
	"send money to my upi",
	"send to my account",
	"pay registration fee",
	"pay joining fee",
	"double yor moni",
	"doubel your money",
	"garanteed returns",
	"guaranted returns",
	"gauranted profit",
	"insyder tips",
	"sekret tips",
	"premium telegraam",
	"premium telegram group",
	"zero risk profit",
	"lakhs daily",
	"earn lakhs",
	"make lakhs",
	"crores monthly",
	"laaast chaance",
	"opshuns traading groop",
	"registrashun closing",
}
