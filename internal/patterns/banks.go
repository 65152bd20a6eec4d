package patterns

import "regexp"

// BankAliases maps the short names banks use in SMS sender IDs and message
// bodies to their canonical institution names. Keys are lowercase.
var BankAliases = map[string]string{
	"sbi":      "State Bank of India",
	"hdfc":     "HDFC Bank",
	"icici":    "ICICI Bank",
	"axis":     "Axis Bank",
	"kotak":    "Kotak Mahindra Bank",
	"pnb":      "Punjab National Bank",
	"bob":      "Bank of Baroda",
	"canara":   "Canara Bank",
	"idfc":     "IDFC First Bank",
	"yes bank": "Yes Bank",
	"indusind": "IndusInd Bank",
	"federal":  "Federal Bank",
	"rbl":      "RBL Bank",
	"citi":     "Citibank",
	"hsbc":     "HSBC",
}

// LastFourRegex extracts candidate last-four digit groups. Messages often
// mask the number ("XX6789", "ending 6789"), so any standalone 4-digit run
// is a candidate.
var LastFourRegex = regexp.MustCompile(`(?:[Xx*]{2,}|\b)([0-9]{4})\b`)

// AccountPhraseRegex matches the looser "account/savings/current ... 1234"
// phrasing used by the third account-matching strategy.
var AccountPhraseRegex = regexp.MustCompile(`(?i)\b(?:account|a/c|ac|savings|current)\b[^0-9]{0,20}([0-9]{4})\b`)

// CardPhraseRegex matches card-specific phrasing: "credit card xx1234",
// "debit card ending 1234", "visa 1234".
var CardPhraseRegex = regexp.MustCompile(`(?i)\b(?:credit|debit|visa|master(?:card)?|rupay)\s*(?:card)?\b[^0-9]{0,20}([0-9]{4})\b`)

// AccountContextKeywords raise name-based bank match confidence when the
// message is clearly transactional.
var AccountContextKeywords = []string{
	"account", "a/c", "card", "debited", "credited", "balance", "txn", "transaction",
}
