package patterns

import "regexp"

// MerchantTemplate pairs a syntactic capture template with the base
// confidence a merchant extracted by it starts from. The capture group is
// greedy over merchant-ish characters; the extractor truncates the capture
// at the first transactional stop word, since RE2 has no lookahead.
type MerchantTemplate struct {
	Name           string
	Regex          *regexp.Regexp
	BaseConfidence float64
}

// merchantChars is the character class a merchant capture may span
const merchantChars = `[A-Za-z0-9][A-Za-z0-9 .&'@_-]*`

// MerchantTemplates is the ordered list of capture templates, most reliable
// first. The instant-payment form and explicit prepositions score highest.
var MerchantTemplates = []MerchantTemplate{
	{
		Name:           "upi_prefixed",
		Regex:          regexp.MustCompile(`(?i)\b(?:pay|upi)/(` + merchantChars + `)`),
		BaseConfidence: 0.9,
	},
	{
		Name:           "paid_to",
		Regex:          regexp.MustCompile(`(?i)\bpaid\s+to\s+(` + merchantChars + `)`),
		BaseConfidence: 0.85,
	},
	{
		Name:           "spent_at",
		Regex:          regexp.MustCompile(`(?i)\bspent\s+at\s+(` + merchantChars + `)`),
		BaseConfidence: 0.85,
	},
	{
		Name:           "at",
		Regex:          regexp.MustCompile(`(?i)\bat\s+(` + merchantChars + `)`),
		BaseConfidence: 0.8,
	},
	{
		Name:           "from",
		Regex:          regexp.MustCompile(`(?i)\bfrom\s+(` + merchantChars + `)`),
		BaseConfidence: 0.75,
	},
	{
		Name:           "to",
		Regex:          regexp.MustCompile(`(?i)\bto\s+(` + merchantChars + `)`),
		BaseConfidence: 0.75,
	},
	{
		Name:           "debited_by",
		Regex:          regexp.MustCompile(`(?i)\bdebited\s+by\s+(` + merchantChars + `)`),
		BaseConfidence: 0.7,
	},
	{
		Name:           "charged_by",
		Regex:          regexp.MustCompile(`(?i)\bcharged\s+by\s+(` + merchantChars + `)`),
		BaseConfidence: 0.7,
	},
	{
		Name:           "domain",
		Regex:          regexp.MustCompile(`(?i)\b([a-z0-9][a-z0-9-]*\.(?:com|in|co|io|net|org)(?:\.[a-z]{2})?)\b`),
		BaseConfidence: 0.7,
	},
	{
		Name:           "caps_code",
		Regex:          regexp.MustCompile(`\b([A-Z][A-Z0-9&]{2,}(?:\s+[A-Z][A-Z0-9&]{2,}){0,2})\b`),
		BaseConfidence: 0.4,
	},
}

// MerchantStopWords end a merchant capture: once one of these words is hit,
// the rest of the capture belongs to the transactional boilerplate, not the
// merchant name.
var MerchantStopWords = []string{
	"on", "for", "via", "using", "from", "to", "of", "rs", "inr",
	"ref", "refno", "txn", "avl", "bal", "dated", "dt", "upi", "a/c",
	"ac", "is", "was", "has", "your", "card", "account", "not", "info",
	"paid", "payment", "debited", "credited", "spent", "charged",
	"successful", "completed", "received",
}

// AmountTokenRegex recognizes an amount or date shaped token inside a
// merchant capture; truncation stops there since the merchant name is over.
var AmountTokenRegex = regexp.MustCompile(`(?i)^(?:rs\.?|inr|₹)?[0-9][0-9.,:/-]*$`)

// MerchantExcludeWords disqualify a capture entirely: these are banking
// boilerplate terms that can never be a merchant name.
var MerchantExcludeWords = []string{
	"bank", "account", "transaction", "statement", "balance",
	"available", "limit", "credit", "debit", "card", "upi", "imps",
	"neft", "rtgs", "atm", "alert", "otp", "ref", "txn", "branch",
	"customer", "helpline", "charges", "wallet", "sms",
}

// MerchantGenericWords attract a small confidence penalty: they are real
// merchant words but too generic to identify one.
var MerchantGenericWords = []string{
	"store", "shop", "mart", "retail", "services", "solutions", "enterprises",
}

// SpendKeywords gate the capitalized-token fallback: a bare capitalized
// phrase only counts as a merchant when the message talks about spending.
var SpendKeywords = []string{
	"spent", "purchase", "purchased", "paid", "payment", "bought", "shopping",
}

// CapitalizedPhraseRegex matches a multi-word capitalized token for the
// last-resort merchant fallback.
var CapitalizedPhraseRegex = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)

// DomainSuffixRegex strips protocol prefixes and common TLD suffixes when
// cleaning a captured merchant string.
var DomainSuffixRegex = regexp.MustCompile(`(?i)\.(?:com|in|co|io|net|org)(?:\.[a-z]{2})?$`)

// ProtocolPrefixRegex strips leading URL scheme and www markers
var ProtocolPrefixRegex = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?`)

// NumericOnlyRegex recognizes captures that are digits and separators only
var NumericOnlyRegex = regexp.MustCompile(`^[0-9 .,/-]+$`)

// DateShapedRegex recognizes captures that look like a date or time token
// rather than a merchant name.
var DateShapedRegex = regexp.MustCompile(`^[0-9]{1,4}([/.:-][0-9]{1,4}){1,2}$`)
