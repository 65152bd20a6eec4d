// Package patterns holds the static pattern tables the extractors and
// matchers run against: compiled regular expressions, keyword lists, the
// bank alias table, and the curated merchant dataset. Everything here is
// immutable after package init.
//
// Regexes are kept deliberately flat (no nested quantifiers) so matching
// stays linear in the input length even on adversarial messages.
package patterns

import "regexp"

// AmountPattern pairs a compiled amount regex with the base confidence an
// amount extracted by it starts from. The capture group holds the numeric
// text, commas included.
type AmountPattern struct {
	Name           string
	Regex          *regexp.Regexp
	BaseConfidence float64
}

// AmountPatterns is the ordered list of amount shapes, most reliable first.
// Currency-prefixed forms score highest because a leading currency marker
// almost always introduces the transaction amount rather than a reference
// number or balance.
var AmountPatterns = []AmountPattern{
	{
		Name:           "currency_prefixed",
		Regex:          regexp.MustCompile(`(?i)(?:₹|\b(?:rs\.?|inr))\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
		BaseConfidence: 0.9,
	},
	{
		Name:           "currency_suffixed",
		Regex:          regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*(?:rs\.?|inr|rupees?)\b`),
		BaseConfidence: 0.85,
	},
	{
		Name:           "keyword_preceded",
		Regex:          regexp.MustCompile(`(?i)\b(?:amount|amt|paid|spent|debited|credited|charged|payment)\b(?:\s+of)?[:\s]*(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
		BaseConfidence: 0.8,
	},
	{
		Name:           "decimal_contextual",
		Regex:          regexp.MustCompile(`\b([0-9][0-9,]*\.[0-9]{2})\b`),
		BaseConfidence: 0.6,
	},
}

// BareNumberRegex is the last-resort amount shape used by the fallback scan:
// any bare number, accepted only in a narrow plausible range and only when a
// payment keyword appears in the message.
var BareNumberRegex = regexp.MustCompile(`\b([0-9][0-9,]*(?:\.[0-9]{1,2})?)\b`)

// AmountKeywords are words whose proximity to a numeric match raises the
// confidence that the number is the transaction amount.
var AmountKeywords = []string{
	"amount", "amt", "paid", "spent", "debit", "debited", "credit",
	"credited", "charged", "payment", "purchase", "txn", "transaction",
}

// PaymentKeywords gate the bare-number fallback: a bare number is only
// treated as an amount if the message talks about money movement at all.
var PaymentKeywords = []string{
	"paid", "payment", "purchase", "spent", "debit", "debited",
	"credit", "credited", "txn", "transaction", "transferred", "sent",
}
