package patterns

import (
	"regexp"

	"golang-sms-analyzer/internal/models"
)

// TypePattern describes how one transaction type shows up in message text:
// primary keywords, secondary regexes, and context keywords that strengthen
// the classification when they co-occur.
type TypePattern struct {
	Type models.TransactionType

	// Keywords are the primary indicators; a keyword hit outranks a regex hit
	Keywords []string

	// Regexes are secondary indicators for abbreviated or structured forms
	Regexes []*regexp.Regexp

	// ContextKeywords each add a small capped bonus when present
	ContextKeywords []string

	// BoostKeywords add a type-specific bonus (e.g. rail keywords for
	// transfers, "atm" for withdrawals)
	BoostKeywords []string
}

// TypePatterns is the per-type classification table. The type extractor
// scores every entry and keeps the best, so ordering here carries no
// precedence meaning.
var TypePatterns = []TypePattern{
	{
		Type:     models.TransactionTypeDebit,
		Keywords: []string{"debited", "debit", "deducted", "spent", "charged"},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bdr\b`),
			regexp.MustCompile(`(?i)debited\s+(?:from|by)`),
			regexp.MustCompile(`(?i)debit\s+of`),
		},
		ContextKeywords: []string{"account", "card", "purchase", "pos", "merchant"},
	},
	{
		Type:     models.TransactionTypeCredit,
		Keywords: []string{"credited", "credit", "received"},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bcr\b`),
			regexp.MustCompile(`(?i)credited\s+to`),
			regexp.MustCompile(`(?i)credit\s+of`),
		},
		ContextKeywords: []string{"account", "salary", "interest", "cashback"},
	},
	{
		Type:     models.TransactionTypeTransfer,
		Keywords: []string{"transferred", "transfer", "sent"},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:upi|imps|neft|rtgs)\b`),
			regexp.MustCompile(`(?i)sent\s+to`),
		},
		ContextKeywords: []string{"beneficiary", "vpa", "a/c"},
		BoostKeywords:   []string{"upi", "imps", "neft", "rtgs"},
	},
	{
		Type:     models.TransactionTypeRefund,
		Keywords: []string{"refunded", "refund", "reversal", "reversed"},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)refund\s+(?:of|for)`),
		},
		ContextKeywords: []string{"credited", "returned", "cancelled", "order"},
	},
	{
		Type:     models.TransactionTypePayment,
		Keywords: []string{"payment", "paid", "recharge"},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)payment\s+of`),
			regexp.MustCompile(`(?i)bill\s+(?:paid|payment)`),
		},
		ContextKeywords: []string{"bill", "towards", "successful", "merchant"},
	},
	{
		Type:     models.TransactionTypeWithdrawal,
		Keywords: []string{"withdrawn", "withdrawal"},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)cash\s+withdrawal`),
			regexp.MustCompile(`(?i)\batm\b.*(?:withdrawn|withdrawal|cash)`),
		},
		ContextKeywords: []string{"cash", "dispensed"},
		BoostKeywords:   []string{"atm"},
	},
	{
		Type:     models.TransactionTypeDeposit,
		Keywords: []string{"deposited", "deposit"},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)cash\s+deposit`),
			regexp.MustCompile(`(?i)cheque\s+(?:deposit|credited)`),
		},
		ContextKeywords: []string{"branch", "cash", "cheque", "cdm"},
	},
}

// TypeInferencePhrases are broader indicator phrases used by the context
// inference fallback when no direct keyword or regex matched. Results from
// this table are capped at low confidence.
var TypeInferencePhrases = map[models.TransactionType][]string{
	models.TransactionTypeDebit:      {"purchase of", "spent at", "shopping at", "pos txn"},
	models.TransactionTypeCredit:     {"salary", "has been added", "deposited in your", "received from"},
	models.TransactionTypeTransfer:   {"sent money", "money transfer", "to vpa"},
	models.TransactionTypePayment:    {"bill of", "towards your", "recharge of"},
	models.TransactionTypeWithdrawal: {"cash at", "from atm"},
}
