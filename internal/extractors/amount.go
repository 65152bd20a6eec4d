package extractors

import (
	"strings"

	"golang-sms-analyzer/internal/models"
	"golang-sms-analyzer/internal/patterns"
	"golang-sms-analyzer/pkg/logger"

	"github.com/shopspring/decimal"
)

const (
	// amountAcceptThreshold stops the pattern cascade early once a
	// sufficiently confident match is found
	amountAcceptThreshold = 0.8

	// keywordWindow is the number of characters around a numeric match
	// scanned for amount keywords
	keywordWindow = 40

	amountKeywordBonus  = 0.05
	plausibleRangeBonus = 0.05
	implausiblePenalty  = 0.2
	decimalBonus        = 0.03

	// fallbackConfidence is the fixed confidence of the bare-number scan
	fallbackConfidence = 0.35
)

// Plausibility bounds for transaction amounts, in local currency units.
var (
	plausibleMin = decimal.NewFromInt(1)
	plausibleMax = decimal.NewFromInt(1_000_000)

	// Narrower range for the bare-number fallback
	fallbackMin = decimal.NewFromInt(10)
	fallbackMax = decimal.NewFromInt(500_000)

	// Hard validation ceiling; anything above is rejected outright
	maxValidAmount = decimal.NewFromInt(10_000_000)
)

// AmountExtractor extracts the transaction amount from message text using
// an ordered list of numeric patterns plus a keyword-gated fallback scan.
type AmountExtractor struct {
	log logger.Logger
}

// NewAmountExtractor creates an amount extractor
func NewAmountExtractor() *AmountExtractor {
	return &AmountExtractor{
		log: logger.WithComponent("amount_extractor"),
	}
}

// Extract returns the best amount candidate found in the text. An empty
// result means no plausible amount was found; it is never an error.
func (e *AmountExtractor) Extract(text string) models.ExtractionResult[decimal.Decimal] {
	if strings.TrimSpace(text) == "" {
		return models.NoMatch[decimal.Decimal]()
	}

	strategies := make([]Strategy[decimal.Decimal], 0, len(patterns.AmountPatterns)+1)
	for _, pattern := range patterns.AmountPatterns {
		strategies = append(strategies, e.patternStrategy(pattern))
	}
	strategies = append(strategies, e.bareNumberFallback)

	result := Cascade(text, amountAcceptThreshold, strategies...)
	if result.HasValue() {
		e.log.WithFields(logger.Fields{
			"amount":     result.Value.String(),
			"method":     result.Method,
			"confidence": result.Confidence,
		}).Debug("amount extracted")
	}

	return result
}

// patternStrategy builds the extraction strategy for one amount pattern
func (e *AmountExtractor) patternStrategy(pattern patterns.AmountPattern) Strategy[decimal.Decimal] {
	return func(text string) models.ExtractionResult[decimal.Decimal] {
		loc := pattern.Regex.FindStringSubmatchIndex(text)
		if loc == nil || loc[2] < 0 {
			return models.NoMatch[decimal.Decimal]()
		}

		raw := text[loc[2]:loc[3]]
		amount, err := models.ParseAmountString(raw)
		if err != nil {
			return models.NoMatch[decimal.Decimal]()
		}

		if !validAmount(amount) {
			return models.NoMatch[decimal.Decimal]()
		}

		confidence := pattern.BaseConfidence

		if hasKeywordNearby(text, loc[0], loc[1], patterns.AmountKeywords) {
			confidence += amountKeywordBonus
		}

		if amount.GreaterThanOrEqual(plausibleMin) && amount.LessThanOrEqual(plausibleMax) {
			confidence += plausibleRangeBonus
		} else {
			confidence -= implausiblePenalty
		}

		if strings.Contains(raw, ".") {
			confidence += decimalBonus
		}

		return models.Extracted(amount, confidence, text[loc[0]:loc[1]], pattern.Name)
	}
}

// bareNumberFallback scans for any bare number in a narrow plausible range,
// accepted only when the message mentions a payment keyword at all.
func (e *AmountExtractor) bareNumberFallback(text string) models.ExtractionResult[decimal.Decimal] {
	lower := strings.ToLower(text)
	if !containsAny(lower, patterns.PaymentKeywords) {
		return models.NoMatch[decimal.Decimal]()
	}

	for _, loc := range patterns.BareNumberRegex.FindAllStringSubmatchIndex(text, -1) {
		raw := text[loc[2]:loc[3]]
		amount, err := models.ParseAmountString(raw)
		if err != nil {
			continue
		}

		if amount.GreaterThanOrEqual(fallbackMin) && amount.LessThanOrEqual(fallbackMax) {
			return models.Extracted(amount, fallbackConfidence, raw, "bare_number_fallback")
		}
	}

	return models.NoMatch[decimal.Decimal]()
}

// validAmount rejects non-positive and implausibly large values. decimal
// parsing already excludes non-finite input.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.LessThanOrEqual(maxValidAmount)
}

// hasKeywordNearby checks for any keyword within a fixed window around the
// match span.
func hasKeywordNearby(text string, start, end int, keywords []string) bool {
	from := start - keywordWindow
	if from < 0 {
		from = 0
	}
	to := end + keywordWindow
	if to > len(text) {
		to = len(text)
	}

	window := strings.ToLower(text[from:to])
	return containsAny(window, keywords)
}

// containsAny reports whether any keyword occurs in the (lowercased) text
func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
