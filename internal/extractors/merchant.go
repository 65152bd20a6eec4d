package extractors

import (
	"strings"
	"unicode"

	"golang-sms-analyzer/internal/models"
	"golang-sms-analyzer/internal/patterns"
	"golang-sms-analyzer/pkg/logger"
)

const (
	merchantAcceptThreshold = 0.8

	merchantMinLength = 2
	merchantMaxLength = 50

	merchantLengthBonus    = 0.05
	merchantCapsBonus      = 0.05
	merchantContextBonus   = 0.05
	merchantGenericPenalty = 0.1

	merchantFallbackConfidence = 0.35
)

// RawMerchantExtractor pulls the raw merchant string out of message text
// using ordered syntactic templates ("at X", "paid to X", UPI forms, bare
// domains). Captures are truncated at the first transactional stop word and
// cleaned before scoring; the output is still raw in the sense that it has
// not been resolved against known merchants.
type RawMerchantExtractor struct {
	log logger.Logger
}

// NewRawMerchantExtractor creates a raw merchant extractor
func NewRawMerchantExtractor() *RawMerchantExtractor {
	return &RawMerchantExtractor{
		log: logger.WithComponent("merchant_extractor"),
	}
}

// Extract returns the best merchant candidate found in the text
func (e *RawMerchantExtractor) Extract(text string) models.ExtractionResult[string] {
	if strings.TrimSpace(text) == "" {
		return models.NoMatch[string]()
	}

	strategies := make([]Strategy[string], 0, len(patterns.MerchantTemplates)+1)
	for _, template := range patterns.MerchantTemplates {
		strategies = append(strategies, e.templateStrategy(template))
	}
	strategies = append(strategies, e.capitalizedFallback)

	return Cascade(text, merchantAcceptThreshold, strategies...)
}

// templateStrategy builds the extraction strategy for one capture template
func (e *RawMerchantExtractor) templateStrategy(template patterns.MerchantTemplate) Strategy[string] {
	return func(text string) models.ExtractionResult[string] {
		loc := template.Regex.FindStringSubmatchIndex(text)
		if loc == nil || loc[2] < 0 {
			return models.NoMatch[string]()
		}

		capture := truncateAtStopWord(text[loc[2]:loc[3]])
		cleaned := CleanMerchant(capture)
		if !acceptableMerchant(cleaned) {
			return models.NoMatch[string]()
		}

		confidence := template.BaseConfidence

		if len(cleaned) >= 3 && len(cleaned) <= 30 {
			confidence += merchantLengthBonus
		}

		if startsCapitalized(cleaned) {
			confidence += merchantCapsBonus
		}

		if hasKeywordNearby(text, loc[0], loc[1], patterns.PaymentKeywords) {
			confidence += merchantContextBonus
		}

		if containsAny(strings.ToLower(cleaned), patterns.MerchantGenericWords) {
			confidence -= merchantGenericPenalty
		}

		return models.Extracted(cleaned, confidence, text[loc[0]:loc[1]], template.Name)
	}
}

// capitalizedFallback accepts a capitalized multi-word token when the
// message clearly talks about spending, at low confidence.
func (e *RawMerchantExtractor) capitalizedFallback(text string) models.ExtractionResult[string] {
	lower := strings.ToLower(text)
	if !containsAny(lower, patterns.SpendKeywords) {
		return models.NoMatch[string]()
	}

	match := patterns.CapitalizedPhraseRegex.FindStringSubmatch(text)
	if match == nil {
		return models.NoMatch[string]()
	}

	cleaned := CleanMerchant(match[1])
	if !acceptableMerchant(cleaned) {
		return models.NoMatch[string]()
	}

	return models.Extracted(cleaned, merchantFallbackConfidence, match[1], "capitalized_fallback")
}

// truncateAtStopWord cuts a capture at the first transactional stop word,
// keeping only the leading merchant-ish words.
func truncateAtStopWord(capture string) string {
	words := strings.Fields(capture)
	kept := words[:0]

	for _, word := range words {
		normalized := strings.ToLower(strings.Trim(word, ".,;:!?"))
		if isStopWord(normalized) || patterns.AmountTokenRegex.MatchString(normalized) {
			break
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

func isStopWord(word string) bool {
	for _, stop := range patterns.MerchantStopWords {
		if word == stop {
			return true
		}
	}
	return false
}

// CleanMerchant normalizes a captured merchant string: strips URL scheme
// and domain suffix, collapses whitespace, trims trailing punctuation. It
// is exported because the merchant matcher applies the same cleanup before
// its own lookups.
func CleanMerchant(raw string) string {
	s := strings.TrimSpace(raw)
	s = patterns.ProtocolPrefixRegex.ReplaceAllString(s, "")
	s = patterns.DomainSuffixRegex.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, ".,;:-/ ")
	return s
}

// acceptableMerchant applies the rejection rules: too short, too long,
// purely numeric, date or time shaped, or containing a banking boilerplate
// term.
func acceptableMerchant(cleaned string) bool {
	if len(cleaned) < merchantMinLength || len(cleaned) > merchantMaxLength {
		return false
	}

	if patterns.NumericOnlyRegex.MatchString(cleaned) {
		return false
	}

	if patterns.DateShapedRegex.MatchString(cleaned) {
		return false
	}

	lower := strings.ToLower(cleaned)
	for _, word := range strings.Fields(lower) {
		word = strings.Trim(word, ".,;:!?")
		for _, excluded := range patterns.MerchantExcludeWords {
			if word == excluded {
				return false
			}
		}
	}

	return true
}

// startsCapitalized reports whether the candidate begins with an uppercase
// letter, a weak signal that it is a proper name.
func startsCapitalized(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
