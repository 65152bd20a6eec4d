package extractors

import (
	"strings"

	"golang-sms-analyzer/internal/models"
	"golang-sms-analyzer/internal/patterns"
	"golang-sms-analyzer/pkg/logger"
)

const (
	typeBaseConfidence  = 0.6
	typeKeywordBonus    = 0.2
	typeRegexBonus      = 0.15
	typeContextStep     = 0.05
	typeContextCap      = 0.15
	typeBoostBonus      = 0.1
	inferenceBase       = 0.5
	inferenceStep       = 0.05
	inferenceCap        = 0.7
)

// TypeExtractor classifies the transaction type of a message. Every type
// pattern is scored and the single best kept; keyword hits outrank regex
// hits, and per-type boost keywords (rail systems for transfers, "atm" for
// withdrawals) add on top.
type TypeExtractor struct {
	log logger.Logger
}

// NewTypeExtractor creates a type extractor
func NewTypeExtractor() *TypeExtractor {
	return &TypeExtractor{
		log: logger.WithComponent("type_extractor"),
	}
}

// Extract returns the best-scoring transaction type for the text. When no
// type pattern matches directly, a context-inference fallback checks
// broader indicator phrases at reduced, capped confidence.
func (e *TypeExtractor) Extract(text string) models.ExtractionResult[models.TransactionType] {
	if strings.TrimSpace(text) == "" {
		return models.NoMatch[models.TransactionType]()
	}

	lower := strings.ToLower(text)

	best := models.NoMatch[models.TransactionType]()
	for _, pattern := range patterns.TypePatterns {
		result := e.scorePattern(text, lower, pattern)
		if result.Confidence > best.Confidence {
			best = result
		}
	}

	if best.HasValue() {
		return best
	}

	return e.inferFromContext(lower)
}

// scorePattern scores one type pattern against the text. A pattern with no
// keyword or regex hit scores zero regardless of context keywords.
func (e *TypeExtractor) scorePattern(text, lower string, pattern patterns.TypePattern) models.ExtractionResult[models.TransactionType] {
	confidence := 0.0
	matchedText := ""
	method := ""

	for _, keyword := range pattern.Keywords {
		if containsWord(lower, keyword) {
			confidence = typeBaseConfidence + typeKeywordBonus
			matchedText = keyword
			method = "keyword"
			break
		}
	}

	if confidence == 0 {
		for _, re := range pattern.Regexes {
			if loc := re.FindStringIndex(text); loc != nil {
				confidence = typeBaseConfidence + typeRegexBonus
				matchedText = text[loc[0]:loc[1]]
				method = "regex"
				break
			}
		}
	}

	if confidence == 0 {
		return models.NoMatch[models.TransactionType]()
	}

	contextBonus := 0.0
	for _, keyword := range pattern.ContextKeywords {
		if strings.Contains(lower, keyword) {
			contextBonus += typeContextStep
		}
	}
	if contextBonus > typeContextCap {
		contextBonus = typeContextCap
	}
	confidence += contextBonus

	for _, keyword := range pattern.BoostKeywords {
		if containsWord(lower, keyword) {
			confidence += typeBoostBonus
			break
		}
	}

	return models.Extracted(pattern.Type, confidence, matchedText, method)
}

// inferFromContext is the fallback for messages with no direct type
// indicator: broader phrases per type, result capped at 0.7.
func (e *TypeExtractor) inferFromContext(lower string) models.ExtractionResult[models.TransactionType] {
	best := models.NoMatch[models.TransactionType]()

	// Iterate in declared type order so ties resolve deterministically
	for _, txType := range models.AllTransactionTypes() {
		phrases, ok := patterns.TypeInferencePhrases[txType]
		if !ok {
			continue
		}

		hits := 0
		matchedText := ""
		for _, phrase := range phrases {
			if strings.Contains(lower, phrase) {
				hits++
				if matchedText == "" {
					matchedText = phrase
				}
			}
		}
		if hits == 0 {
			continue
		}

		confidence := inferenceBase + float64(hits-1)*inferenceStep
		if confidence > inferenceCap {
			confidence = inferenceCap
		}

		if confidence > best.Confidence {
			best = models.Extracted(txType, confidence, matchedText, "context_inference")
		}
	}

	return best
}
