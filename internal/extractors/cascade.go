// Package extractors implements the field extractors of the analysis
// pipeline: amount, date, transaction type, and raw merchant. Each
// extractor is a pure function from message text to a confidence-scored
// candidate value and never fails on malformed text; "no match" is an
// empty result, not an error.
package extractors

import "golang-sms-analyzer/internal/models"

// Strategy is a single extraction attempt: one pattern or heuristic applied
// to the message text.
type Strategy[T any] func(text string) models.ExtractionResult[T]

// Cascade runs strategies in order and returns the first result whose
// confidence meets the acceptance threshold. If none does, it returns the
// best-scoring result seen, which may be empty. This is the shared
// "try strategy list, keep best or first above threshold" loop used by
// every extractor and matcher.
func Cascade[T any](text string, threshold float64, strategies ...Strategy[T]) models.ExtractionResult[T] {
	best := models.NoMatch[T]()

	for _, strategy := range strategies {
		result := strategy(text)
		if result.HasValue() && result.Confidence >= threshold {
			return result
		}
		if result.Confidence > best.Confidence {
			best = result
		}
	}

	return best
}
