package models

// ExtractionResult carries a single extracted candidate value together with
// the confidence the extractor assigns to it, the span of input text that
// produced it, and a method tag naming the strategy that matched.
//
// Invariant: a present value implies Confidence > 0; an absent value implies
// Confidence == 0. Use Extracted and NoMatch to construct results so the
// invariant holds.
type ExtractionResult[T any] struct {
	Value       *T      `json:"value,omitempty"`
	Confidence  float64 `json:"confidence"`
	MatchedText string  `json:"matched_text,omitempty"`
	Method      string  `json:"method,omitempty"`
}

// Extracted builds a successful extraction result. Confidence is clamped
// into (0, 1]; a non-positive confidence degrades to NoMatch to preserve
// the result invariant.
func Extracted[T any](value T, confidence float64, matchedText, method string) ExtractionResult[T] {
	if confidence <= 0 {
		return NoMatch[T]()
	}
	if confidence > 1 {
		confidence = 1
	}

	return ExtractionResult[T]{
		Value:       &value,
		Confidence:  confidence,
		MatchedText: matchedText,
		Method:      method,
	}
}

// NoMatch builds an empty extraction result: absent value, zero confidence.
// This is the "no match" outcome and is not an error.
func NoMatch[T any]() ExtractionResult[T] {
	return ExtractionResult[T]{}
}

// HasValue reports whether the result carries a value
func (r ExtractionResult[T]) HasValue() bool {
	return r.Value != nil
}

// MustValue returns the carried value; callers must check HasValue first.
// It exists to keep test code terse.
func (r ExtractionResult[T]) MustValue() T {
	return *r.Value
}
