package models

import "testing"

func TestExtractedClampsConfidence(t *testing.T) {
	result := Extracted("value", 1.4, "value", "test")
	if result.Confidence != 1.0 {
		t.Errorf("confidence = %f, want clamped to 1.0", result.Confidence)
	}
	if !result.HasValue() {
		t.Error("expected value present")
	}
}

func TestExtractedDegradesToNoMatch(t *testing.T) {
	for _, confidence := range []float64{0, -0.5} {
		result := Extracted("value", confidence, "value", "test")
		if result.HasValue() {
			t.Errorf("confidence %f: expected no value", confidence)
		}
		if result.Confidence != 0 {
			t.Errorf("confidence %f: expected zero confidence, got %f", confidence, result.Confidence)
		}
	}
}

func TestNoMatch(t *testing.T) {
	result := NoMatch[int]()
	if result.HasValue() {
		t.Error("NoMatch must carry no value")
	}
	if result.Confidence != 0 {
		t.Errorf("NoMatch confidence = %f, want 0", result.Confidence)
	}
}

func TestMustValue(t *testing.T) {
	result := Extracted(42, 0.8, "42", "test")
	if result.MustValue() != 42 {
		t.Errorf("MustValue() = %d, want 42", result.MustValue())
	}
}
