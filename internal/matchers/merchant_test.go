package matchers

import (
	"testing"
)

func createTestMerchantMatcher() *MerchantMatcher {
	return NewMerchantMatcher(createTestReference())
}

func TestMerchantNormalizeExact(t *testing.T) {
	matcher := createTestMerchantMatcher()

	tests := []struct {
		name          string
		input         string
		wantCanonical string
		wantMethod    string
		minConfidence float64
	}{
		{
			name:          "host pattern canonical name",
			input:         "Amazon",
			wantCanonical: "Amazon",
			wantMethod:    "exact_name",
			minConfidence: 0.95,
		},
		{
			name:          "case insensitive",
			input:         "AMAZON",
			wantCanonical: "Amazon",
			wantMethod:    "exact_name",
			minConfidence: 0.95,
		},
		{
			name:          "curated dataset entry",
			input:         "Netflix",
			wantCanonical: "Netflix",
			wantMethod:    "exact_name",
			minConfidence: 0.95,
		},
		{
			name:          "alias exact",
			input:         "amzn",
			wantCanonical: "Amazon",
			wantMethod:    "alias",
			minConfidence: 0.7,
		},
		{
			name:          "alias containment",
			input:         "swiggy order",
			wantCanonical: "Swiggy",
			wantMethod:    "alias_contains",
			minConfidence: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := matcher.Normalize(tt.input)
			if match.CanonicalName != tt.wantCanonical {
				t.Errorf("canonical = %q, want %q", match.CanonicalName, tt.wantCanonical)
			}
			if match.Method != tt.wantMethod {
				t.Errorf("method = %s, want %s", match.Method, tt.wantMethod)
			}
			if match.Confidence < tt.minConfidence {
				t.Errorf("confidence = %f, want >= %f", match.Confidence, tt.minConfidence)
			}
		})
	}
}

func TestMerchantNormalizeCarriesCategoryHints(t *testing.T) {
	matcher := createTestMerchantMatcher()

	match := matcher.Normalize("Amazon")
	if match.CategoryID != "cat-shopping" || match.SubcategoryID != "sub-online" {
		t.Errorf("category hints = %s/%s, want cat-shopping/sub-online",
			match.CategoryID, match.SubcategoryID)
	}

	// Curated entries carry a vertical instead of host category IDs
	match = matcher.Normalize("Netflix")
	if match.CategoryID != "" {
		t.Errorf("curated entry should not carry a host category ID, got %s", match.CategoryID)
	}
	if match.Vertical != "entertainment" {
		t.Errorf("vertical = %s, want entertainment", match.Vertical)
	}
}

func TestMerchantNormalizeDomain(t *testing.T) {
	matcher := createTestMerchantMatcher()

	t.Run("unknown domain uses title-cased stem", func(t *testing.T) {
		match := matcher.Normalize("zerodha.com")
		if match.CanonicalName != "Zerodha" {
			t.Errorf("canonical = %q, want Zerodha", match.CanonicalName)
		}
		if match.Method != "domain_unknown" {
			t.Errorf("method = %s, want domain_unknown", match.Method)
		}
	})
}

func TestMerchantNormalizeFuzzy(t *testing.T) {
	matcher := createTestMerchantMatcher()

	match := matcher.Normalize("Amazn")
	if match.CanonicalName != "Amazon" {
		t.Errorf("canonical = %q, want Amazon", match.CanonicalName)
	}
	if match.Method != "fuzzy_name" {
		t.Errorf("method = %s, want fuzzy_name", match.Method)
	}
	if match.Confidence <= 0.5 || match.Confidence >= 0.7 {
		t.Errorf("fuzzy confidence = %f, want in (0.5, 0.7)", match.Confidence)
	}
}

func TestMerchantNormalizeFallback(t *testing.T) {
	matcher := createTestMerchantMatcher()

	match := matcher.Normalize("Sharma Traders")
	if match.CanonicalName != "Sharma Traders" {
		t.Errorf("canonical = %q, want Sharma Traders", match.CanonicalName)
	}
	if match.Method != "fallback" {
		t.Errorf("method = %s, want fallback", match.Method)
	}
	if match.Confidence != 0.3 {
		t.Errorf("confidence = %f, want 0.3", match.Confidence)
	}
}

func TestMerchantNormalizeEmpty(t *testing.T) {
	matcher := createTestMerchantMatcher()

	match := matcher.Normalize("")
	if match.Matched() {
		t.Errorf("empty input must not match, got %q", match.CanonicalName)
	}
}

func TestMerchantNormalizeIdempotent(t *testing.T) {
	matcher := createTestMerchantMatcher()

	inputs := []string{"random shop name", "Amazon", "swiggy order", "zerodha.com"}
	for _, input := range inputs {
		first := matcher.Normalize(input)
		second := matcher.Normalize(first.CanonicalName)
		if second.CanonicalName != first.CanonicalName {
			t.Errorf("normalization not idempotent for %q: %q -> %q",
				input, first.CanonicalName, second.CanonicalName)
		}
	}
}

func TestMerchantNormalizeDeterministic(t *testing.T) {
	matcher := createTestMerchantMatcher()

	first := matcher.Normalize("swiggy instamart order")
	for i := 0; i < 10; i++ {
		match := matcher.Normalize("swiggy instamart order")
		if match.CanonicalName != first.CanonicalName || match.Confidence != first.Confidence {
			t.Fatalf("run %d differs: %q/%f vs %q/%f",
				i, match.CanonicalName, match.Confidence, first.CanonicalName, first.Confidence)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"sharma traders", "Sharma Traders"},
		{"ZERODHA", "Zerodha"},
		{"big  bazaar", "Big Bazaar"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := titleCase(tt.input); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
		// Applying twice changes nothing
		if got := titleCase(titleCase(tt.input)); got != tt.want {
			t.Errorf("titleCase not idempotent for %q", tt.input)
		}
	}
}
