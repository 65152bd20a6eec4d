package extractors

import (
	"testing"

	"golang-sms-analyzer/internal/models"
)

func TestTypeExtract(t *testing.T) {
	extractor := NewTypeExtractor()

	tests := []struct {
		name          string
		text          string
		wantType      models.TransactionType
		wantMethod    string
		minConfidence float64
	}{
		{
			name:          "debit keyword",
			text:          "Rs.450 debited from A/c XX1234",
			wantType:      models.TransactionTypeDebit,
			wantMethod:    "keyword",
			minConfidence: 0.8,
		},
		{
			name:          "credit keyword with context",
			text:          "Salary of Rs.50,000 credited to your account",
			wantType:      models.TransactionTypeCredit,
			wantMethod:    "keyword",
			minConfidence: 0.85,
		},
		{
			name:          "transfer with rail boost",
			text:          "Rs.500 transferred via UPI to friend",
			wantType:      models.TransactionTypeTransfer,
			wantMethod:    "keyword",
			minConfidence: 0.9,
		},
		{
			name:          "withdrawal with atm boost",
			text:          "Cash withdrawal of Rs.2000 at ATM",
			wantType:      models.TransactionTypeWithdrawal,
			wantMethod:    "keyword",
			minConfidence: 0.9,
		},
		{
			name:          "refund",
			text:          "Refund of Rs.899 for cancelled order processed",
			wantType:      models.TransactionTypeRefund,
			wantMethod:    "keyword",
			minConfidence: 0.8,
		},
		{
			name:          "payment",
			text:          "Payment of Rs.1,499 towards electricity bill successful",
			wantType:      models.TransactionTypePayment,
			wantMethod:    "keyword",
			minConfidence: 0.8,
		},
		{
			name:          "deposit",
			text:          "Cash deposit of Rs.10,000 at branch CDM",
			wantType:      models.TransactionTypeDeposit,
			wantMethod:    "keyword",
			minConfidence: 0.8,
		},
		{
			name:          "dr abbreviation",
			text:          "A/c XX1234 Dr by Rs.300",
			wantType:      models.TransactionTypeDebit,
			wantMethod:    "regex",
			minConfidence: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractor.Extract(tt.text)
			if !result.HasValue() {
				t.Fatalf("expected a type for %q", tt.text)
			}
			if result.MustValue() != tt.wantType {
				t.Errorf("type = %s, want %s", result.MustValue(), tt.wantType)
			}
			if result.Method != tt.wantMethod {
				t.Errorf("method = %s, want %s", result.Method, tt.wantMethod)
			}
			if result.Confidence < tt.minConfidence {
				t.Errorf("confidence = %f, want >= %f", result.Confidence, tt.minConfidence)
			}
		})
	}
}

func TestTypeExtractContextInference(t *testing.T) {
	extractor := NewTypeExtractor()

	result := extractor.Extract("Your salary has been added to the account ending 1234")
	if !result.HasValue() {
		t.Fatal("expected an inferred type")
	}
	if result.MustValue() != models.TransactionTypeCredit {
		t.Errorf("type = %s, want credit", result.MustValue())
	}
	if result.Method != "context_inference" {
		t.Errorf("method = %s, want context_inference", result.Method)
	}
	if result.Confidence > 0.7 {
		t.Errorf("inference confidence = %f, want capped at 0.7", result.Confidence)
	}
}

func TestTypeExtractNoMatch(t *testing.T) {
	extractor := NewTypeExtractor()

	tests := []string{
		"",
		"   ",
		"Your OTP is 4521. Do not share it.",
		"Welcome to our rewards program",
	}

	for _, text := range tests {
		result := extractor.Extract(text)
		if result.HasValue() {
			t.Errorf("expected no type for %q, got %s", text, result.MustValue())
		}
	}
}

func TestTypeExtractDeterministic(t *testing.T) {
	extractor := NewTypeExtractor()
	text := "Rs.500 sent to merchant, payment successful"

	first := extractor.Extract(text)
	for i := 0; i < 10; i++ {
		result := extractor.Extract(text)
		if result.Value == nil || first.Value == nil {
			t.Fatal("expected values")
		}
		if *result.Value != *first.Value || result.Confidence != first.Confidence {
			t.Fatalf("run %d differs: %s/%f vs %s/%f",
				i, *result.Value, result.Confidence, *first.Value, first.Confidence)
		}
	}
}
