package analyzer

import (
	"encoding/json"
	"testing"
	"time"

	"golang-sms-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// testNow pins the clock so date windows and recency scoring are stable
var testNow = time.Date(2025, time.January, 20, 10, 0, 0, 0, time.UTC)

func createTestReference() *models.ReferenceContext {
	return &models.ReferenceContext{
		Accounts: []*models.Account{
			{ID: "acc-1", Name: "Salary Account", BankName: "HDFC Bank", LastFour: "1234", Kind: models.KindBankAccount, Active: true},
		},
		Cards: []*models.Card{
			{ID: "card-1", Name: "HDFC Credit Card", BankName: "HDFC Bank", LastFour: "5678", Kind: models.KindCreditCard, Active: true},
		},
		Categories: []*models.Category{
			{ID: "cat-income", Name: "Income", Direction: models.DirectionIncome, Active: true},
			{ID: "cat-shopping", Name: "Shopping", Direction: models.DirectionExpense, Active: true},
			{ID: "cat-food", Name: "Food", Direction: models.DirectionExpense, Active: true},
			{ID: "cat-needs", Name: "Needs", Direction: models.DirectionExpense, Active: true},
		},
		Subcategories: []*models.Subcategory{
			{ID: "sub-salary", Name: "Salary", CategoryID: "cat-income", Active: true},
			{ID: "sub-online", Name: "Online", CategoryID: "cat-shopping", Active: true},
			{ID: "sub-dining", Name: "Dining Out", CategoryID: "cat-food", Active: true},
		},
		MerchantPatterns: []*models.MerchantPattern{
			{
				ID:             "mp-amazon",
				CanonicalName:  "Amazon",
				Aliases:        []string{"amazon", "amzn"},
				CategoryID:     "cat-shopping",
				SubcategoryID:  "sub-online",
				BaseConfidence: 0.95,
			},
			{
				ID:             "mp-swiggy",
				CanonicalName:  "Swiggy",
				Aliases:        []string{"swiggy"},
				CategoryID:     "cat-food",
				SubcategoryID:  "sub-dining",
				BaseConfidence: 0.9,
			},
		},
	}
}

func createTestAnalyzer(t *testing.T, config *Config) *Analyzer {
	t.Helper()

	if config == nil {
		config = DefaultConfig()
	}
	config.Clock = func() time.Time { return testNow }

	a, err := New(createTestReference(), config)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}
	return a
}

func TestAnalyzeFullMessage(t *testing.T) {
	a := createTestAnalyzer(t, nil)

	result := a.Analyze("Rs.450 debited from A/c XX1234 at AMAZON on 15-01-2025")
	if !result.Success {
		t.Fatalf("expected success, errors: %v", result.Errors)
	}

	tx := result.Data
	if tx.Type == nil || *tx.Type != models.TransactionTypeDebit {
		t.Errorf("type = %v, want debit", tx.Type)
	}
	if tx.Amount == nil || !tx.Amount.Equal(decimal.NewFromInt(450)) {
		t.Errorf("amount = %v, want 450", tx.Amount)
	}
	wantDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if tx.Date == nil || !tx.Date.Equal(wantDate) {
		t.Errorf("date = %v, want %s", tx.Date, wantDate)
	}
	if tx.Merchant != "Amazon" {
		t.Errorf("merchant = %q, want Amazon", tx.Merchant)
	}
	if tx.AccountID != "acc-1" || tx.AccountKind != models.KindBankAccount {
		t.Errorf("account = %s/%s, want acc-1/bank_account", tx.AccountID, tx.AccountKind)
	}
	if tx.CategoryID != "cat-shopping" || tx.SubcategoryID != "sub-online" {
		t.Errorf("category = %s/%s, want cat-shopping/sub-online", tx.CategoryID, tx.SubcategoryID)
	}
	if tx.Confidence <= 0.5 {
		t.Errorf("confidence = %f, want > 0.5", tx.Confidence)
	}
	if tx.RawMessage != "Rs.450 debited from A/c XX1234 at AMAZON on 15-01-2025" {
		t.Errorf("raw message not retained verbatim: %q", tx.RawMessage)
	}
}

func TestAnalyzeCardMessage(t *testing.T) {
	a := createTestAnalyzer(t, nil)

	result := a.Analyze("INR 1,200 spent at SWIGGY via HDFC Card xx5678")
	if !result.Success {
		t.Fatalf("expected success, errors: %v", result.Errors)
	}

	tx := result.Data
	if tx.Amount == nil || !tx.Amount.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("amount = %v, want 1200", tx.Amount)
	}
	if tx.Merchant != "Swiggy" {
		t.Errorf("merchant = %q, want Swiggy", tx.Merchant)
	}
	if tx.AccountID != "card-1" || tx.AccountKind != models.KindCreditCard {
		t.Errorf("account = %s/%s, want card-1/credit_card", tx.AccountID, tx.AccountKind)
	}
	if tx.CategoryID != "cat-food" {
		t.Errorf("category = %s, want cat-food", tx.CategoryID)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := createTestAnalyzer(t, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		result := a.Analyze(text)
		if result.Success {
			t.Errorf("expected failure for %q", text)
		}
		if len(result.Errors) == 0 {
			t.Errorf("expected errors for %q", text)
		}
		if result.Data != nil {
			t.Errorf("expected no data for %q", text)
		}
	}
}

func TestAnalyzeNonTransactional(t *testing.T) {
	a := createTestAnalyzer(t, nil)

	result := a.Analyze("Your OTP for login is 4521. Do not share this SMS.")
	if !result.Success {
		t.Fatalf("unparseable text is not a failure, errors: %v", result.Errors)
	}

	tx := result.Data
	if tx.Merchant != "" {
		t.Errorf("merchant = %q, want empty", tx.Merchant)
	}
	if tx.Amount != nil {
		t.Errorf("amount = %v, want nil", tx.Amount)
	}
	if tx.Type != nil {
		t.Errorf("type = %v, want nil", tx.Type)
	}
	if tx.AccountID != "" {
		t.Errorf("account = %s, want empty", tx.AccountID)
	}
	if tx.Confidence >= 0.3 {
		t.Errorf("confidence = %f, want < 0.3", tx.Confidence)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := createTestAnalyzer(t, nil)
	text := "Rs.450 debited from A/c XX1234 at AMAZON on 15-01-2025"

	first, err := json.Marshal(a.Analyze(text))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		next, err := json.Marshal(a.Analyze(text))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(first) != string(next) {
			t.Fatalf("run %d differs:\n%s\n%s", i, first, next)
		}
	}
}

func TestAnalyzeStrictDropsWeakFields(t *testing.T) {
	relaxed := createTestAnalyzer(t, RelaxedConfig())
	strict := createTestAnalyzer(t, StrictConfig())

	// The bare-number fallback scores 0.35: kept by default, dropped at 0.5
	text := "sent 500 to Ramesh"

	if result := relaxed.Analyze(text); result.Data.Amount == nil {
		t.Error("relaxed config should keep the fallback amount")
	}
	if result := strict.Analyze(text); result.Data.Amount != nil {
		t.Errorf("strict config should drop the fallback amount, got %v", result.Data.Amount)
	}
}

func TestAnalyzeDescriptionCollapsesWhitespace(t *testing.T) {
	a := createTestAnalyzer(t, nil)

	raw := "Rs.450  debited \n from A/c XX1234"
	result := a.Analyze(raw)

	if result.Data.Description != "Rs.450 debited from A/c XX1234" {
		t.Errorf("description = %q", result.Data.Description)
	}
	if result.Data.RawMessage != raw {
		t.Errorf("raw message must stay verbatim: %q", result.Data.RawMessage)
	}
}

func TestUpdateContext(t *testing.T) {
	a := createTestAnalyzer(t, nil)
	text := "Rs.100 debited from A/c XX7777"

	if result := a.Analyze(text); result.Data.AccountID != "" {
		t.Fatalf("account %s matched before update", result.Data.AccountID)
	}

	update := models.ReferenceUpdate{
		Accounts: []*models.Account{
			{ID: "acc-new", Name: "New Account", BankName: "Axis Bank", LastFour: "7777", Kind: models.KindBankAccount, Active: true},
		},
	}
	if err := a.UpdateContext(update); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if result := a.Analyze(text); result.Data.AccountID != "acc-new" {
		t.Errorf("account = %s, want acc-new after update", result.Data.AccountID)
	}

	// The old accounts were replaced wholesale
	if result := a.Analyze("Rs.100 debited from A/c XX1234"); result.Data.AccountID != "" {
		t.Errorf("replaced account still matching: %s", result.Data.AccountID)
	}
}

func TestUpdateContextRejectsInvalid(t *testing.T) {
	a := createTestAnalyzer(t, nil)

	update := models.ReferenceUpdate{
		Subcategories: []*models.Subcategory{
			{ID: "sub-bad", Name: "Orphan", CategoryID: "missing", Active: true},
		},
	}

	if err := a.UpdateContext(update); err == nil {
		t.Fatal("expected invalid update to be rejected")
	}

	// Previous state is retained
	result := a.Analyze("Rs.450 debited from A/c XX1234 at AMAZON")
	if result.Data.SubcategoryID != "sub-online" {
		t.Errorf("subcategory = %s, want sub-online from the original snapshot", result.Data.SubcategoryID)
	}
}

func TestNewRejectsBadInputs(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("expected error for nil reference")
	}

	bad := createTestReference()
	bad.Accounts[0].LastFour = "12"
	if _, err := New(bad, nil); err == nil {
		t.Error("expected error for invalid reference data")
	}

	config := DefaultConfig()
	config.AmountWeight = 1.5
	if _, err := New(createTestReference(), config); err == nil {
		t.Error("expected error for invalid config")
	}
}
