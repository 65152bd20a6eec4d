package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the movement of money described by a message.
type TransactionType string

const (
	// TransactionTypeDebit represents money leaving an account
	TransactionTypeDebit TransactionType = "debit"
	// TransactionTypeCredit represents money arriving into an account
	TransactionTypeCredit TransactionType = "credit"
	// TransactionTypeTransfer represents a transfer between accounts
	TransactionTypeTransfer TransactionType = "transfer"
	// TransactionTypeRefund represents a reversal of an earlier charge
	TransactionTypeRefund TransactionType = "refund"
	// TransactionTypePayment represents a bill or merchant payment
	TransactionTypePayment TransactionType = "payment"
	// TransactionTypeWithdrawal represents a cash withdrawal
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	// TransactionTypeDeposit represents a cash or cheque deposit
	TransactionTypeDeposit TransactionType = "deposit"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is one of the known values
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDebit, TransactionTypeCredit, TransactionTypeTransfer,
		TransactionTypeRefund, TransactionTypePayment, TransactionTypeWithdrawal,
		TransactionTypeDeposit:
		return true
	}
	return false
}

// AllTransactionTypes returns every known transaction type in a stable order.
// The type extractor iterates this list so that all candidates are scored,
// not just the first keyword hit.
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeDebit,
		TransactionTypeCredit,
		TransactionTypeTransfer,
		TransactionTypeRefund,
		TransactionTypePayment,
		TransactionTypeWithdrawal,
		TransactionTypeDeposit,
	}
}

// AccountKind tags the payment instrument a matched entity represents.
type AccountKind string

const (
	// KindBankAccount is a regular savings or current bank account
	KindBankAccount AccountKind = "bank_account"
	// KindCreditCard is a credit card
	KindCreditCard AccountKind = "credit_card"
	// KindDebitCard is a debit card
	KindDebitCard AccountKind = "debit_card"
	// KindWallet is a prepaid wallet
	KindWallet AccountKind = "wallet"
	// KindUPIHandle is an instant-payment handle (UPI style)
	KindUPIHandle AccountKind = "upi_handle"
)

// String returns the string representation of AccountKind
func (k AccountKind) String() string {
	return string(k)
}

// IsValid checks if the account kind is one of the known values
func (k AccountKind) IsValid() bool {
	switch k {
	case KindBankAccount, KindCreditCard, KindDebitCard, KindWallet, KindUPIHandle:
		return true
	}
	return false
}

// Direction tags a budget category as money-in or money-out.
type Direction string

const (
	// DirectionIncome marks a category that classifies incoming money
	DirectionIncome Direction = "income"
	// DirectionExpense marks a category that classifies outgoing money
	DirectionExpense Direction = "expense"
)

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// IsValid checks if the direction is one of the known values
func (d Direction) IsValid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// Account represents a bank account known to the host application
type Account struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	BankName string      `json:"bank_name"`
	LastFour string      `json:"last_four,omitempty"`
	Kind     AccountKind `json:"kind"`
	Active   bool        `json:"active"`
}

// Validate performs basic validation on the Account
func (a *Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("account ID cannot be empty")
	}

	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("account name cannot be empty")
	}

	if a.LastFour != "" && !IsLastFour(a.LastFour) {
		return fmt.Errorf("account last-four must be exactly 4 digits, got '%s'", a.LastFour)
	}

	if !a.Kind.IsValid() {
		return fmt.Errorf("invalid account kind: %s", a.Kind)
	}

	return nil
}

// String returns a string representation of the Account
func (a *Account) String() string {
	return fmt.Sprintf("Account{ID: %s, Name: %s, Bank: %s, LastFour: %s}",
		a.ID, a.Name, a.BankName, a.LastFour)
}

// Card represents a credit or debit card known to the host application
type Card struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	BankName string      `json:"bank_name"`
	LastFour string      `json:"last_four,omitempty"`
	Kind     AccountKind `json:"kind"`
	Active   bool        `json:"active"`
}

// Validate performs basic validation on the Card
func (c *Card) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("card ID cannot be empty")
	}

	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("card name cannot be empty")
	}

	if c.LastFour != "" && !IsLastFour(c.LastFour) {
		return fmt.Errorf("card last-four must be exactly 4 digits, got '%s'", c.LastFour)
	}

	if c.Kind != KindCreditCard && c.Kind != KindDebitCard {
		return fmt.Errorf("card kind must be credit_card or debit_card, got '%s'", c.Kind)
	}

	return nil
}

// String returns a string representation of the Card
func (c *Card) String() string {
	return fmt.Sprintf("Card{ID: %s, Name: %s, Bank: %s, LastFour: %s}",
		c.ID, c.Name, c.BankName, c.LastFour)
}

// Category represents a top-level budget category
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Direction Direction `json:"direction"`
	Active    bool      `json:"active"`
}

// Validate performs basic validation on the Category
func (c *Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("category ID cannot be empty")
	}

	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name cannot be empty")
	}

	if !c.Direction.IsValid() {
		return fmt.Errorf("invalid category direction: %s", c.Direction)
	}

	return nil
}

// Subcategory represents a budget subcategory under a parent category
type Subcategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	Active     bool   `json:"active"`
}

// Validate performs basic validation on the Subcategory
func (s *Subcategory) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("subcategory ID cannot be empty")
	}

	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("subcategory name cannot be empty")
	}

	if strings.TrimSpace(s.CategoryID) == "" {
		return fmt.Errorf("subcategory must reference a parent category")
	}

	return nil
}

// MerchantPattern describes a known merchant: its canonical display name,
// the aliases and text patterns it appears under in messages, and an
// optional category hint consumed by the categorizer.
type MerchantPattern struct {
	ID             string   `json:"id"`
	CanonicalName  string   `json:"canonical_name"`
	Aliases        []string `json:"aliases,omitempty"`
	Patterns       []string `json:"patterns,omitempty"`
	CategoryID     string   `json:"category_id,omitempty"`
	SubcategoryID  string   `json:"subcategory_id,omitempty"`
	BaseConfidence float64  `json:"base_confidence"`
}

// Validate performs basic validation on the MerchantPattern
func (mp *MerchantPattern) Validate() error {
	if strings.TrimSpace(mp.CanonicalName) == "" {
		return fmt.Errorf("merchant pattern canonical name cannot be empty")
	}

	if mp.BaseConfidence < 0 || mp.BaseConfidence > 1 {
		return fmt.Errorf("merchant pattern base confidence must be in [0,1], got %f", mp.BaseConfidence)
	}

	return nil
}

// ReferenceContext is the host-supplied snapshot of reference data the
// pipeline matches against. It is treated as immutable: the analyzer never
// mutates it, and updates replace the whole snapshot via Merge.
type ReferenceContext struct {
	Accounts         []*Account         `json:"accounts"`
	Cards            []*Card            `json:"cards"`
	Categories       []*Category        `json:"categories"`
	Subcategories    []*Subcategory     `json:"subcategories"`
	MerchantPatterns []*MerchantPattern `json:"merchant_patterns"`
}

// NewReferenceContext creates a reference context from the host collections
func NewReferenceContext(
	accounts []*Account,
	cards []*Card,
	categories []*Category,
	subcategories []*Subcategory,
	patterns []*MerchantPattern,
) *ReferenceContext {
	return &ReferenceContext{
		Accounts:         accounts,
		Cards:            cards,
		Categories:       categories,
		Subcategories:    subcategories,
		MerchantPatterns: patterns,
	}
}

// Validate checks the reference context invariants: entity-level validity
// and that every active subcategory references an active category.
func (rc *ReferenceContext) Validate() error {
	for _, account := range rc.Accounts {
		if err := account.Validate(); err != nil {
			return fmt.Errorf("invalid account: %w", err)
		}
	}

	for _, card := range rc.Cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("invalid card: %w", err)
		}
	}

	activeCategories := make(map[string]bool)
	for _, category := range rc.Categories {
		if err := category.Validate(); err != nil {
			return fmt.Errorf("invalid category: %w", err)
		}
		if category.Active {
			activeCategories[category.ID] = true
		}
	}

	for _, sub := range rc.Subcategories {
		if err := sub.Validate(); err != nil {
			return fmt.Errorf("invalid subcategory: %w", err)
		}
		if sub.Active && !activeCategories[sub.CategoryID] {
			return fmt.Errorf("active subcategory '%s' references inactive or unknown category '%s'",
				sub.ID, sub.CategoryID)
		}
	}

	for _, pattern := range rc.MerchantPatterns {
		if err := pattern.Validate(); err != nil {
			return fmt.Errorf("invalid merchant pattern: %w", err)
		}
	}

	return nil
}

// FindCategory returns the category with the given ID, or nil
func (rc *ReferenceContext) FindCategory(id string) *Category {
	for _, category := range rc.Categories {
		if category.ID == id {
			return category
		}
	}
	return nil
}

// FindSubcategory returns the subcategory with the given ID, or nil
func (rc *ReferenceContext) FindSubcategory(id string) *Subcategory {
	for _, sub := range rc.Subcategories {
		if sub.ID == id {
			return sub
		}
	}
	return nil
}

// SubcategoriesOf returns the active subcategories of the given category,
// in reference order.
func (rc *ReferenceContext) SubcategoriesOf(categoryID string) []*Subcategory {
	var result []*Subcategory
	for _, sub := range rc.Subcategories {
		if sub.CategoryID == categoryID && sub.Active {
			result = append(result, sub)
		}
	}
	return result
}

// ReferenceUpdate carries a partial replacement of reference data.
// A nil collection keeps the previous value; a non-nil (possibly empty)
// collection replaces it wholesale.
type ReferenceUpdate struct {
	Accounts         []*Account
	Cards            []*Card
	Categories       []*Category
	Subcategories    []*Subcategory
	MerchantPatterns []*MerchantPattern
}

// Merge applies the update to the context, returning a new snapshot.
// The receiver is never modified.
func (rc *ReferenceContext) Merge(update ReferenceUpdate) *ReferenceContext {
	merged := &ReferenceContext{
		Accounts:         rc.Accounts,
		Cards:            rc.Cards,
		Categories:       rc.Categories,
		Subcategories:    rc.Subcategories,
		MerchantPatterns: rc.MerchantPatterns,
	}

	if update.Accounts != nil {
		merged.Accounts = update.Accounts
	}
	if update.Cards != nil {
		merged.Cards = update.Cards
	}
	if update.Categories != nil {
		merged.Categories = update.Categories
	}
	if update.Subcategories != nil {
		merged.Subcategories = update.Subcategories
	}
	if update.MerchantPatterns != nil {
		merged.MerchantPatterns = update.MerchantPatterns
	}

	return merged
}

// ParsedTransaction is the structured output of a single analysis call.
// Optional fields are nil or empty when the corresponding extractor or
// matcher produced no confident value.
type ParsedTransaction struct {
	Type          *TransactionType `json:"type,omitempty"`
	AccountID     string           `json:"account_id,omitempty"`
	AccountKind   AccountKind      `json:"account_kind,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	Merchant      string           `json:"merchant,omitempty"`
	Description   string           `json:"description,omitempty"`
	CategoryID    string           `json:"category_id,omitempty"`
	SubcategoryID string           `json:"subcategory_id,omitempty"`
	Confidence    float64          `json:"confidence"`

	// RawMessage retains the original input verbatim for audit
	RawMessage string `json:"raw_message"`
}

// String returns a compact string representation of the ParsedTransaction
func (pt *ParsedTransaction) String() string {
	amount := "?"
	if pt.Amount != nil {
		amount = pt.Amount.StringFixed(2)
	}
	txType := "?"
	if pt.Type != nil {
		txType = pt.Type.String()
	}
	return fmt.Sprintf("ParsedTransaction{Type: %s, Amount: %s, Merchant: %s, Confidence: %.2f}",
		txType, amount, pt.Merchant, pt.Confidence)
}

// AnalysisResult is the envelope handed back to the host application.
// Success is false only on an unrecoverable internal fault; a message that
// simply fails to parse still comes back with Success=true and low confidence.
type AnalysisResult struct {
	Success    bool               `json:"success"`
	Data       *ParsedTransaction `json:"data,omitempty"`
	Confidence float64            `json:"confidence"`
	Errors     []string           `json:"errors,omitempty"`
}

// IsLastFour reports whether s is exactly four ASCII digits
func IsLastFour(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatAmount renders an amount with two decimal places, the precision the
// host application displays and stores.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// ParseAmountString parses a plain numeric amount string, stripping commas
// used as thousands separators.
func ParseAmountString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount string cannot be empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format '%s': %w", s, err)
	}

	return d, nil
}
