// Package categorizer assigns budget categories to parsed transactions.
// Strategies run in a fixed order and the first result above the acceptance
// threshold wins; otherwise the best-scoring candidate is kept. Whenever
// the host supplies any category data at all, some category is assigned,
// even if only the low-confidence default.
package categorizer

import (
	"strings"

	"golang-sms-analyzer/internal/matchers"
	"golang-sms-analyzer/internal/models"
	"golang-sms-analyzer/internal/patterns"
	"golang-sms-analyzer/pkg/logger"
)

const (
	categoryAcceptThreshold = 0.5

	// merchant hint strategy: host merchant pattern carried explicit IDs
	hintFullConfidence     = 0.9
	hintCategoryConfidence = 0.75

	// direction defaults
	incomeDefaultConfidence  = 0.5
	expenseDefaultConfidence = 0.4

	verticalConfidence = 0.7

	// textKeywordScale discounts keyword hits found in the raw message
	// text rather than a resolved merchant name
	textKeywordScale = 0.6

	defaultCategoryConfidence = 0.3
)

// CategoryMatch is one candidate category assignment
type CategoryMatch struct {
	Category    *models.Category
	Subcategory *models.Subcategory
	Confidence  float64
	Method      string
}

// Matched reports whether a category was assigned
func (m CategoryMatch) Matched() bool {
	return m.Category != nil
}

// Input carries everything the categorizer considers: the resolved
// merchant, the transaction type, and the raw text for keyword scanning.
type Input struct {
	Merchant models.ExtractionResult[matchers.MerchantMatch]
	Type     *models.TransactionType
	Text     string
}

// Categorizer assigns categories from a reference snapshot. Name lookups
// are precomputed at construction over active entries only.
type Categorizer struct {
	ref              *models.ReferenceContext
	categoriesByName map[string]*models.Category
	activeCategories []*models.Category
	subsByCategory   map[string][]*models.Subcategory
	log              logger.Logger
}

// New builds a categorizer from a reference snapshot
func New(ref *models.ReferenceContext) *Categorizer {
	c := &Categorizer{
		ref:              ref,
		categoriesByName: make(map[string]*models.Category),
		subsByCategory:   make(map[string][]*models.Subcategory),
		log:              logger.WithComponent("categorizer"),
	}

	for _, category := range ref.Categories {
		if !category.Active {
			continue
		}
		c.activeCategories = append(c.activeCategories, category)
		c.categoriesByName[strings.ToLower(category.Name)] = category
	}

	for _, sub := range ref.Subcategories {
		if !sub.Active {
			continue
		}
		c.subsByCategory[sub.CategoryID] = append(c.subsByCategory[sub.CategoryID], sub)
	}

	return c
}

// Categorize returns the best category assignment for the input. With no
// active categories in the reference data the zero match is returned.
func (c *Categorizer) Categorize(input Input) CategoryMatch {
	if len(c.activeCategories) == 0 {
		return CategoryMatch{}
	}

	strategies := []func(Input) CategoryMatch{
		c.matchMerchantHint,
		c.matchMerchantKeywords,
		c.matchDirectionDefault,
		c.matchVertical,
		c.matchDefault,
	}

	var best CategoryMatch
	for _, strategy := range strategies {
		result := strategy(input)
		if result.Confidence > categoryAcceptThreshold {
			return result
		}
		if result.Confidence > best.Confidence {
			best = result
		}
	}

	return best
}

// matchMerchantHint uses the category IDs carried on a host merchant
// pattern. Both IDs resolving to active entries scores highest; a category
// without its subcategory still counts, lower.
func (c *Categorizer) matchMerchantHint(input Input) CategoryMatch {
	if !input.Merchant.HasValue() {
		return CategoryMatch{}
	}

	match := input.Merchant.MustValue()
	if match.CategoryID == "" {
		return CategoryMatch{}
	}

	category := c.ref.FindCategory(match.CategoryID)
	if category == nil || !category.Active {
		return CategoryMatch{}
	}

	if match.SubcategoryID != "" {
		if sub := c.ref.FindSubcategory(match.SubcategoryID); sub != nil && sub.Active && sub.CategoryID == category.ID {
			return CategoryMatch{
				Category:    category,
				Subcategory: sub,
				Confidence:  hintFullConfidence,
				Method:      "merchant_hint",
			}
		}
	}

	return CategoryMatch{
		Category:   category,
		Confidence: hintCategoryConfidence,
		Method:     "merchant_hint_category",
	}
}

// matchMerchantKeywords runs the built-in keyword table against the
// resolved merchant name, scaled by the merchant match confidence. With no
// resolved merchant the raw message text is scanned instead at a reduced
// scale. Rules only fire when the named category exists in the host data.
func (c *Categorizer) matchMerchantKeywords(input Input) CategoryMatch {
	haystack := ""
	scale := 0.0
	if input.Merchant.HasValue() {
		haystack = strings.ToLower(input.Merchant.MustValue().CanonicalName)
		scale = input.Merchant.Confidence
	} else {
		haystack = strings.ToLower(input.Text)
		scale = textKeywordScale
	}
	if haystack == "" {
		return CategoryMatch{}
	}

	var best CategoryMatch
	for _, rule := range patterns.MerchantKeywordRules {
		hit := false
		for _, keyword := range rule.Keywords {
			if strings.Contains(haystack, keyword) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}

		category := c.categoriesByName[strings.ToLower(rule.CategoryName)]
		if category == nil {
			continue
		}

		confidence := rule.BaseConfidence * scale
		if confidence <= best.Confidence {
			continue
		}

		best = CategoryMatch{
			Category:    category,
			Subcategory: c.findSubcategoryByName(category.ID, rule.SubcategoryName),
			Confidence:  confidence,
			Method:      "keyword_rule",
		}
	}

	return best
}

// matchDirectionDefault assigns a direction-appropriate default from the
// transaction type: incoming money lands in the first active income
// category, outgoing money in an expense category.
func (c *Categorizer) matchDirectionDefault(input Input) CategoryMatch {
	if input.Type == nil {
		return CategoryMatch{}
	}

	switch *input.Type {
	case models.TransactionTypeCredit, models.TransactionTypeDeposit, models.TransactionTypeRefund:
		category := c.firstActiveByDirection(models.DirectionIncome)
		if category == nil {
			return CategoryMatch{}
		}
		return CategoryMatch{
			Category:    category,
			Subcategory: c.firstSubcategory(category.ID),
			Confidence:  incomeDefaultConfidence,
			Method:      "direction_default",
		}

	case models.TransactionTypeDebit, models.TransactionTypePayment,
		models.TransactionTypeWithdrawal, models.TransactionTypeTransfer:
		category := c.expenseDefault()
		if category == nil {
			return CategoryMatch{}
		}
		return CategoryMatch{
			Category:    category,
			Subcategory: c.genericSubcategory(category.ID),
			Confidence:  expenseDefaultConfidence,
			Method:      "direction_default",
		}
	}

	return CategoryMatch{}
}

// matchVertical maps the curated dataset's vertical tag to the first host
// category whose name appears in the vertical's candidate list.
func (c *Categorizer) matchVertical(input Input) CategoryMatch {
	if !input.Merchant.HasValue() {
		return CategoryMatch{}
	}

	vertical := input.Merchant.MustValue().Vertical
	if vertical == "" {
		return CategoryMatch{}
	}

	for _, name := range patterns.VerticalCategoryNames[vertical] {
		if category, ok := c.categoriesByName[name]; ok {
			return CategoryMatch{
				Category:   category,
				Confidence: verticalConfidence,
				Method:     "vertical",
			}
		}
	}

	return CategoryMatch{}
}

// matchDefault is the last resort: the first active category, low
// confidence.
func (c *Categorizer) matchDefault(input Input) CategoryMatch {
	return CategoryMatch{
		Category:   c.activeCategories[0],
		Confidence: defaultCategoryConfidence,
		Method:     "default",
	}
}

// expenseDefault prefers an expense category named "needs" or "other",
// then falls back to the first active expense category.
func (c *Categorizer) expenseDefault() *models.Category {
	for _, name := range []string{"needs", "other"} {
		if category, ok := c.categoriesByName[name]; ok && category.Direction == models.DirectionExpense {
			return category
		}
	}
	return c.firstActiveByDirection(models.DirectionExpense)
}

func (c *Categorizer) firstActiveByDirection(direction models.Direction) *models.Category {
	for _, category := range c.activeCategories {
		if category.Direction == direction {
			return category
		}
	}
	return nil
}

func (c *Categorizer) firstSubcategory(categoryID string) *models.Subcategory {
	subs := c.subsByCategory[categoryID]
	if len(subs) == 0 {
		return nil
	}
	return subs[0]
}

// genericSubcategory resolves the catch-all subcategory under a category,
// used by the expense direction default. Nil when the category has none.
func (c *Categorizer) genericSubcategory(categoryID string) *models.Subcategory {
	for _, name := range []string{"needs", "other"} {
		if sub := c.findSubcategoryByName(categoryID, name); sub != nil {
			return sub
		}
	}
	return nil
}

func (c *Categorizer) findSubcategoryByName(categoryID, name string) *models.Subcategory {
	lower := strings.ToLower(name)
	for _, sub := range c.subsByCategory[categoryID] {
		if strings.ToLower(sub.Name) == lower {
			return sub
		}
	}
	return nil
}
