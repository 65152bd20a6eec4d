// Package analyzer orchestrates the full message-to-transaction pipeline:
// field extraction, account and merchant resolution, categorization, and
// the aggregate confidence score. The analyzer is safe for concurrent use;
// reference data updates swap in freshly built matchers under a write lock.
package analyzer

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"golang-sms-analyzer/internal/categorizer"
	"golang-sms-analyzer/internal/extractors"
	"golang-sms-analyzer/internal/matchers"
	"golang-sms-analyzer/internal/models"
	"golang-sms-analyzer/pkg/errors"
	"golang-sms-analyzer/pkg/logger"
)

// Analyzer turns one notification message into a structured transaction
// record with a confidence score.
type Analyzer struct {
	mu sync.RWMutex

	ref             *models.ReferenceContext
	accountMatcher  *matchers.AccountMatcher
	merchantMatcher *matchers.MerchantMatcher
	categorizer     *categorizer.Categorizer

	typeExtractor     *extractors.TypeExtractor
	amountExtractor   *extractors.AmountExtractor
	dateExtractor     *extractors.DateExtractor
	merchantExtractor *extractors.RawMerchantExtractor

	config *Config
	log    logger.Logger
}

// New creates an analyzer from a reference snapshot and configuration. The
// reference data is validated up front; a nil config means DefaultConfig.
func New(ref *models.ReferenceContext, config *Config) (*Analyzer, error) {
	if ref == nil {
		return nil, errors.ReferenceError(errors.CodeMissingReference, "reference context", nil)
	}

	if err := ref.Validate(); err != nil {
		return nil, errors.ReferenceError(errors.CodeInvalidReference, "reference context", err)
	}

	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, errors.ConfigError("analyzer", config, err)
	}
	config = config.Clone()

	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	a := &Analyzer{
		ref:               ref,
		accountMatcher:    matchers.NewAccountMatcher(ref),
		merchantMatcher:   matchers.NewMerchantMatcher(ref),
		categorizer:       categorizer.New(ref),
		typeExtractor:     extractors.NewTypeExtractor(),
		amountExtractor:   extractors.NewAmountExtractor(),
		dateExtractor:     extractors.NewDateExtractorAt(clock),
		merchantExtractor: extractors.NewRawMerchantExtractor(),
		config:            config,
		log:               logger.WithComponent("analyzer"),
	}

	a.log.WithFields(logger.Fields{
		"accounts":          len(ref.Accounts),
		"cards":             len(ref.Cards),
		"categories":        len(ref.Categories),
		"merchant_patterns": len(ref.MerchantPatterns),
	}).Info("analyzer initialized")

	return a, nil
}

// Analyze parses one notification message. It never returns an error:
// unparseable messages come back with Success=true and low confidence,
// and only empty input or an internal fault produces Success=false.
func (a *Analyzer) Analyze(text string) (result models.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.InternalError("analysis", nil).WithContext("panic", r)
			a.log.WithField("panic", r).Error("analysis panicked")
			result = models.AnalysisResult{
				Success: false,
				Errors:  []string{err.Error()},
			}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return models.AnalysisResult{
			Success: false,
			Errors:  []string{errors.InputError(errors.CodeEmptyInput, "").Error()},
		}
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	min := a.config.MinFieldConfidence
	typeResult := gate(a.typeExtractor.Extract(text), min)
	amountResult := gate(a.amountExtractor.Extract(text), min)
	dateResult := gate(a.dateExtractor.Extract(text), min)
	rawMerchant := gate(a.merchantExtractor.Extract(text), min)

	merchantResult := a.resolveMerchant(rawMerchant)
	accountMatch := a.accountMatcher.Match(text)
	categoryMatch := a.categorizer.Categorize(categorizer.Input{
		Merchant: merchantResult,
		Type:     typeResult.Value,
		Text:     text,
	})

	tx := a.assemble(text, typeResult, amountResult, dateResult, merchantResult, accountMatch, categoryMatch)
	tx.Confidence = a.score(typeResult, amountResult, merchantResult, accountMatch, categoryMatch)

	a.log.WithFields(logger.Fields{
		"confidence": tx.Confidence,
		"merchant":   tx.Merchant,
	}).Debug("message analyzed")

	return models.AnalysisResult{
		Success:    true,
		Data:       tx,
		Confidence: tx.Confidence,
	}
}

// UpdateContext applies a partial reference data update. The merged
// snapshot is validated before anything is swapped; on failure the
// analyzer keeps its previous state.
func (a *Analyzer) UpdateContext(update models.ReferenceUpdate) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	merged := a.ref.Merge(update)
	if err := merged.Validate(); err != nil {
		return errors.ReferenceError(errors.CodeInvalidReference, "reference update", err)
	}

	a.ref = merged
	a.accountMatcher = matchers.NewAccountMatcher(merged)
	a.merchantMatcher = matchers.NewMerchantMatcher(merged)
	a.categorizer = categorizer.New(merged)

	a.log.WithFields(logger.Fields{
		"accounts":          len(merged.Accounts),
		"cards":             len(merged.Cards),
		"categories":        len(merged.Categories),
		"merchant_patterns": len(merged.MerchantPatterns),
	}).Info("reference context updated")

	return nil
}

// Reference returns the current reference snapshot
func (a *Analyzer) Reference() *models.ReferenceContext {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ref
}

// gate drops a field whose confidence falls below the configured minimum
func gate[T any](result models.ExtractionResult[T], min float64) models.ExtractionResult[T] {
	if result.HasValue() && result.Confidence < min {
		return models.NoMatch[T]()
	}
	return result
}

// resolveMerchant normalizes the raw merchant capture against known
// merchants. The combined confidence is the extraction confidence scaled
// by the normalization confidence, floored at the extraction fallback so a
// confident capture of an unknown merchant is not wiped out.
func (a *Analyzer) resolveMerchant(raw models.ExtractionResult[string]) models.ExtractionResult[matchers.MerchantMatch] {
	if !raw.HasValue() {
		return models.NoMatch[matchers.MerchantMatch]()
	}

	match := a.merchantMatcher.Normalize(raw.MustValue())
	if !match.Matched() {
		return models.NoMatch[matchers.MerchantMatch]()
	}

	confidence := raw.Confidence * match.Confidence
	if floor := raw.Confidence * 0.3; confidence < floor {
		confidence = floor
	}

	return models.Extracted(match, confidence, raw.MatchedText, match.Method)
}

// assemble builds the ParsedTransaction from the per-field results
func (a *Analyzer) assemble(
	text string,
	typeResult models.ExtractionResult[models.TransactionType],
	amountResult models.ExtractionResult[decimal.Decimal],
	dateResult models.ExtractionResult[time.Time],
	merchantResult models.ExtractionResult[matchers.MerchantMatch],
	accountMatch *matchers.AccountMatch,
	categoryMatch categorizer.CategoryMatch,
) *models.ParsedTransaction {
	tx := &models.ParsedTransaction{
		Description: strings.Join(strings.Fields(text), " "),
		RawMessage:  text,
	}

	if typeResult.HasValue() {
		tx.Type = typeResult.Value
	}
	if amountResult.HasValue() {
		tx.Amount = amountResult.Value
	}
	if dateResult.HasValue() {
		tx.Date = dateResult.Value
	}
	if merchantResult.HasValue() {
		tx.Merchant = merchantResult.MustValue().CanonicalName
	}
	if accountMatch != nil {
		tx.AccountID = accountMatch.EntityID
		tx.AccountKind = accountMatch.Kind
	}
	if categoryMatch.Matched() {
		tx.CategoryID = categoryMatch.Category.ID
		if categoryMatch.Subcategory != nil {
			tx.SubcategoryID = categoryMatch.Subcategory.ID
		}
	}

	return tx
}

// score computes the aggregate confidence: each resolved field contributes
// its own confidence scaled by the configured weight, except merchant which
// contributes a flat bonus when present. The sum is capped at 1.
func (a *Analyzer) score(
	typeResult models.ExtractionResult[models.TransactionType],
	amountResult models.ExtractionResult[decimal.Decimal],
	merchantResult models.ExtractionResult[matchers.MerchantMatch],
	accountMatch *matchers.AccountMatch,
	categoryMatch categorizer.CategoryMatch,
) float64 {
	total := 0.0

	if typeResult.HasValue() {
		total += a.config.TypeWeight * typeResult.Confidence
	}
	if amountResult.HasValue() {
		total += a.config.AmountWeight * amountResult.Confidence
	}
	if merchantResult.HasValue() {
		total += a.config.MerchantBonus
	}
	if accountMatch != nil {
		total += a.config.AccountWeight * accountMatch.Confidence
	}
	if categoryMatch.Matched() {
		total += a.config.CategoryWeight * categoryMatch.Confidence
	}

	if total > 1 {
		total = 1
	}
	return total
}
