package analyzer

import (
	"fmt"
	"time"
)

// Config controls the analyzer's confidence arithmetic and acceptance
// thresholds. The weights decide how much each resolved field contributes
// to the aggregate transaction confidence.
type Config struct {
	// Field weights for the aggregate confidence score
	TypeWeight     float64 `json:"type_weight"`
	AmountWeight   float64 `json:"amount_weight"`
	MerchantBonus  float64 `json:"merchant_bonus"`
	AccountWeight  float64 `json:"account_weight"`
	CategoryWeight float64 `json:"category_weight"`

	// MinFieldConfidence drops extracted fields scoring below it
	MinFieldConfidence float64 `json:"min_field_confidence"`

	// Clock supplies "now" for date extraction; nil means the wall clock.
	// Injectable for deterministic tests.
	Clock func() time.Time `json:"-"`
}

// DefaultConfig returns the standard analyzer configuration
func DefaultConfig() *Config {
	return &Config{
		TypeWeight:         0.2,
		AmountWeight:       0.3,
		MerchantBonus:      0.2,
		AccountWeight:      0.15,
		CategoryWeight:     0.15,
		MinFieldConfidence: 0.0,
	}
}

// StrictConfig returns a configuration that discards weakly-scored fields,
// trading recall for precision.
func StrictConfig() *Config {
	config := DefaultConfig()
	config.MinFieldConfidence = 0.5
	return config
}

// RelaxedConfig returns a configuration that keeps every field the
// extractors produce, however weak.
func RelaxedConfig() *Config {
	return DefaultConfig()
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	weights := map[string]float64{
		"type_weight":     c.TypeWeight,
		"amount_weight":   c.AmountWeight,
		"merchant_bonus":  c.MerchantBonus,
		"account_weight":  c.AccountWeight,
		"category_weight": c.CategoryWeight,
	}

	for name, weight := range weights {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("%s must be in [0,1], got %f", name, weight)
		}
	}

	if c.MinFieldConfidence < 0 || c.MinFieldConfidence > 1 {
		return fmt.Errorf("min_field_confidence must be in [0,1], got %f", c.MinFieldConfidence)
	}

	return nil
}

// Clone returns a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
