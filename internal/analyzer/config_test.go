package analyzer

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	total := config.TypeWeight + config.AmountWeight + config.MerchantBonus +
		config.AccountWeight + config.CategoryWeight
	if total != 1.0 {
		t.Errorf("weights sum to %f, want 1.0", total)
	}
	if config.MinFieldConfidence != 0.0 {
		t.Errorf("MinFieldConfidence = %f, want 0", config.MinFieldConfidence)
	}
}

func TestStrictConfig(t *testing.T) {
	config := StrictConfig()

	if err := config.Validate(); err != nil {
		t.Errorf("strict config should validate: %v", err)
	}
	if config.MinFieldConfidence != 0.5 {
		t.Errorf("MinFieldConfidence = %f, want 0.5", config.MinFieldConfidence)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"negative weight", func(c *Config) { c.TypeWeight = -0.1 }, true},
		{"weight above one", func(c *Config) { c.AmountWeight = 1.5 }, true},
		{"threshold above one", func(c *Config) { c.MinFieldConfidence = 1.1 }, true},
		{"negative threshold", func(c *Config) { c.MinFieldConfidence = -0.5 }, true},
		{"zero bonus allowed", func(c *Config) { c.MerchantBonus = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	original := DefaultConfig()
	clone := original.Clone()

	clone.AmountWeight = 0.9
	clone.MinFieldConfidence = 0.8

	if original.AmountWeight != 0.3 {
		t.Errorf("mutating the clone changed the original: %f", original.AmountWeight)
	}
	if original.MinFieldConfidence != 0.0 {
		t.Errorf("mutating the clone changed the original: %f", original.MinFieldConfidence)
	}
}
