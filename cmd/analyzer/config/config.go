// Package config builds the analyzer configuration and reference data used
// by the CLI commands.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang-sms-analyzer/internal/analyzer"
	"golang-sms-analyzer/internal/models"

	"github.com/google/uuid"
)

// CreateAnalyzerConfig returns the analyzer configuration for a named
// preset: default, strict, or relaxed.
func CreateAnalyzerConfig(preset string) (*analyzer.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", "default":
		return analyzer.DefaultConfig(), nil
	case "strict":
		return analyzer.StrictConfig(), nil
	case "relaxed":
		return analyzer.RelaxedConfig(), nil
	}
	return nil, fmt.Errorf("unknown preset '%s'. Valid presets: default, strict, relaxed", preset)
}

// LoadReferenceFile reads a JSON reference data file into a
// ReferenceContext. Entities without an ID are assigned one, so hand-written
// reference files can omit them. The loaded context is validated before it
// is returned.
func LoadReferenceFile(path string) (*models.ReferenceContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference file %s: %w", path, err)
	}

	var ref models.ReferenceContext
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("failed to parse reference file %s: %w", path, err)
	}

	assignMissingIDs(&ref)

	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reference data in %s: %w", path, err)
	}

	return &ref, nil
}

// assignMissingIDs fills in generated IDs for entities that omit them
func assignMissingIDs(ref *models.ReferenceContext) {
	for _, account := range ref.Accounts {
		if account.ID == "" {
			account.ID = uuid.NewString()
		}
	}
	for _, card := range ref.Cards {
		if card.ID == "" {
			card.ID = uuid.NewString()
		}
	}
	for _, category := range ref.Categories {
		if category.ID == "" {
			category.ID = uuid.NewString()
		}
	}
	for _, sub := range ref.Subcategories {
		if sub.ID == "" {
			sub.ID = uuid.NewString()
		}
	}
	for _, pattern := range ref.MerchantPatterns {
		if pattern.ID == "" {
			pattern.ID = uuid.NewString()
		}
	}
}
