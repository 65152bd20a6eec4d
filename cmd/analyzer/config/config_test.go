package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateAnalyzerConfig(t *testing.T) {
	tests := []struct {
		preset            string
		wantErr           bool
		wantMinConfidence float64
	}{
		{"default", false, 0.0},
		{"", false, 0.0},
		{"strict", false, 0.5},
		{"STRICT", false, 0.5},
		{"relaxed", false, 0.0},
		{"aggressive", true, 0},
	}

	for _, tt := range tests {
		t.Run("preset "+tt.preset, func(t *testing.T) {
			config, err := CreateAnalyzerConfig(tt.preset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if config.MinFieldConfidence != tt.wantMinConfidence {
				t.Errorf("MinFieldConfidence = %f, want %f",
					config.MinFieldConfidence, tt.wantMinConfidence)
			}
		})
	}
}

func TestLoadReferenceFile(t *testing.T) {
	ref, err := LoadReferenceFile("../../../testdata/reference.json")
	if err != nil {
		t.Fatalf("LoadReferenceFile failed: %v", err)
	}

	if len(ref.Accounts) != 2 {
		t.Errorf("accounts = %d, want 2", len(ref.Accounts))
	}
	if len(ref.Cards) != 1 {
		t.Errorf("cards = %d, want 1", len(ref.Cards))
	}
	if len(ref.Categories) != 4 {
		t.Errorf("categories = %d, want 4", len(ref.Categories))
	}
	if len(ref.Subcategories) != 3 {
		t.Errorf("subcategories = %d, want 3", len(ref.Subcategories))
	}
	if len(ref.MerchantPatterns) != 2 {
		t.Errorf("merchant patterns = %d, want 2", len(ref.MerchantPatterns))
	}
}

func TestLoadReferenceFileAssignsIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.json")
	data := `{
		"accounts": [
			{"name": "Main", "bank_name": "HDFC Bank", "last_four": "1234", "kind": "bank_account", "active": true}
		],
		"categories": [
			{"name": "Misc", "direction": "expense", "active": true}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	ref, err := LoadReferenceFile(path)
	if err != nil {
		t.Fatalf("LoadReferenceFile failed: %v", err)
	}

	if ref.Accounts[0].ID == "" {
		t.Error("account ID should be generated when omitted")
	}
	if ref.Categories[0].ID == "" {
		t.Error("category ID should be generated when omitted")
	}
}

func TestLoadReferenceFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadReferenceFile("does-not-exist.json"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		if _, err := LoadReferenceFile(path); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("invalid reference data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.json")
		data := `{
			"subcategories": [
				{"id": "sub-1", "name": "Orphan", "category_id": "missing", "active": true}
			]
		}`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		if _, err := LoadReferenceFile(path); err == nil {
			t.Error("expected validation error for orphaned subcategory")
		}
	})
}
