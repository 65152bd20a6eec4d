package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CategoryInput, CodeEmptyInput, "input text is empty")

	if err.Category != CategoryInput {
		t.Errorf("category = %s, want %s", err.Category, CategoryInput)
	}
	if err.Code != CodeEmptyInput {
		t.Errorf("code = %s, want %s", err.Code, CodeEmptyInput)
	}
	if err.Error() != "input text is empty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if len(err.StackTrace) == 0 {
		t.Error("expected a stack trace")
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying fault")
	err := Wrap(cause, CategoryAnalysis, CodeExtractionFailed, "extraction failed")

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if Wrap(nil, CategoryAnalysis, CodeExtractionFailed, "x") != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestErrorWithSuggestion(t *testing.T) {
	err := New(CategoryConfig, CodeInvalidConfig, "bad weight").
		WithSuggestion("use a value in [0,1]")

	if !strings.Contains(err.Error(), "suggestion") {
		t.Errorf("Error() should include the suggestion: %q", err.Error())
	}
}

func TestWithContext(t *testing.T) {
	err := New(CategoryInput, CodeInvalidInput, "bad input").
		WithContext("field", "amount").
		WithContext("value", 42)

	if err.Context["field"] != "amount" || err.Context["value"] != 42 {
		t.Errorf("context = %v", err.Context)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name         string
		err          *AnalyzerError
		wantCategory ErrorCategory
		wantCode     ErrorCode
	}{
		{"input", InputError(CodeEmptyInput, ""), CategoryInput, CodeEmptyInput},
		{"reference", ReferenceError(CodeInvalidReference, "accounts", fmt.Errorf("boom")), CategoryReference, CodeInvalidReference},
		{"config", ConfigError("weight", 1.5, nil), CategoryConfig, CodeInvalidConfig},
		{"internal", InternalError("analysis", fmt.Errorf("panic")), CategoryInternal, CodeUnexpectedError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Category != tt.wantCategory {
				t.Errorf("category = %s, want %s", tt.err.Category, tt.wantCategory)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.Suggestion == "" {
				t.Error("constructors should attach a suggestion")
			}
		})
	}
}

func TestAsAnalyzerError(t *testing.T) {
	inner := InputError(CodeEmptyInput, "")
	wrapped := fmt.Errorf("outer: %w", inner)

	got, ok := AsAnalyzerError(wrapped)
	if !ok || got.Code != CodeEmptyInput {
		t.Errorf("AsAnalyzerError failed to unwrap: %v %v", got, ok)
	}

	if _, ok := AsAnalyzerError(fmt.Errorf("plain")); ok {
		t.Error("plain error should not convert")
	}

	if !IsAnalyzerError(inner) {
		t.Error("IsAnalyzerError(inner) = false")
	}
	if IsAnalyzerError(wrapped) {
		t.Error("IsAnalyzerError should not unwrap")
	}
}
