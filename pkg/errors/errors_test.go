package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestBudgetErrorMessage(t *testing.T) {
	err := New(CategoryParse, CodeInvalidFormat, "bad row")
	if err.Error() != "bad row" {
		t.Errorf("Expected 'bad row', got %q", err.Error())
	}

	err.WithSuggestion("fix the row")
	if !strings.Contains(err.Error(), "suggestion: fix the row") {
		t.Errorf("Expected suggestion in message, got %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(cause, CategoryFile, CodeFileUnreadable, "read failed")

	if err.Unwrap() != cause {
		t.Error("Expected Unwrap to return the cause")
	}

	if Wrap(nil, CategoryFile, CodeFileUnreadable, "x") != nil {
		t.Error("Wrapping nil should return nil")
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     int
	}{
		{CategoryFile, 2},
		{CategoryParse, 3},
		{CategoryMapping, 3},
		{CategoryValidation, 3},
		{CategoryReconciliation, 4},
		{CategoryInternal, 4},
	}

	for _, tt := range tests {
		err := New(tt.category, CodeUnexpectedError, "test")
		if got := err.GetExitCode(); got != tt.want {
			t.Errorf("Category %s: expected exit code %d, got %d", tt.category, tt.want, got)
		}
	}
}

func TestConstructorsSetContext(t *testing.T) {
	err := FileError(CodeNotCSV, "statement.txt", nil)
	if err.Context["file_path"] != "statement.txt" {
		t.Error("Expected file_path in context")
	}
	if err.Category != CategoryFile {
		t.Errorf("Expected file category, got %s", err.Category)
	}

	merr := MappingError(CodeIncompleteMapping, "amount column unmapped")
	if merr.Code != CodeIncompleteMapping {
		t.Errorf("Expected incomplete_mapping code, got %s", merr.Code)
	}

	rerr := ReconcileError(CodeEmptySelection, "")
	if rerr.Suggestion == "" {
		t.Error("Expected a suggestion on reconcile errors")
	}
}

func TestHasCode(t *testing.T) {
	err := ParseError(CodeEmptyFile, 0, "", nil)

	if !HasCode(err, CodeEmptyFile) {
		t.Error("Expected HasCode to match")
	}
	if HasCode(err, CodeInvalidFormat) {
		t.Error("Expected HasCode not to match a different code")
	}
	if HasCode(fmt.Errorf("plain"), CodeEmptyFile) {
		t.Error("Expected HasCode false for plain errors")
	}
}

func TestErrorSummary(t *testing.T) {
	errs := []*BudgetError{
		ParseError(CodeInvalidData, 3, "bad amount", nil),
		ParseError(CodeInvalidData, 7, "bad date", nil),
		FileError(CodeFileNotFound, "missing.csv", nil),
	}

	summary := NewErrorSummary(errs)

	if summary.Total != 3 {
		t.Errorf("Expected 3 errors, got %d", summary.Total)
	}
	if summary.ByCategory[CategoryParse] != 2 {
		t.Errorf("Expected 2 parse errors, got %d", summary.ByCategory[CategoryParse])
	}
	if !summary.HasCategory(CategoryFile) {
		t.Error("Expected file category present")
	}
	if summary.GetExitCode() != 3 {
		t.Errorf("Expected exit code 3, got %d", summary.GetExitCode())
	}

	empty := NewErrorSummary(nil)
	if empty.GetExitCode() != 0 {
		t.Errorf("Expected exit code 0 for empty summary, got %d", empty.GetExitCode())
	}
}
