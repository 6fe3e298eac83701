// Package errors defines the error taxonomy used across the budget engine.
//
// Every failure surfaced to a caller is a *BudgetError carrying a category,
// a specific code, an optional suggestion for fixing the problem, and a
// context map with the values involved. Validation-style failures (an
// incomplete column mapping, an unbalanced split) are returned as values for
// the caller to render; nothing in the engine panics on bad input.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryFile           ErrorCategory = "file"
	CategoryParse          ErrorCategory = "parse"
	CategoryMapping        ErrorCategory = "mapping"
	CategoryValidation     ErrorCategory = "validation"
	CategoryClassification ErrorCategory = "classification"
	CategoryReconciliation ErrorCategory = "reconciliation"
	CategoryInternal       ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeNotCSV         ErrorCode = "not_csv"
	CodeFileUnreadable ErrorCode = "file_unreadable"

	// Parse errors
	CodeEmptyFile     ErrorCode = "empty_file"
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeInvalidData   ErrorCode = "invalid_data"

	// Mapping errors
	CodeIncompleteMapping ErrorCode = "incomplete_mapping"
	CodeUnknownProfile    ErrorCode = "unknown_profile"

	// Validation errors
	CodeInvalidAmount ErrorCode = "invalid_amount"
	CodeInvalidDate   ErrorCode = "invalid_date"
	CodeMissingField  ErrorCode = "missing_field"

	// Reconciliation errors
	CodeTransactionNotFound ErrorCode = "transaction_not_found"
	CodeUnbalancedSplit     ErrorCode = "unbalanced_split"
	CodeEmptySelection      ErrorCode = "empty_selection"
	CodeNoParts             ErrorCode = "no_parts"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
	CodeStorageError    ErrorCode = "storage_error"
)

// BudgetError is the base error type for all engine errors
type BudgetError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *BudgetError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *BudgetError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate exit code for the error
func (e *BudgetError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryParse, CategoryMapping, CategoryValidation:
		return 3
	case CategoryClassification, CategoryReconciliation, CategoryInternal:
		return 4
	default:
		return 1
	}
}

// WithContext adds context information to the error
func (e *BudgetError) WithContext(key string, value interface{}) *BudgetError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *BudgetError) WithSuggestion(suggestion string) *BudgetError {
	e.Suggestion = suggestion
	return e
}

// New creates a new BudgetError
func New(category ErrorCategory, code ErrorCode, message string) *BudgetError {
	return &BudgetError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with BudgetError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *BudgetError {
	if err == nil {
		return nil
	}

	return &BudgetError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// FileError creates a file-related error
func FileError(code ErrorCode, path string, err error) *BudgetError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check that the file path is correct and the file exists"
	case CodeNotCSV:
		message = fmt.Sprintf("not a CSV file: %s", path)
		suggestion = "export the data as a .csv file and try again"
	case CodeFileUnreadable:
		message = fmt.Sprintf("unable to read file: %s", path)
		suggestion = "check file permissions and encoding"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	var result *BudgetError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// ParseError creates a parsing-related error
func ParseError(code ErrorCode, line int, detail string, err error) *BudgetError {
	var message string
	var suggestion string

	switch code {
	case CodeEmptyFile:
		message = "file contains no data rows"
		suggestion = "ensure the file has a header row and at least one data row"
	case CodeInvalidFormat:
		message = fmt.Sprintf("invalid CSV format at line %d: %s", line, detail)
		suggestion = "check for unbalanced quotes or mismatched delimiters"
	case CodeInvalidData:
		message = fmt.Sprintf("invalid data at line %d: %s", line, detail)
		suggestion = "correct the data or remove the invalid row"
	default:
		message = fmt.Sprintf("parse error at line %d: %s", line, detail)
		suggestion = "check the file format"
	}

	var result *BudgetError
	if err != nil {
		result = Wrap(err, CategoryParse, code, message)
	} else {
		result = New(CategoryParse, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("line", line).
		WithContext("detail", detail)
}

// MappingError creates a column-mapping error
func MappingError(code ErrorCode, detail string) *BudgetError {
	var message string
	var suggestion string

	switch code {
	case CodeIncompleteMapping:
		message = fmt.Sprintf("column mapping is incomplete: %s", detail)
		suggestion = "map the date, description, and amount columns before importing"
	case CodeUnknownProfile:
		message = fmt.Sprintf("unknown mapping profile: %s", detail)
		suggestion = "list saved profiles with 'budgetctl profiles'"
	default:
		message = fmt.Sprintf("mapping error: %s", detail)
		suggestion = "review the column mapping"
	}

	return New(CategoryMapping, code, message).
		WithSuggestion(suggestion).
		WithContext("detail", detail)
}

// ValidationError creates a validation-related error
func ValidationError(code ErrorCode, field string, value interface{}) *BudgetError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidAmount:
		message = fmt.Sprintf("invalid amount in field '%s': %v", field, value)
		suggestion = "amounts must be decimal numbers such as '12.34'"
	case CodeInvalidDate:
		message = fmt.Sprintf("invalid date in field '%s': %v", field, value)
		suggestion = "use a date format such as YYYY-MM-DD"
	case CodeMissingField:
		message = fmt.Sprintf("required field '%s' is missing or empty", field)
		suggestion = "provide a value for this field"
	default:
		message = fmt.Sprintf("validation error in field '%s': %v", field, value)
		suggestion = "check the field value"
	}

	return New(CategoryValidation, code, message).
		WithSuggestion(suggestion).
		WithContext("field", field).
		WithContext("value", value)
}

// ReconcileError creates a reconciliation-related error
func ReconcileError(code ErrorCode, detail string) *BudgetError {
	var message string
	var suggestion string

	switch code {
	case CodeTransactionNotFound:
		message = fmt.Sprintf("transaction not found: %s", detail)
		suggestion = "the transaction may have been deleted or combined already"
	case CodeUnbalancedSplit:
		message = fmt.Sprintf("split amounts do not sum to the original amount: %s", detail)
		suggestion = "adjust the split amounts or use auto-distribute"
	case CodeEmptySelection:
		message = "combine requires at least one other transaction"
		suggestion = "select one or more transactions to combine with"
	case CodeNoParts:
		message = "split requires at least one part"
		suggestion = "add at least one split item"
	default:
		message = fmt.Sprintf("reconciliation error: %s", detail)
		suggestion = "review the transaction data"
	}

	return New(CategoryReconciliation, code, message).
		WithSuggestion(suggestion).
		WithContext("detail", detail)
}

// InternalError creates an internal error
func InternalError(code ErrorCode, operation string, err error) *BudgetError {
	var message string
	var suggestion string

	switch code {
	case CodeStorageError:
		message = fmt.Sprintf("storage error during %s", operation)
		suggestion = "check that the data directory exists and is writable"
	default:
		message = fmt.Sprintf("unexpected error during %s", operation)
		suggestion = "this is likely a bug - please report it with the error details"
	}

	var result *BudgetError
	if err != nil {
		result = Wrap(err, CategoryInternal, code, message)
	} else {
		result = New(CategoryInternal, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("operation", operation)
}

// ErrorSummary provides a summary of multiple errors
type ErrorSummary struct {
	Total      int                   `json:"total"`
	ByCategory map[ErrorCategory]int `json:"by_category"`
	ByCode     map[ErrorCode]int     `json:"by_code"`
	Errors     []*BudgetError        `json:"errors"`
}

// NewErrorSummary creates a new error summary
func NewErrorSummary(errs []*BudgetError) *ErrorSummary {
	summary := &ErrorSummary{
		Total:      len(errs),
		ByCategory: make(map[ErrorCategory]int),
		ByCode:     make(map[ErrorCode]int),
		Errors:     errs,
	}

	for _, err := range errs {
		summary.ByCategory[err.Category]++
		summary.ByCode[err.Code]++
	}

	return summary
}

// Error returns a formatted error message for the summary
func (es *ErrorSummary) Error() string {
	if es.Total == 0 {
		return "no errors"
	}

	if es.Total == 1 {
		return es.Errors[0].Error()
	}

	var categories []string
	for category, count := range es.ByCategory {
		categories = append(categories, fmt.Sprintf("%s: %d", category, count))
	}

	return fmt.Sprintf("%d errors occurred (%s)", es.Total, strings.Join(categories, ", "))
}

// HasCategory checks if the summary contains errors of the given category
func (es *ErrorSummary) HasCategory(category ErrorCategory) bool {
	return es.ByCategory[category] > 0
}

// GetExitCode returns the highest priority exit code from all errors
func (es *ErrorSummary) GetExitCode() int {
	if es.Total == 0 {
		return 0
	}

	maxCode := 1
	for _, err := range es.Errors {
		if code := err.GetExitCode(); code > maxCode {
			maxCode = code
		}
	}

	return maxCode
}

// IsBudgetError checks if an error is a BudgetError
func IsBudgetError(err error) bool {
	_, ok := err.(*BudgetError)
	return ok
}

// AsBudgetError extracts a BudgetError from an error chain
func AsBudgetError(err error) (*BudgetError, bool) {
	var budgetErr *BudgetError
	if errors.As(err, &budgetErr) {
		return budgetErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain
func HasCode(err error, code ErrorCode) bool {
	if budgetErr, ok := AsBudgetError(err); ok {
		return budgetErr.Code == code
	}
	return false
}
