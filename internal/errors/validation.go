package errors

import "fmt"

// ValidationError is a field-scoped error record returned by catalog
// mutations. A mutation response carries either a payload or a non-empty
// ordered list of these, never both.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	// Conflicting identifiers, populated for stock/channel sub-list errors
	// so one indexed error can name every offender.
	Warehouses []string `json:"warehouses,omitempty"`
	Channels   []string `json:"channels,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// Validation builds a field-scoped error record.
func Validation(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

// BulkError is a ValidationError tagged with the index of the batch item
// that triggered it.
type BulkError struct {
	Index int `json:"index"`
	ValidationError
}

// Bulk tags a validation error with its originating batch index.
func Bulk(index int, err *ValidationError) BulkError {
	return BulkError{Index: index, ValidationError: *err}
}
