// Package errors provides structured error handling for the catalog modules.
// Validation failures and database failures are told apart by ErrorType so
// the HTTP layer can pick a status code.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType classifies a CatalogError
type ErrorType string

const (
	// ErrorTypeValidation indicates rejected input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeDatabase indicates a failed database operation
	ErrorTypeDatabase ErrorType = "database"
	// ErrorTypeInternal indicates internal system errors
	ErrorTypeInternal ErrorType = "internal"
)

// Sentinel errors for common scenarios
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidSource       = errors.New("invalid source")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidPriceRange   = errors.New("invalid price range")
	ErrInvalidLocationType = errors.New("invalid location type")
	ErrDatabaseOperation   = errors.New("database operation failed")
)

// CatalogError provides structured error information with context
type CatalogError struct {
	Type    ErrorType              // Error classification
	Op      string                 // Operation that failed (e.g. "create_book")
	ItemID  string                 // Related item ID if applicable
	Field   string                 // Offending UI field for validation errors
	Err     error                  // Underlying error
	Details map[string]interface{} // Additional context
}

// Error implements the error interface
func (e *CatalogError) Error() string {
	var context []string
	if e.ItemID != "" {
		context = append(context, fmt.Sprintf("item=%s", e.ItemID))
	}
	if e.Field != "" {
		context = append(context, fmt.Sprintf("field=%s", e.Field))
	}

	if len(context) > 0 {
		return fmt.Sprintf("%s error in %s [%s]: %v", e.Type, e.Op, strings.Join(context, " "), e.Err)
	}
	return fmt.Sprintf("%s error in %s: %v", e.Type, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// New creates a new CatalogError
func New(errType ErrorType, op string, err error) *CatalogError {
	return &CatalogError{
		Type:    errType,
		Op:      op,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// WithItem adds item context to the error
func (e *CatalogError) WithItem(itemID string) *CatalogError {
	e.ItemID = itemID
	return e
}

// WithField names the input field that was rejected
func (e *CatalogError) WithField(field string) *CatalogError {
	e.Field = field
	return e
}

// WithDetail adds a key-value detail to the error
func (e *CatalogError) WithDetail(key string, value interface{}) *CatalogError {
	e.Details[key] = value
	return e
}

// Message is the client-facing text of the error without the op prefix
func (e *CatalogError) Message() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return e.Err.Error()
}

// ValidationError creates a validation error
func ValidationError(op string, err error) *CatalogError {
	return New(ErrorTypeValidation, op, err)
}

// DatabaseError creates a database operation error
func DatabaseError(op string, err error) *CatalogError {
	return New(ErrorTypeDatabase, op, err)
}

// InternalError creates an internal system error
func InternalError(op string, err error) *CatalogError {
	return New(ErrorTypeInternal, op, err)
}

// InvalidValue reports an enum value outside its lookup table. The accepted
// values are attached as a detail in sorted order.
func InvalidValue(op, field string, sentinel error, value string, allowed []string) *CatalogError {
	sorted := append([]string(nil), allowed...)
	sort.Strings(sorted)
	return ValidationError(op, fmt.Errorf("%w %q", sentinel, value)).
		WithField(field).
		WithDetail("allowed", sorted)
}

// MissingField reports an absent required field
func MissingField(op, field string) *CatalogError {
	return ValidationError(op, ErrMissingField).WithField(field)
}

// Wrap wraps an error with operation context if it's not already a CatalogError
func Wrap(err error, errType ErrorType, op string) error {
	if err == nil {
		return nil
	}

	var cErr *CatalogError
	if errors.As(err, &cErr) {
		return err
	}
	return New(errType, op, err)
}

// GetType extracts the error type from an error
func GetType(err error) ErrorType {
	var cErr *CatalogError
	if errors.As(err, &cErr) {
		return cErr.Type
	}
	return ErrorTypeInternal
}

// IsValidationError reports whether err is a catalog validation error
func IsValidationError(err error) bool {
	var cErr *CatalogError
	return errors.As(err, &cErr) && cErr.Type == ErrorTypeValidation
}

// IsDatabaseError reports whether err is a catalog database error
func IsDatabaseError(err error) bool {
	var cErr *CatalogError
	return errors.As(err, &cErr) && cErr.Type == ErrorTypeDatabase
}
