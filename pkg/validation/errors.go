package validation

import "fmt"

// Error code constants for machine-readable error identification.
const (
	ErrCodeRequired  = "required"
	ErrCodeType      = "type"
	ErrCodeMinLength = "min_length"
	ErrCodeMaxLength = "max_length"
	ErrCodePattern   = "pattern"
	ErrCodeFormat    = "format"
	ErrCodeMin       = "min"
	ErrCodeMax       = "max"
	ErrCodeEnum      = "enum"
	ErrCodeExpr      = "expr"
	ErrCodeSchema    = "schema"
	ErrCodePath      = "path"
	ErrCodeInvalid   = "invalid"
)

// FieldError is a validation failure for a single attribute.
type FieldError struct {
	// Field is the attribute that failed validation. Empty for
	// record-level failures.
	Field string `json:"field,omitempty"`

	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}
