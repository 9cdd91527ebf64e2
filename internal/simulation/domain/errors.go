package domain

import (
	"errors"
	"fmt"
)

const (
	CodeValidationError  = "validation_error"
	CodeCalculationError = "calculation_error"
)

var (
	ErrDownPaymentExceedsCost = errors.New("down_payment_exceeds_cost")
	ErrOwnershipNotComplete   = errors.New("ownership_not_complete")
	ErrMissingShareholders    = errors.New("missing_shareholders")
	ErrRegimeMismatch         = errors.New("regime_mismatch")
	ErrInvalidPayload         = errors.New("invalid_payload")
	ErrInvalidField           = errors.New("invalid_field")
)

// ValidationError is a user-fixable problem with the submitted record.
type ValidationError struct {
	Field   string         `json:"field,omitempty"`
	Reason  error          `json:"-"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func NewValidationError(field string, reason error, message string, details map[string]any) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Message: message, Details: details}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

func (e *ValidationError) ErrorCode() string { return CodeValidationError }

// CalculationError wraps an unexpected failure inside one engine stage.
type CalculationError struct {
	Stage string
	Err   error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *CalculationError) Unwrap() error { return e.Err }

func (e *CalculationError) ErrorCode() string { return CodeCalculationError }
