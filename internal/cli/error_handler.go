package cli

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"worktime/internal/errors"
	"worktime/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := validation.AsValidationError(err); ok {
		return fmt.Errorf("failed to %s:\n%s", operation, FormatFieldErrors(ve))
	}
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := validation.AsValidationError(err); ok {
		return stderrors.New(FormatFieldErrors(ve))
	}
	if _, ok := errors.AsAppError(err); ok {
		return stderrors.New(errors.GetUserMessage(err))
	}
	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsNotFound(err)
}

// IsNoActiveSession checks if an error reports an idle session
func (eh *ErrorHandler) IsNoActiveSession(err error) bool {
	return stderrors.Is(err, errors.ErrNoActiveSession)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// FormatFieldErrors renders one "- message" line per field error,
// ordered by the field's position in the entry form
func FormatFieldErrors(ve *validation.ValidationError) string {
	fieldErrors := append([]validation.FieldError(nil), ve.Errors...)
	sort.SliceStable(fieldErrors, func(i, j int) bool {
		return fieldOrder(fieldErrors[i].Field) < fieldOrder(fieldErrors[j].Field)
	})

	lines := make([]string, len(fieldErrors))
	for i, fe := range fieldErrors {
		lines[i] = "  - " + fe.Message
	}
	return strings.Join(lines, "\n")
}

var formFields = []string{"date", "startTime", "endTime", "breakDuration", "project", "notes"}

func fieldOrder(field string) int {
	for i, f := range formFields {
		if f == field {
			return i
		}
	}
	return len(formFields)
}
