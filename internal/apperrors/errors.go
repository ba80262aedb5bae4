// Package apperrors defines the errors the contact API turns into JSON
// responses. Message is always safe to show to the visitor; Raw is only logged.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

type ErrorType string

const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
	InvalidInputError  ErrorType = "INVALID_INPUT"
	ValidationError    ErrorType = "VALIDATION_ERROR"
	RateLimitError     ErrorType = "RATE_LIMITED"
	ServerError        ErrorType = "SERVER_ERROR"
)

// Client-facing messages.
const (
	MsgConfiguration = "Serverkonfigurationsfehler. Bitte versuchen Sie es später erneut."
	MsgInvalidInput  = "Es wurden ungültige Anfragedaten übermittelt."
	MsgValidation    = "Bitte überprüfen Sie Ihre Eingaben."
	MsgInternal      = "Ein unerwarteter Fehler ist aufgetreten. Bitte versuchen Sie es später erneut."
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType
	Message    string
	HTTPStatus int
	Fields     map[string]string
	ResetAt    time.Time
	Raw        error
}

func (e *AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Raw)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error { return e.Raw }

// RetryAfter returns the whole seconds until ResetAt, at least 1.
func (e *AppError) RetryAfter(now time.Time) int {
	seconds := int(e.ResetAt.Sub(now).Seconds() + 0.999)
	if seconds < 1 {
		return 1
	}
	return seconds
}

func ConfigError(err error) *AppError {
	return &AppError{
		Type:       ConfigurationError,
		Message:    MsgConfiguration,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InvalidInput(err error) *AppError {
	return &AppError{
		Type:       InvalidInputError,
		Message:    MsgInvalidInput,
		HTTPStatus: http.StatusBadRequest,
		Raw:        err,
	}
}

func ValidationFailed(fields map[string]string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    MsgValidation,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

func RateLimited(resetAt time.Time) *AppError {
	return &AppError{
		Type: RateLimitError,
		Message: fmt.Sprintf("Zu viele Anfragen. Bitte versuchen Sie es nach %s Uhr erneut.",
			models.FormatDisplayTime(resetAt)),
		HTTPStatus: http.StatusTooManyRequests,
		ResetAt:    resetAt,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    MsgInternal,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// From converts any error into an AppError. Unknown errors become Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
