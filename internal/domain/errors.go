package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Quiz specific errors
	CodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	CodeEmptyQuiz         ErrorCode = "EMPTY_QUIZ"
	CodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	CodeInvalidDifficulty ErrorCode = "INVALID_DIFFICULTY"
	CodePoolTooSmall      ErrorCode = "POOL_TOO_SMALL"
	CodeLLMServiceError   ErrorCode = "LLM_SERVICE_ERROR"
	CodeExtractionFailed  ErrorCode = "EXTRACTION_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair that is returned to API clients as details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Session not found with ID: %s", sessionID), nil).
		WithContext("session_id", sessionID)
}

func NewEmptyQuizError(message string) *DomainError {
	return NewError(CodeEmptyQuiz, message, nil)
}

func NewUnsupportedFormatError(format string) *DomainError {
	return NewError(CodeUnsupportedFormat, fmt.Sprintf("Unsupported format: %s", format), nil).
		WithContext("format", format)
}

func NewInvalidDifficultyError(level string) *DomainError {
	return NewError(CodeInvalidDifficulty, fmt.Sprintf("Invalid difficulty level: %s", level), nil).
		WithContext("allowed", []string{string(DifficultyEasy), string(DifficultyMedium), string(DifficultyHard)})
}

func NewPoolTooSmallError(topic string, requested, available int) *DomainError {
	return NewError(CodePoolTooSmall,
		fmt.Sprintf("Requested %d questions from %q but the pool only has %d", requested, topic, available), nil).
		WithContext("topic", topic)
}

// NewLLMServiceError wraps a provider failure. The message mirrors what users see in the UI.
func NewLLMServiceError(provider string, cause error) *DomainError {
	return NewError(CodeLLMServiceError, fmt.Sprintf("Error calling %s API", provider), cause)
}

func NewExtractionError(message string, cause error) *DomainError {
	return NewError(CodeExtractionFailed, message, cause)
}

// IsCode reports whether err is a DomainError carrying code.
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}
