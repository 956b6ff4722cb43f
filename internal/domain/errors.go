package domain

import (
	"errors"
	"fmt"
)

// Error types for domain-specific errors
type ErrorType string

const (
	ErrorTypeInput           ErrorType = "input"
	ErrorTypeEmptyExtraction ErrorType = "empty_extraction"
	ErrorTypeTranslation     ErrorType = "translation"
	ErrorTypeConfig          ErrorType = "config"
	ErrorTypeOCR             ErrorType = "ocr"
	ErrorTypeIO              ErrorType = "io"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func InputError(message string, err error) *DomainError {
	return NewError(ErrorTypeInput, message, err)
}

func EmptyExtractionError(message string) *DomainError {
	return NewError(ErrorTypeEmptyExtraction, message, nil)
}

func TranslationError(message string, err error) *DomainError {
	return NewError(ErrorTypeTranslation, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func OCRError(message string, err error) *DomainError {
	return NewError(ErrorTypeOCR, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}

// TypeOf returns the domain error type of err, or an empty string if err is
// not a DomainError.
func TypeOf(err error) ErrorType {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type
	}
	return ""
}
