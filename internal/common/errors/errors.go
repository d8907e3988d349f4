// Package errors provides standardized error handling for the decision engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeCropNotFound     ErrorCode = "CROP_NOT_FOUND"
	ErrCodeNoMarketData     ErrorCode = "NO_MARKET_DATA"

	ErrCodeCropLookupFailed    ErrorCode = "CROP_LOOKUP_FAILED"
	ErrCodePriceLookupFailed   ErrorCode = "PRICE_LOOKUP_FAILED"
	ErrCodeStorageLookupFailed ErrorCode = "STORAGE_LOOKUP_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HasCode reports whether err is a StandardError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable client input error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Invalid farmer context",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCropNotFoundError creates a non-retryable missing-reference error.
func NewCropNotFoundError(cropName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCropNotFound,
		Message:   "Crop not present in metadata registry",
		Details:   fmt.Sprintf("crop: %s", cropName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoMarketDataError creates a non-retryable empty-candidate-set error.
func NewNoMarketDataError(cropName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoMarketData,
		Message:   "No mandi has price data for crop",
		Details:   fmt.Sprintf("crop: %s", cropName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCropLookupFailedError creates a retryable provider I/O error.
func NewCropLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCropLookupFailed,
		Message:   "Crop metadata lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPriceLookupFailedError creates a retryable provider I/O error.
func NewPriceLookupFailedError(mandiName string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePriceLookupFailed,
		Message:   "Mandi price lookup failed",
		Details:   fmt.Sprintf("mandi: %s, error: %s", mandiName, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageLookupFailedError creates a retryable provider I/O error.
func NewStorageLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageLookupFailed,
		Message:   "Storage facility lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search backend error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query execution error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
