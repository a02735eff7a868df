// Package apperror defines the request-outcome taxonomy shared by services
// and handlers. Services return these; handlers map them to HTTP statuses.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthRequired = errors.New("authorization required")
	ErrAuthFailed   = errors.New("authorization failed")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrQuery        = errors.New("query failed")
	ErrUpdate       = errors.New("update failed")
)

// AppError carries a taxonomy kind (Err, matched with errors.Is) and the
// message surfaced to the caller.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func AuthRequired() *AppError {
	return &AppError{Err: ErrAuthRequired, Message: "Authorization header required"}
}

func AuthFailed(message string) *AppError {
	return &AppError{Err: ErrAuthFailed, Message: message}
}

// MissingFields reports required request fields that were absent, by their
// JSON names.
func MissingFields(fields []string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "Missing required fields: " + strings.Join(fields, ", "),
	}
}

func ValidationFailed(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

// ProductNotFound names the original raw code, not a normalized variant.
func ProductNotFound(code string) *AppError {
	return &AppError{Err: ErrNotFound, Message: "No product found for UPC: " + code}
}

func IngredientNotFound(title string) *AppError {
	return &AppError{Err: ErrNotFound, Message: "No ingredient found for title: " + title}
}

func QueryFailed(err error) *AppError {
	return &AppError{Err: ErrQuery, Message: fmt.Sprintf("Error querying product: %v", err)}
}

func UpdateFailed(err error) *AppError {
	return &AppError{Err: ErrUpdate, Message: fmt.Sprintf("Failed to update product: %v", err)}
}

func Unknown(message string, err error) *AppError {
	return &AppError{Err: err, Message: fmt.Sprintf("%s: %v", message, err)}
}
