// Package validation provides input validation helpers for the scoring API.
package validation

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxRequestSize is the maximum request body size (1MB)
const MaxRequestSize = 1 << 20 // 1MB

// MaxNameLength bounds free-text fields like customer name
const MaxNameLength = 200

// RequestSizeMiddleware limits request body size
func RequestSizeMiddleware(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// SanitizeString removes dangerous characters and limits length
func SanitizeString(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	s = strings.ReplaceAll(s, "\x00", "")
	return s
}

// FieldError represents a validation error on a named field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is a collection of validation errors
type FieldErrors []FieldError

// Error implements the error interface
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Field + ": " + e[0].Message
}

// Validate runs validators in order and collects failures
func Validate(validators ...func() *FieldError) FieldErrors {
	var errs FieldErrors
	for _, v := range validators {
		if err := v(); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}

// Required checks if a field is non-empty
func Required(field, value string) func() *FieldError {
	return func() *FieldError {
		if strings.TrimSpace(value) == "" {
			return &FieldError{Field: field, Message: "is required"}
		}
		return nil
	}
}

// PositiveAmount checks that a transaction amount is greater than zero
func PositiveAmount(field string, value float64) func() *FieldError {
	return func() *FieldError {
		if value <= 0 {
			return &FieldError{Field: field, Message: "must be greater than zero"}
		}
		return nil
	}
}

// ValidHour checks that an hour lies in 0–23
func ValidHour(field string, value int) func() *FieldError {
	return func() *FieldError {
		if value < 0 || value > 23 {
			return &FieldError{Field: field, Message: "must be between 0 and 23"}
		}
		return nil
	}
}
