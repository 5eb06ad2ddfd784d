package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	// ErrorTypeAuthentication covers missing or invalid identity proof.
	// Fail-closed: no default identity is ever substituted.
	ErrorTypeAuthentication ErrorType = "authentication"
	// ErrorTypeForbidden covers role/classification policy denials. Every
	// denial is receipted with an audit event before the caller sees it.
	ErrorTypeForbidden ErrorType = "forbidden"
	// ErrorTypeValidation covers malformed request payloads.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration covers contradictory deployment settings, such
	// as header-trust auth without the explicit insecure opt-in. Caught at
	// startup so the server never serves an authenticated route.
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeInternal covers everything else.
	ErrorTypeInternal ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type       ErrorType
	Message    string
	ReasonCode string
	Err        error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is; two domain errors match on type.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{Type: errType, Message: message, Err: err}
}

// NewAuthenticationError creates an authentication failure with a reason code.
func NewAuthenticationError(message, reasonCode string) *DomainError {
	return &DomainError{Type: ErrorTypeAuthentication, Message: message, ReasonCode: reasonCode}
}

// NewForbiddenError creates a policy denial with a reason code.
func NewForbiddenError(message, reasonCode string) *DomainError {
	return &DomainError{Type: ErrorTypeForbidden, Message: message, ReasonCode: reasonCode}
}

// NewConfigurationError creates a startup configuration error.
func NewConfigurationError(message string) *DomainError {
	return &DomainError{Type: ErrorTypeConfiguration, Message: message}
}

// TypeOf returns the domain error type of err, or ErrorTypeInternal when err
// is not a DomainError.
func TypeOf(err error) ErrorType {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type
	}
	return ErrorTypeInternal
}

// ReasonCodeOf returns the reason code of err, or "" when absent.
func ReasonCodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.ReasonCode
	}
	return ""
}
