// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Velora.

It provides a rich error type that bridges the gap between raw transport
failures, non-2xx API responses, and local guard violations.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Normalization: Every failure surfaced by the client layer is an AppError.
  - Mapping: HTTP status codes from the remote API are preserved for callers.

Every error that leaves a service layer should be wrapped as an [AppError] to
ensure consistent handling at call sites.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Velora client.
//
// It carries the remote HTTP status (zero for local failures), a
// machine-readable code, a human-readable message, and an optional slice of
// field-level validation errors.
//
// # Security
//
// The Cause field is for local logging only and is never rendered to the
// user, to avoid leaking transport internals into UI notices.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "REQUEST_FAILED", "UNAUTHORIZED").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the remote response status code, or zero when the
	// failure never reached the server (transport error, guard violation).
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for local logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the user-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Remote Failures

// Request creates an [AppError] for a non-2xx API response.
//
// The message is the server-supplied detail when one could be parsed, or a
// generic "HTTP <status>" fallback otherwise (the caller decides which).
func Request(status int, message string) *AppError {
	return &AppError{
		Code:       "REQUEST_FAILED",
		Message:    message,
		HTTPStatus: status,
	}
}

// Transport creates an [AppError] for a network-level failure that produced
// no HTTP response at all.
func Transport(cause error) *AppError {
	return &AppError{
		Code:    "TRANSPORT_ERROR",
		Message: "Could not reach the storefront service",
		Cause:   cause,
	}
}

// # Local Failures

// Unauthorized creates an [AppError] for a local guard violation — an
// operation that requires an authenticated session was attempted without one.
// No network call is associated with this error.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates an [AppError] for an operation the current user's role
// does not permit, raised locally before any network call.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// ValidationError creates an [AppError] with optional per-field details,
// raised before any network call is made.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: msg,
		Details: details,
	}
}

// Internal creates an [AppError] wrapping an unexpected local error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// StatusOf returns the remote HTTP status carried by err, or zero when err
// is not an [*AppError] or never reached the server.
func StatusOf(err error) int {
	if ae := As(err); ae != nil {
		return ae.HTTPStatus
	}
	return 0
}

// IsRetryable reports whether err represents a transient failure worth a
// bounded retry: a transport error or an upstream 502/503/504.
//
// 4xx application errors are never retryable.
func IsRetryable(err error) bool {
	ae := As(err)
	if ae == nil {
		return false
	}
	if ae.Code == "TRANSPORT_ERROR" {
		return true
	}
	switch ae.HTTPStatus {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Guard formats a consistent "must be logged in" violation for mutation
// guards, e.g. Guard("add items to the cart").
func Guard(action string) *AppError {
	return Unauthorized(fmt.Sprintf("You must be logged in to %s", action))
}
