package common

import (
	"errors"
	"net/http"
)

// Kind classifies failures so callers can branch without string matching.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindBusinessRule Kind = "business_rule"
	KindUpstream     Kind = "upstream"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Kind       Kind
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// NewAppError constructs an AppError. The kind is derived from status.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Kind: kindForStatus(status), Code: code, Message: message, HTTPStatus: status, Err: err}
}

// Validation reports malformed or out of range input.
func Validation(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NotFound reports a missing or inactive entity.
func NotFound(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message, HTTPStatus: http.StatusNotFound}
}

// Conflict reports a lost race against concurrent writers.
func Conflict(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message, HTTPStatus: http.StatusConflict}
}

// BusinessRule reports a request that is well formed but not allowed.
func BusinessRule(code, message string) *AppError {
	return &AppError{Kind: KindBusinessRule, Code: code, Message: message, HTTPStatus: http.StatusBadRequest}
}

// Upstream wraps a dependency failure. The message stays generic.
func Upstream(err error) *AppError {
	return &AppError{Kind: KindUpstream, Code: "INTERNAL", Message: "internal error", HTTPStatus: http.StatusInternalServerError, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// KindOf returns the kind of err, treating unclassified errors as upstream.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}
	return KindUpstream
}

// CodeOf returns the machine readable code of err or INTERNAL.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}
	return "INTERNAL"
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusUnprocessableEntity:
		return KindBusinessRule
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindUpstream
	}
}
