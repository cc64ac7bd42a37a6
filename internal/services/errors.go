package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so transports can choose a status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindProvider
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindProvider:
		return "provider_failure"
	case KindStore:
		return "store_failure"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every journaling and video operation.
// Message is safe to show to users; Err carries the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 when err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

const (
	msgNotFound          = "Journal not found"
	msgForbidden         = "Access denied"
	msgServerError       = "Server error"
	msgAnalysisFailed    = "Analysis failed"
	msgInsightsFailed    = "Failed to generate insights"
	msgNotEnoughJournals = "You need at least 2 journal entries from the past week to get insights."
	msgInvalidMood       = "mood must be one of: great, good, okay, bad, terrible"
	msgQueryRequired     = "Search query is required"
	msgSearchFailed      = "Failed to search videos"
)

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFoundError() *Error {
	return &Error{Kind: KindNotFound, Message: msgNotFound}
}

func forbiddenError() *Error {
	return &Error{Kind: KindForbidden, Message: msgForbidden}
}

func storeError(err error) *Error {
	return &Error{Kind: KindStore, Message: msgServerError, Err: err}
}

func providerError(msg string, err error) *Error {
	return &Error{Kind: KindProvider, Message: msg, Err: err}
}
