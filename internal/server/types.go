package server

import (
	"time"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// IdentityHeader carries the caller's identity id on gated routes.
const IdentityHeader = "X-Identity"

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeNotLoggedIn        = "NOT_LOGGED_IN"
	CodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
	CodeStorageError       = "STORAGE_ERROR"
	CodeWordNotFound       = "WORD_NOT_FOUND"
	CodeAuthFailure        = "AUTH_FAILURE"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the machine-readable error code.
	Code string `json:"code,omitempty"`
}

// SubmitRequest is the body of POST /v1/bubbles.
type SubmitRequest struct {
	Phrase string `json:"phrase"`
}

// SubmitResponse is returned by POST /v1/bubbles.
type SubmitResponse struct {
	Bubbles []types.Bubble `json:"bubbles"`
}

// WordResponse is returned by GET /v1/words/*word.
// NextCount is the word's total successor count.
type WordResponse struct {
	Word      string    `json:"word"`
	LastUsed  time.Time `json:"lastUsed"`
	NextWords []string  `json:"nextWords"`
	NextCount int       `json:"nextCount"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
