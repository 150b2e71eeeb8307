// Package server exposes phrase submission over HTTP with gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
	"github.com/mesh-intelligence/wordbubble/pkg/wordbubble"
)

// Service is the gated application the handlers call into.
type Service interface {
	Submit(ctx context.Context, phrase string) ([]types.Bubble, error)
	Word(ctx context.Context, word string) (*types.WordRecord, error)
}

// Gate issues identities and checks the identity header.
type Gate interface {
	Login(ctx context.Context) (types.Identity, error)
	Matches(id string) bool
}

// Handlers contains the HTTP handlers.
type Handlers struct {
	svc    Service
	gate   Gate
	logger *zap.Logger
}

// NewHandlers creates handlers over svc and gate. A nil logger disables logging.
func NewHandlers(svc Service, gate Gate, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{svc: svc, gate: gate, logger: logger.Named("http")}
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: wordbubble.Version})
}

// HandleLogin handles POST /v1/login.
//
// Response:
//
//	200 OK: types.Identity
//	500 Internal Server Error: AUTH_FAILURE
func (h *Handlers) HandleLogin(c *gin.Context) {
	id, err := h.gate.Login(c.Request.Context())
	if err != nil {
		h.logger.Warn("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Code:  CodeAuthFailure,
		})
		return
	}
	c.JSON(http.StatusOK, id)
}

// HandleSubmit handles POST /v1/bubbles.
//
// Response:
//
//	200 OK: SubmitResponse (bubbles is [] for an empty phrase)
//	400 Bad Request: INVALID_REQUEST
//	401 Unauthorized: NOT_LOGGED_IN
//	409 Conflict: SUBMISSION_IN_FLIGHT
//	500 Internal Server Error: STORAGE_ERROR
func (h *Handlers) HandleSubmit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  CodeInvalidRequest,
		})
		return
	}

	bubbles, err := h.svc.Submit(c.Request.Context(), req.Phrase)
	if err != nil {
		status, code := classify(err)
		h.logger.Warn("submission failed", zap.String("code", code), zap.Error(err))
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}
	if bubbles == nil {
		bubbles = []types.Bubble{}
	}
	c.JSON(http.StatusOK, SubmitResponse{Bubbles: bubbles})
}

// HandleWord handles GET /v1/words/*word.
//
// Response:
//
//	200 OK: WordResponse
//	404 Not Found: WORD_NOT_FOUND
func (h *Handlers) HandleWord(c *gin.Context) {
	word := strings.TrimPrefix(c.Param("word"), "/")
	rec, err := h.svc.Word(c.Request.Context(), word)
	if err != nil {
		status, code := classify(err)
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}
	c.JSON(http.StatusOK, WordResponse{
		Word:      rec.Word,
		LastUsed:  rec.LastUsed,
		NextWords: rec.NextWords,
		NextCount: rec.SuccessorCount(),
	})
}

// requireIdentity rejects requests whose identity header is not the gate's
// current identity.
func (h *Handlers) requireIdentity(c *gin.Context) {
	if !h.gate.Matches(c.GetHeader(IdentityHeader)) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Error: types.ErrNotLoggedIn.Error(),
			Code:  CodeNotLoggedIn,
		})
		return
	}
	c.Next()
}

// classify maps domain errors to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrNotLoggedIn):
		return http.StatusUnauthorized, CodeNotLoggedIn
	case errors.Is(err, types.ErrSubmissionInFlight):
		return http.StatusConflict, CodeSubmissionInFlight
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, CodeWordNotFound
	case errors.Is(err, types.ErrInvalidWord):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, types.ErrStorage):
		return http.StatusInternalServerError, CodeStorageError
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
