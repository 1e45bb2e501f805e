package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/gymsync-server/internal/service/sessions"
	"github.com/vovakirdan/gymsync-server/internal/store"
)

// SessionHandlers provides HTTP handlers for live workout sessions.
// A coach creates a session around a routine and hands the short code
// to participants, who then join the matching gym room over WebSocket.
type SessionHandlers struct {
	sessions *sessions.Service
	log      *zerolog.Logger
}

// NewSessionHandlers creates a new session handlers instance.
func NewSessionHandlers(svc *sessions.Service, logger *zerolog.Logger) *SessionHandlers {
	return &SessionHandlers{sessions: svc, log: logger}
}

// CreateSessionRequest represents the create session request body.
type CreateSessionRequest struct {
	RoutineID int64 `json:"routine_id" binding:"required"`
}

// SessionResponse represents a live session in API responses.
type SessionResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	RoutineID int64  `json:"routine_id"`
}

func sessionResponse(s *store.LiveSession) SessionResponse {
	return SessionResponse{ID: s.ID, Code: s.Code, RoutineID: s.RoutineID}
}

func (h *SessionHandlers) writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
	case errors.Is(err, sessions.ErrRoutineNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "routine not found"})
	case errors.Is(err, sessions.ErrNotHost):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not the session host"})
	default:
		h.log.Error().Err(err).Msg("session operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// Create handles opening a live session for a routine.
// POST /api/sessions
func (h *SessionHandlers) Create(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), hostID, req.RoutineID)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}

	h.log.Info().Str("session_id", sess.ID).Str("code", sess.Code).Int64("host_id", hostID).Msg("live session created")
	c.JSON(http.StatusCreated, sessionResponse(sess))
}

// Lookup handles resolving a join code into a session. Participants
// call this before opening the WebSocket room.
// GET /api/sessions/:code
func (h *SessionHandlers) Lookup(c *gin.Context) {
	sess, err := h.sessions.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess))
}

// Routine handles fetching the routine payload for a session, shaped
// the way the start-session WebSocket message carries it.
// GET /api/sessions/:code/routine
func (h *SessionHandlers) Routine(c *gin.Context) {
	raw, err := h.sessions.RoutinePayload(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// List handles listing the sessions the caller hosts.
// GET /api/sessions
func (h *SessionHandlers) List(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	list, err := h.sessions.Hosted(c.Request.Context(), hostID)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}

	response := make([]SessionResponse, 0, len(list))
	for _, s := range list {
		response = append(response, sessionResponse(s))
	}
	c.JSON(http.StatusOK, response)
}

// End handles closing a session. Only the host can end it.
// DELETE /api/sessions/:code
func (h *SessionHandlers) End(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.sessions.End(c.Request.Context(), hostID, c.Param("code")); err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
