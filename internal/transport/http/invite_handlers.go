package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/gymsync-server/internal/service/invites"
)

// InviteHandlers provides HTTP handlers for coach invitation codes.
type InviteHandlers struct {
	invites *invites.Service
	log     *zerolog.Logger
}

// NewInviteHandlers creates a new invite handlers instance.
func NewInviteHandlers(svc *invites.Service, logger *zerolog.Logger) *InviteHandlers {
	return &InviteHandlers{invites: svc, log: logger}
}

// InviteResponse represents an issued invitation code.
type InviteResponse struct {
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
}

// RedeemRequest represents the redeem request body.
type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// LinkedUserResponse represents a linked coach or client.
type LinkedUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Issue handles creating a new invitation code for the coach.
// POST /api/invites
func (h *InviteHandlers) Issue(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	inv, err := h.invites.Issue(c.Request.Context(), coachID)
	if err != nil {
		switch {
		case errors.Is(err, invites.ErrNotACoach):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "only coaches can issue invitations"})
		case errors.Is(err, invites.ErrIssuerNotFound):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unknown account"})
		default:
			h.log.Error().Err(err).Int64("coach_id", coachID).Msg("failed to issue invitation")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	h.log.Info().Int64("coach_id", coachID).Str("code", inv.Code).Msg("invitation issued")
	c.JSON(http.StatusCreated, InviteResponse{
		Code:      inv.Code,
		ExpiresAt: inv.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Redeem handles a client redeeming an invitation code.
// POST /api/invites/redeem
func (h *InviteHandlers) Redeem(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	coach, err := h.invites.Redeem(c.Request.Context(), req.Code, clientID)
	if err != nil {
		switch {
		case errors.Is(err, invites.ErrInviteNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "invitation not found"})
		case errors.Is(err, invites.ErrInviteExpired):
			c.JSON(http.StatusGone, ErrorResponse{Error: "invitation expired"})
		case errors.Is(err, invites.ErrInviteRedeemed):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "invitation already redeemed"})
		case errors.Is(err, invites.ErrCannotSelfLink):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot redeem your own invitation"})
		default:
			h.log.Error().Err(err).Str("code", req.Code).Msg("failed to redeem invitation")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	h.log.Info().Int64("client_id", clientID).Int64("coach_id", coach.ID).Msg("invitation redeemed")
	c.JSON(http.StatusOK, LinkedUserResponse{ID: coach.ID, Username: coach.Username})
}

// Clients handles listing the coach's linked clients.
// GET /api/clients
func (h *InviteHandlers) Clients(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	list, err := h.invites.Clients(c.Request.Context(), coachID)
	if err != nil {
		h.log.Error().Err(err).Int64("coach_id", coachID).Msg("failed to list clients")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]LinkedUserResponse, 0, len(list))
	for _, u := range list {
		response = append(response, LinkedUserResponse{ID: u.ID, Username: u.Username})
	}
	c.JSON(http.StatusOK, response)
}

// Coach handles a client looking up its linked coach.
// GET /api/coach
func (h *InviteHandlers) Coach(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	coach, err := h.invites.Coach(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, invites.ErrNoCoachLinked) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "no coach linked"})
			return
		}
		h.log.Error().Err(err).Int64("client_id", clientID).Msg("failed to get coach")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, LinkedUserResponse{ID: coach.ID, Username: coach.Username})
}
