package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/gymsync-server/internal/service/routines"
	"github.com/vovakirdan/gymsync-server/internal/store"
)

// RoutineHandlers provides HTTP handlers for workout routine endpoints.
type RoutineHandlers struct {
	routines *routines.Service
	log      *zerolog.Logger
}

// NewRoutineHandlers creates a new routine handlers instance.
func NewRoutineHandlers(svc *routines.Service, logger *zerolog.Logger) *RoutineHandlers {
	return &RoutineHandlers{routines: svc, log: logger}
}

// RoutineRequest represents the create/update routine request body.
type RoutineRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=128"`
	Description string `json:"description" binding:"max=1024"`
}

// RoutineExerciseRequest is one row when setting routine exercises.
type RoutineExerciseRequest struct {
	ExerciseID  int64 `json:"exercise_id" binding:"required"`
	Sets        int   `json:"sets" binding:"required,min=1"`
	Reps        int   `json:"reps" binding:"required,min=1"`
	RestSeconds int   `json:"rest_seconds" binding:"min=0"`
}

// RoutineResponse represents a routine in API responses.
type RoutineResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// RoutineExerciseResponse is one ordered exercise of a routine.
type RoutineExerciseResponse struct {
	ExerciseID  int64 `json:"exercise_id"`
	Position    int   `json:"position"`
	Sets        int   `json:"sets"`
	Reps        int   `json:"reps"`
	RestSeconds int   `json:"rest_seconds"`
}

// RoutineDetailResponse is a routine with its exercise rows.
type RoutineDetailResponse struct {
	RoutineResponse
	Exercises []RoutineExerciseResponse `json:"exercises"`
}

func routineResponse(r *store.Routine) RoutineResponse {
	return RoutineResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func routineIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid routine id"})
		return 0, false
	}
	return id, true
}

func (h *RoutineHandlers) writeRoutineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, routines.ErrRoutineNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "routine not found"})
	case errors.Is(err, routines.ErrNotOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not the routine owner"})
	case errors.Is(err, routines.ErrInvalidTitle):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid title"})
	case errors.Is(err, routines.ErrUnknownExercise):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown exercise"})
	default:
		h.log.Error().Err(err).Msg("routine operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// Create handles routine creation.
// POST /api/routines
func (h *RoutineHandlers) Create(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	r, err := h.routines.Create(c.Request.Context(), coachID, req.Title, req.Description)
	if err != nil {
		h.writeRoutineError(c, err)
		return
	}

	h.log.Info().Int64("routine_id", r.ID).Int64("coach_id", coachID).Msg("routine created")
	c.JSON(http.StatusCreated, routineResponse(r))
}

// List handles listing the authenticated coach's routines.
// GET /api/routines
func (h *RoutineHandlers) List(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	list, err := h.routines.ListByCoach(c.Request.Context(), coachID)
	if err != nil {
		h.writeRoutineError(c, err)
		return
	}

	response := make([]RoutineResponse, 0, len(list))
	for _, r := range list {
		response = append(response, routineResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles fetching one routine with its exercises.
// GET /api/routines/:id
func (h *RoutineHandlers) Get(c *gin.Context) {
	id, ok := routineIDParam(c)
	if !ok {
		return
	}

	r, items, err := h.routines.Get(c.Request.Context(), id)
	if err != nil {
		h.writeRoutineError(c, err)
		return
	}

	detail := RoutineDetailResponse{RoutineResponse: routineResponse(r)}
	detail.Exercises = make([]RoutineExerciseResponse, 0, len(items))
	for _, item := range items {
		detail.Exercises = append(detail.Exercises, RoutineExerciseResponse{
			ExerciseID:  item.ExerciseID,
			Position:    item.Position,
			Sets:        item.Sets,
			Reps:        item.Reps,
			RestSeconds: item.RestSeconds,
		})
	}
	c.JSON(http.StatusOK, detail)
}

// Update handles rewriting a routine's title and description.
// PUT /api/routines/:id
func (h *RoutineHandlers) Update(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := routineIDParam(c)
	if !ok {
		return
	}

	var req RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	r, err := h.routines.Update(c.Request.Context(), coachID, id, req.Title, req.Description)
	if err != nil {
		h.writeRoutineError(c, err)
		return
	}
	c.JSON(http.StatusOK, routineResponse(r))
}

// Delete handles removing a routine.
// DELETE /api/routines/:id
func (h *RoutineHandlers) Delete(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := routineIDParam(c)
	if !ok {
		return
	}

	if err := h.routines.Delete(c.Request.Context(), coachID, id); err != nil {
		h.writeRoutineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetExercises handles replacing the ordered exercise rows.
// PUT /api/routines/:id/exercises
func (h *RoutineHandlers) SetExercises(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := routineIDParam(c)
	if !ok {
		return
	}

	var req []RoutineExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	items := make([]routines.ExerciseItem, 0, len(req))
	for _, row := range req {
		items = append(items, routines.ExerciseItem{
			ExerciseID:  row.ExerciseID,
			Sets:        row.Sets,
			Reps:        row.Reps,
			RestSeconds: row.RestSeconds,
		})
	}

	if err := h.routines.SetExercises(c.Request.Context(), coachID, id, items); err != nil {
		h.writeRoutineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
