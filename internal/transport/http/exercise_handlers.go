package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/gymsync-server/internal/store"
)

// ExerciseHandlers provides HTTP handlers for the exercise catalog.
type ExerciseHandlers struct {
	store store.Store
	log   *zerolog.Logger
}

// NewExerciseHandlers creates a new exercise handlers instance.
func NewExerciseHandlers(st store.Store, logger *zerolog.Logger) *ExerciseHandlers {
	return &ExerciseHandlers{store: st, log: logger}
}

// ExerciseRequest represents the create/update exercise request body.
type ExerciseRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=128"`
	Category    string `json:"category" binding:"max=64"`
	Description string `json:"description" binding:"max=1024"`
	ImageURL    string `json:"image_url" binding:"max=512"`
}

// ExerciseResponse represents an exercise in API responses.
type ExerciseResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

func exerciseResponse(ex *store.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:          ex.ID,
		Name:        ex.Name,
		Category:    ex.Category,
		Description: ex.Description,
		ImageURL:    ex.ImageURL,
	}
}

// Create handles adding a catalog entry.
// POST /api/exercises
func (h *ExerciseHandlers) Create(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ex, err := h.store.CreateExercise(c.Request.Context(), &store.Exercise{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.log.Error().Err(err).Str("name", req.Name).Msg("failed to create exercise")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, exerciseResponse(ex))
}

// List handles listing the catalog with optional filters.
// GET /api/exercises?category=legs&q=squat
func (h *ExerciseHandlers) List(c *gin.Context) {
	category := c.Query("category")
	query := c.Query("q")

	list, err := h.store.ListExercises(c.Request.Context(), category, query)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list exercises")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]ExerciseResponse, 0, len(list))
	for _, ex := range list {
		response = append(response, exerciseResponse(ex))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles fetching one catalog entry.
// GET /api/exercises/:id
func (h *ExerciseHandlers) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exercise id"})
		return
	}

	ex, err := h.store.GetExerciseByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "exercise not found"})
			return
		}
		h.log.Error().Err(err).Int64("exercise_id", id).Msg("failed to get exercise")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, exerciseResponse(ex))
}

// Update handles overwriting a catalog entry.
// PUT /api/exercises/:id
func (h *ExerciseHandlers) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exercise id"})
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ex := &store.Exercise{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.store.UpdateExercise(c.Request.Context(), ex); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "exercise not found"})
			return
		}
		h.log.Error().Err(err).Int64("exercise_id", id).Msg("failed to update exercise")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, exerciseResponse(ex))
}

// Delete handles removing a catalog entry.
// DELETE /api/exercises/:id
func (h *ExerciseHandlers) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exercise id"})
		return
	}

	if err := h.store.DeleteExercise(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "exercise not found"})
			return
		}
		h.log.Error().Err(err).Int64("exercise_id", id).Msg("failed to delete exercise")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
