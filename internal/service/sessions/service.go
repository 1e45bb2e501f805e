package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vovakirdan/gymsync-server/internal/store"
	"github.com/vovakirdan/gymsync-server/internal/utils"
)

// Common errors for live-session operations.
var (
	ErrSessionNotFound = errors.New("live session not found")
	ErrRoutineNotFound = errors.New("routine not found")
	ErrNotHost         = errors.New("session does not belong to this user")
)

const (
	codePrefix = "GYM"
	codeLength = 5
)

// Service manages joinable virtual-gym session codes. The session code
// doubles as the WebSocket room name, so anyone holding the code can
// walk into the room.
type Service struct {
	store store.Store
}

// New creates a new sessions service.
func New(st store.Store) *Service {
	return &Service{store: st}
}

// Create stores a joinable session for the routine and returns it. The
// host is whoever creates the session; the hub assigns the host flag
// from the join request, not from this record.
func (s *Service) Create(ctx context.Context, hostID, routineID int64) (*store.LiveSession, error) {
	if _, err := s.store.GetRoutineByID(ctx, routineID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, fmt.Errorf("get routine: %w", err)
	}

	var (
		session *store.LiveSession
		err     error
	)
	// Retry on the unlikely code collision; the code column is unique.
	for attempt := 0; attempt < 3; attempt++ {
		code := utils.NewCode(codePrefix, codeLength)
		session, err = s.store.CreateLiveSession(ctx, uuid.NewString(), code, routineID, hostID)
		if err == nil {
			return session, nil
		}
	}
	return nil, fmt.Errorf("create live session: %w", err)
}

// Lookup resolves a join code to its session.
func (s *Service) Lookup(ctx context.Context, code string) (*store.LiveSession, error) {
	session, err := s.store.GetLiveSessionByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get live session: %w", err)
	}
	return session, nil
}

// RoutinePayload assembles the routine definition the host broadcasts
// when starting the session. The hub relays it opaquely; this is the
// only place the shape is defined.
func (s *Service) RoutinePayload(ctx context.Context, code string) (json.RawMessage, error) {
	session, err := s.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	routine, err := s.store.GetRoutineByID(ctx, session.RoutineID)
	if err != nil {
		return nil, fmt.Errorf("get routine: %w", err)
	}
	items, err := s.store.ListRoutineExercises(ctx, session.RoutineID)
	if err != nil {
		return nil, fmt.Errorf("list routine exercises: %w", err)
	}

	type exerciseRow struct {
		ExerciseID  int64 `json:"exercise_id"`
		Sets        int   `json:"sets"`
		Reps        int   `json:"reps"`
		RestSeconds int   `json:"rest_seconds"`
	}
	payload := struct {
		Title       string        `json:"title"`
		Description string        `json:"description,omitempty"`
		Exercises   []exerciseRow `json:"exercises"`
	}{
		Title:       routine.Title,
		Description: routine.Description,
		Exercises:   make([]exerciseRow, 0, len(items)),
	}
	for _, item := range items {
		payload.Exercises = append(payload.Exercises, exerciseRow{
			ExerciseID:  item.ExerciseID,
			Sets:        item.Sets,
			Reps:        item.Reps,
			RestSeconds: item.RestSeconds,
		})
	}

	return json.Marshal(payload)
}

// End deletes the session after a host check. The in-memory room is
// untouched; it disappears on its own when everyone leaves.
func (s *Service) End(ctx context.Context, hostID int64, code string) error {
	session, err := s.Lookup(ctx, code)
	if err != nil {
		return err
	}
	if session.HostID != hostID {
		return ErrNotHost
	}
	if err := s.store.DeleteLiveSession(ctx, session.ID); err != nil {
		return fmt.Errorf("delete live session: %w", err)
	}
	return nil
}

// Hosted lists the sessions a user currently hosts.
func (s *Service) Hosted(ctx context.Context, hostID int64) ([]*store.LiveSession, error) {
	return s.store.ListLiveSessionsByHost(ctx, hostID)
}
