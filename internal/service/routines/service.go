package routines

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/gymsync-server/internal/store"
)

// Common errors for routine operations.
var (
	ErrNotOwner        = errors.New("routine does not belong to this coach")
	ErrRoutineNotFound = errors.New("routine not found")
	ErrInvalidTitle    = errors.New("invalid routine title")
	ErrUnknownExercise = errors.New("unknown exercise in routine")
)

// ExerciseItem is one ordered row of a routine as supplied by the API.
type ExerciseItem struct {
	ExerciseID  int64
	Sets        int
	Reps        int
	RestSeconds int
}

// Service provides routine and exercise-catalog business logic.
type Service struct {
	store store.Store
}

// New creates a new routines service.
func New(st store.Store) *Service {
	return &Service{store: st}
}

// Create creates a routine owned by the coach.
func (s *Service) Create(ctx context.Context, coachID int64, title, description string) (*store.Routine, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 120 {
		return nil, ErrInvalidTitle
	}

	routine, err := s.store.CreateRoutine(ctx, coachID, title, description)
	if err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}
	return routine, nil
}

// Get returns a routine with its ordered exercise rows. Any
// authenticated user may read a routine (clients follow their coach's
// routines); only mutation is ownership-checked.
func (s *Service) Get(ctx context.Context, id int64) (*store.Routine, []*store.RoutineExercise, error) {
	routine, err := s.store.GetRoutineByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrRoutineNotFound
		}
		return nil, nil, fmt.Errorf("get routine: %w", err)
	}

	items, err := s.store.ListRoutineExercises(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list routine exercises: %w", err)
	}
	return routine, items, nil
}

// ListByCoach lists the routines a coach owns.
func (s *Service) ListByCoach(ctx context.Context, coachID int64) ([]*store.Routine, error) {
	return s.store.ListRoutinesByCoach(ctx, coachID)
}

// Update overwrites title and description after an ownership check.
func (s *Service) Update(ctx context.Context, coachID, routineID int64, title, description string) (*store.Routine, error) {
	routine, err := s.owned(ctx, coachID, routineID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" || len(title) > 120 {
		return nil, ErrInvalidTitle
	}

	routine.Title = title
	routine.Description = description
	if err := s.store.UpdateRoutine(ctx, routine); err != nil {
		return nil, fmt.Errorf("update routine: %w", err)
	}
	return s.store.GetRoutineByID(ctx, routineID)
}

// Delete removes a routine and its rows after an ownership check.
func (s *Service) Delete(ctx context.Context, coachID, routineID int64) error {
	if _, err := s.owned(ctx, coachID, routineID); err != nil {
		return err
	}
	if err := s.store.DeleteRoutine(ctx, routineID); err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	return nil
}

// SetExercises replaces the routine's ordered exercise rows after
// validating ownership and that every referenced exercise exists.
func (s *Service) SetExercises(ctx context.Context, coachID, routineID int64, items []ExerciseItem) error {
	if _, err := s.owned(ctx, coachID, routineID); err != nil {
		return err
	}

	rows := make([]store.RoutineExercise, 0, len(items))
	for _, item := range items {
		if _, err := s.store.GetExerciseByID(ctx, item.ExerciseID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnknownExercise
			}
			return fmt.Errorf("check exercise: %w", err)
		}
		rows = append(rows, store.RoutineExercise{
			ExerciseID:  item.ExerciseID,
			Sets:        item.Sets,
			Reps:        item.Reps,
			RestSeconds: item.RestSeconds,
		})
	}

	if err := s.store.SetRoutineExercises(ctx, routineID, rows); err != nil {
		return fmt.Errorf("set routine exercises: %w", err)
	}
	return nil
}

func (s *Service) owned(ctx context.Context, coachID, routineID int64) (*store.Routine, error) {
	routine, err := s.store.GetRoutineByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, fmt.Errorf("get routine: %w", err)
	}
	if routine.CoachID != coachID {
		return nil, ErrNotOwner
	}
	return routine, nil
}
