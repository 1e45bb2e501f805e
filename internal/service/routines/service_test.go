package routines

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/gymsync-server/internal/store"
	"github.com/vovakirdan/gymsync-server/internal/store/sqlite"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return New(st), st
}

func TestCreateValidatesTitle(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	coach, _ := st.CreateUser(ctx, "coach", "hash", store.RoleCoach)

	if _, err := svc.Create(ctx, coach.ID, "   ", "desc"); !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}

	r, err := svc.Create(ctx, coach.ID, "Leg day", "heavy squats")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Title != "Leg day" || r.CoachID != coach.ID {
		t.Fatalf("unexpected routine: %+v", r)
	}
}

func TestUpdateAndDeleteRequireOwnership(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	owner, _ := st.CreateUser(ctx, "owner", "hash", store.RoleCoach)
	other, _ := st.CreateUser(ctx, "other", "hash", store.RoleCoach)

	r, err := svc.Create(ctx, owner.ID, "Push", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, other.ID, r.ID, "Pull", ""); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on update, got %v", err)
	}
	if err := svc.Delete(ctx, other.ID, r.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on delete, got %v", err)
	}

	updated, err := svc.Update(ctx, owner.ID, r.ID, "Pull", "rows and curls")
	if err != nil || updated.Title != "Pull" {
		t.Fatalf("owner update failed: %v %+v", err, updated)
	}

	if err := svc.Delete(ctx, owner.ID, r.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, _, err := svc.Get(ctx, r.ID); !errors.Is(err, ErrRoutineNotFound) {
		t.Fatalf("expected ErrRoutineNotFound after delete, got %v", err)
	}
}

func TestSetExercisesValidatesCatalog(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	coach, _ := st.CreateUser(ctx, "coach", "hash", store.RoleCoach)
	r, _ := svc.Create(ctx, coach.ID, "Full body", "")

	squat, err := st.CreateExercise(ctx, &store.Exercise{Name: "Squat", Category: "legs"})
	if err != nil {
		t.Fatalf("seed exercise: %v", err)
	}

	bad := []ExerciseItem{{ExerciseID: 9999, Sets: 3, Reps: 10}}
	if err := svc.SetExercises(ctx, coach.ID, r.ID, bad); !errors.Is(err, ErrUnknownExercise) {
		t.Fatalf("expected ErrUnknownExercise, got %v", err)
	}

	good := []ExerciseItem{{ExerciseID: squat.ID, Sets: 5, Reps: 5, RestSeconds: 120}}
	if err := svc.SetExercises(ctx, coach.ID, r.ID, good); err != nil {
		t.Fatalf("set exercises: %v", err)
	}

	_, items, err := svc.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(items) != 1 || items[0].ExerciseID != squat.ID || items[0].Sets != 5 {
		t.Fatalf("unexpected items: %+v", items)
	}
}
