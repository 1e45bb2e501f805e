package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/vovakirdan/gymsync-server/internal/service/routines"
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

func TestCreateRequiresExistingRoutine(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	coach, _ := st.CreateUser(ctx, "coach", "hash", store.RoleCoach)

	if _, err := svc.Create(ctx, coach.ID, 9999); !errors.Is(err, ErrRoutineNotFound) {
		t.Fatalf("expected ErrRoutineNotFound, got %v", err)
	}
}

func TestCreateLookupEndFlow(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	coach, _ := st.CreateUser(ctx, "coach", "hash", store.RoleCoach)
	other, _ := st.CreateUser(ctx, "other", "hash", store.RoleCoach)
	r, _ := st.CreateRoutine(ctx, coach.ID, "HIIT", "")

	sess, err := svc.Create(ctx, coach.ID, r.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.Code == "" || sess.ID == "" {
		t.Fatalf("expected code and id, got %+v", sess)
	}

	found, err := svc.Lookup(ctx, sess.Code)
	if err != nil || found.ID != sess.ID {
		t.Fatalf("lookup failed: %v", err)
	}

	if err := svc.End(ctx, other.ID, sess.Code); !errors.Is(err, ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if err := svc.End(ctx, coach.ID, sess.Code); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := svc.Lookup(ctx, sess.Code); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after end, got %v", err)
	}
}

func TestRoutinePayloadCarriesOrderedExercises(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	coach, _ := st.CreateUser(ctx, "coach", "hash", store.RoleCoach)
	r, _ := st.CreateRoutine(ctx, coach.ID, "Push day", "chest and triceps")

	bench, _ := st.CreateExercise(ctx, &store.Exercise{Name: "Bench press", Category: "chest"})
	dips, _ := st.CreateExercise(ctx, &store.Exercise{Name: "Dips", Category: "triceps"})

	rsvc := routines.New(st)
	items := []routines.ExerciseItem{
		{ExerciseID: bench.ID, Sets: 4, Reps: 8, RestSeconds: 90},
		{ExerciseID: dips.ID, Sets: 3, Reps: 12, RestSeconds: 60},
	}
	if err := rsvc.SetExercises(ctx, coach.ID, r.ID, items); err != nil {
		t.Fatalf("set exercises: %v", err)
	}

	sess, err := svc.Create(ctx, coach.ID, r.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	raw, err := svc.RoutinePayload(ctx, sess.Code)
	if err != nil {
		t.Fatalf("routine payload: %v", err)
	}

	var payload struct {
		Title     string `json:"title"`
		Exercises []struct {
			ExerciseID int64 `json:"exercise_id"`
			Sets       int   `json:"sets"`
		} `json:"exercises"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Title != "Push day" || len(payload.Exercises) != 2 {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if payload.Exercises[0].ExerciseID != bench.ID || payload.Exercises[1].ExerciseID != dips.ID {
		t.Fatalf("exercise order not preserved: %s", raw)
	}
}
