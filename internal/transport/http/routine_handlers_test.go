package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func doJSON(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestRegisterRequiresRole(t *testing.T) {
	ts, _, _ := startTestServer(t)
	handler := ts.Config.Handler

	resp := doJSON(t, handler, http.MethodPost, "/api/register", "", `{"username":"nobody","password":"password123"}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without role, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/register", "", `{"username":"coach1","password":"password123","role":"coach"}`)
	if resp.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var authResp AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &authResp); err != nil || authResp.Token == "" {
		t.Fatalf("expected token in response: %v %s", err, resp.Body.String())
	}

	// duplicate username
	resp = doJSON(t, handler, http.MethodPost, "/api/register", "", `{"username":"coach1","password":"password123","role":"client"}`)
	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate, got %d", resp.Code)
	}
}

func TestRoutineCRUDOverHTTP(t *testing.T) {
	ts, _, authService := startTestServer(t)
	handler := ts.Config.Handler

	coachToken, err := authService.Register(context.Background(), "coach", "password123", "coach")
	if err != nil {
		t.Fatalf("register coach: %v", err)
	}
	clientToken, err := authService.Register(context.Background(), "client", "password123", "client")
	if err != nil {
		t.Fatalf("register client: %v", err)
	}

	// clients cannot create routines
	resp := doJSON(t, handler, http.MethodPost, "/api/routines", clientToken, `{"title":"Leg day"}`)
	if resp.Code != http.StatusForbidden {
		t.Errorf("expected 403 for client, got %d: %s", resp.Code, resp.Body.String())
	}

	// unauthenticated rejected
	resp = doJSON(t, handler, http.MethodPost, "/api/routines", "", `{"title":"Leg day"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.Code)
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/routines", coachToken, `{"title":"Leg day","description":"squats"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created RoutineResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal routine: %v", err)
	}
	if created.Title != "Leg day" {
		t.Errorf("unexpected title: %s", created.Title)
	}

	// add exercises
	resp = doJSON(t, handler, http.MethodPost, "/api/exercises", coachToken, `{"name":"Squat","category":"legs"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create exercise: %d: %s", resp.Code, resp.Body.String())
	}
	var ex ExerciseResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &ex); err != nil {
		t.Fatalf("unmarshal exercise: %v", err)
	}

	body, _ := json.Marshal([]RoutineExerciseRequest{{ExerciseID: ex.ID, Sets: 5, Reps: 5, RestSeconds: 120}})
	resp = doJSON(t, handler, http.MethodPut, "/api/routines/1/exercises", coachToken, string(body))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("set exercises: %d: %s", resp.Code, resp.Body.String())
	}

	// any authed user can read the routine detail
	resp = doJSON(t, handler, http.MethodGet, "/api/routines/1", clientToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get routine: %d: %s", resp.Code, resp.Body.String())
	}
	var detail RoutineDetailResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
		t.Fatalf("unmarshal detail: %v", err)
	}
	if len(detail.Exercises) != 1 || detail.Exercises[0].ExerciseID != ex.ID {
		t.Errorf("unexpected exercises: %+v", detail.Exercises)
	}

	resp = doJSON(t, handler, http.MethodDelete, "/api/routines/1", coachToken, "")
	if resp.Code != http.StatusNoContent {
		t.Errorf("delete routine: %d", resp.Code)
	}

	resp = doJSON(t, handler, http.MethodGet, "/api/routines/1", coachToken, "")
	if resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestInviteFlowOverHTTP(t *testing.T) {
	ts, _, authService := startTestServer(t)
	handler := ts.Config.Handler

	coachToken, err := authService.Register(context.Background(), "coach", "password123", "coach")
	if err != nil {
		t.Fatalf("register coach: %v", err)
	}
	clientToken, err := authService.Register(context.Background(), "client", "password123", "client")
	if err != nil {
		t.Fatalf("register client: %v", err)
	}

	// clients cannot issue invites
	resp := doJSON(t, handler, http.MethodPost, "/api/invites", clientToken, "")
	if resp.Code != http.StatusForbidden {
		t.Errorf("expected 403 for client issuing invite, got %d", resp.Code)
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/invites", coachToken, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("issue invite: %d: %s", resp.Code, resp.Body.String())
	}
	var inv InviteResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &inv); err != nil || inv.Code == "" {
		t.Fatalf("unmarshal invite: %v %s", err, resp.Body.String())
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/invites/redeem", clientToken, `{"code":"`+inv.Code+`"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("redeem invite: %d: %s", resp.Code, resp.Body.String())
	}

	// second redemption conflicts
	resp = doJSON(t, handler, http.MethodPost, "/api/invites/redeem", clientToken, `{"code":"`+inv.Code+`"}`)
	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for reused invite, got %d", resp.Code)
	}

	resp = doJSON(t, handler, http.MethodGet, "/api/coach", clientToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get coach: %d: %s", resp.Code, resp.Body.String())
	}
	var coach LinkedUserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &coach); err != nil || coach.Username != "coach" {
		t.Fatalf("unexpected coach: %v %s", err, resp.Body.String())
	}

	resp = doJSON(t, handler, http.MethodGet, "/api/clients", coachToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list clients: %d: %s", resp.Code, resp.Body.String())
	}
	var clients []LinkedUserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &clients); err != nil || len(clients) != 1 {
		t.Fatalf("unexpected clients: %v %s", err, resp.Body.String())
	}
}
