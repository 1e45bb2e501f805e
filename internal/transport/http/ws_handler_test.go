package http

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/gymsync-server/internal/core"
	"github.com/vovakirdan/gymsync-server/internal/proto"
)

func dialWS(t *testing.T, ctx context.Context, baseURL string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(baseURL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", msgType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
		t.Fatalf("send %s: %v", msgType, err)
	}
}

// readEvent skips unrelated events until one with the wanted name
// arrives, failing on protocol errors.
func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			t.Fatalf("read waiting for %s: %v", event, err)
		}
		if outbound.Type == proto.OutboundTypeError {
			t.Fatalf("unexpected error waiting for %s: %+v", event, outbound.Error)
		}
		if outbound.Event == event {
			return outbound.Data
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts, _, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketJoinAndRoomUpdate(t *testing.T) {
	ts, _, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts.URL)
	connB := dialWS(t, ctx, ts.URL)

	sendInbound(t, ctx, connA, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		Room: "gym-1", Identity: "coach-1", Name: "Coach", Host: true,
	})

	var joined proto.EventJoined
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventNameJoined), &joined); err != nil {
		t.Fatalf("unmarshal joined: %v", err)
	}
	if !joined.Host || joined.Identity != "coach-1" || joined.Room != "gym-1" {
		t.Fatalf("unexpected joined payload: %+v", joined)
	}

	sendInbound(t, ctx, connB, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		Room: "gym-1", Identity: "client-1", Name: "Alex",
	})

	var update proto.EventRoomUpdate
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventNameRoomUpdate), &update); err != nil {
		t.Fatalf("unmarshal room-update: %v", err)
	}
	for len(update.Participants) < 2 {
		if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventNameRoomUpdate), &update); err != nil {
			t.Fatalf("unmarshal room-update: %v", err)
		}
	}

	found := map[string]bool{}
	for _, p := range update.Participants {
		found[p.Identity] = p.Host
	}
	if !found["coach-1"] || found["client-1"] {
		t.Fatalf("unexpected participant flags: %+v", update.Participants)
	}
}

func TestWebSocketProgressSkipsSender(t *testing.T) {
	ts, _, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts.URL)
	connB := dialWS(t, ctx, ts.URL)

	sendInbound(t, ctx, connA, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		Room: "gym-1", Identity: "coach-1", Host: true,
	})
	readEvent(t, ctx, connA, proto.EventNameJoined)

	sendInbound(t, ctx, connB, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		Room: "gym-1", Identity: "client-1",
	})
	readEvent(t, ctx, connB, proto.EventNameJoined)

	sendInbound(t, ctx, connB, proto.InboundTypeProgress, proto.ProgressData{
		Room: "gym-1", Identity: "client-1", Value: 0.5,
	})

	var prog proto.EventProgress
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventNameProgress), &prog); err != nil {
		t.Fatalf("unmarshal progress: %v", err)
	}
	if prog.Identity != "client-1" || prog.Value != 0.5 {
		t.Fatalf("unexpected progress payload: %+v", prog)
	}
}

func TestWebSocketStartSessionCarriesRoutineVerbatim(t *testing.T) {
	ts, _, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts.URL)
	connB := dialWS(t, ctx, ts.URL)

	sendInbound(t, ctx, connA, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		Room: "gym-1", Identity: "coach-1", Host: true,
	})
	readEvent(t, ctx, connA, proto.EventNameJoined)

	sendInbound(t, ctx, connB, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		Room: "gym-1", Identity: "client-1",
	})
	readEvent(t, ctx, connB, proto.EventNameJoined)

	routine := json.RawMessage(`{"title":"HIIT","exercises":[{"exercise_id":1,"sets":3}]}`)
	sendInbound(t, ctx, connA, proto.InboundTypeStartSession, proto.StartSessionData{
		Room: "gym-1", Routine: routine,
	})

	var starting proto.EventSessionStarting
	if err := json.Unmarshal(readEvent(t, ctx, connB, proto.EventNameSessionStarting), &starting); err != nil {
		t.Fatalf("unmarshal session-starting: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(starting.Routine, &got); err != nil {
		t.Fatalf("routine not valid json: %v", err)
	}
	if err := json.Unmarshal(routine, &want); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if got["title"] != want["title"] {
		t.Fatalf("routine mangled in transit: %s", starting.Routine)
	}
}

func TestWebSocketRejectsMalformedJoin(t *testing.T) {
	ts, _, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts.URL)

	sendInbound(t, ctx, conn, proto.InboundTypeJoinRoom, proto.JoinRoomData{Room: "gym-1"})

	var outbound proto.Outbound
	if err := wsjson.Read(ctx, conn, &outbound); err != nil {
		t.Fatalf("read: %v", err)
	}
	if outbound.Type != proto.OutboundTypeError || outbound.Error == nil || outbound.Error.Code != "bad_request" {
		t.Fatalf("expected bad_request error, got %+v", outbound)
	}
}

func TestWebSocketTokenValidation(t *testing.T) {
	ts, _, authService := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"

	// invalid token refused before upgrade
	if _, _, err := websocket.Dial(ctx, wsURL+"?token=garbage", nil); err == nil {
		t.Fatal("expected dial with invalid token to fail")
	}

	// valid token accepted
	token, err := authService.Register(context.Background(), "coach", "password123", "coach")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	conn, _, err := websocket.Dial(ctx, wsURL+"?token="+token, nil)
	if err != nil {
		t.Fatalf("dial with valid token: %v", err)
	}
	conn.Close(websocket.StatusNormalClosure, "done")
}

func TestWebSocketMalformedPayloadKeepsConnection(t *testing.T) {
	ts, _, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts.URL)

	// Wrong type for the room field. The server must answer with an
	// error frame instead of dropping the connection.
	sendInbound(t, ctx, conn, proto.InboundTypeJoinRoom, map[string]any{"room": 123})

	var outbound struct {
		Type  string       `json:"type"`
		Error *proto.Error `json:"error"`
	}
	if err := wsjson.Read(ctx, conn, &outbound); err != nil {
		t.Fatalf("read after malformed payload: %v", err)
	}
	if outbound.Type != proto.OutboundTypeError || outbound.Error == nil {
		t.Fatalf("expected error frame, got %+v", outbound)
	}
	if outbound.Error.Code != core.ErrCodeInvalidPayload {
		t.Fatalf("unexpected error code: %q", outbound.Error.Code)
	}

	// A well-formed join on the same connection still works.
	sendInbound(t, ctx, conn, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		Room: "gym-9", Identity: "late-1", Name: "Late", Host: true,
	})
	raw := readEvent(t, ctx, conn, proto.EventNameJoined)

	var joined proto.EventJoined
	if err := json.Unmarshal(raw, &joined); err != nil {
		t.Fatalf("decode joined: %v", err)
	}
	if !joined.Host {
		t.Fatalf("expected host after recovery join, got %+v", joined)
	}
}
