package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/gymsync-server/internal/proto"
)

// Smoke test: join a gym room as host, start a session and wait for
// the session-starting echo.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	room := flag.String("room", "smoke-gym", "room name")
	identity := flag.String("identity", "smoke-host", "participant identity")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(msgType string, data any) error {
		payload, marshalErr := json.Marshal(data)
		if marshalErr != nil {
			return fmt.Errorf("marshal %s: %w", msgType, marshalErr)
		}
		if writeErr := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); writeErr != nil {
			return fmt.Errorf("send %s: %w", msgType, writeErr)
		}
		return nil
	}

	if err := send(proto.InboundTypeJoinRoom, proto.JoinRoomData{
		Room: *room, Identity: *identity, Name: "Smoke", Host: true,
	}); err != nil {
		return err
	}

	routine := json.RawMessage(`{"title":"Smoke routine","exercises":[]}`)
	if err := send(proto.InboundTypeStartSession, proto.StartSessionData{
		Room: *room, Routine: routine,
	}); err != nil {
		return err
	}

	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("Received: type=%s", outbound.Type)
		if outbound.Event != "" {
			fmt.Printf(" event=%s", outbound.Event)
		}
		fmt.Println()

		if outbound.Error != nil {
			return fmt.Errorf("server error: %s (%s)", outbound.Error.Msg, outbound.Error.Code)
		}

		switch outbound.Event {
		case proto.EventNameJoined:
			var evt proto.EventJoined
			if err := json.Unmarshal(outbound.Data, &evt); err == nil {
				fmt.Printf("Joined: room=%s identity=%s host=%v\n", evt.Room, evt.Identity, evt.Host)
			}
		case proto.EventNameRoomUpdate:
			var evt proto.EventRoomUpdate
			if err := json.Unmarshal(outbound.Data, &evt); err == nil {
				fmt.Printf("Room update: %d participant(s)\n", len(evt.Participants))
			}
		case proto.EventNameSessionStarting:
			var evt proto.EventSessionStarting
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				return fmt.Errorf("unmarshal session-starting: %w", err)
			}
			fmt.Printf("Session starting: room=%s routine=%s\n", evt.Room, evt.Routine)
			return nil
		}
	}
}
