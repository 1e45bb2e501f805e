package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/gymsync-server/internal/proto"
)

// Interactive gym room client for manual testing. Joins a room and
// accepts commands on stdin:
//
//	progress <0..1>   send a progress update
//	start <title>     start a session with a stub routine
//	list              query the participant list
//	leave             leave the room
func main() {
	if err := run(); err != nil {
		log.Printf("ws_gym: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	room := flag.String("room", "demo-gym", "room to join")
	identity := flag.String("identity", "cli-user", "participant identity")
	name := flag.String("name", "", "display name")
	host := flag.Bool("host", false, "join as host")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(msgType string, data any) {
		payload, marshalErr := json.Marshal(data)
		if marshalErr != nil {
			log.Printf("marshal %s: %v", msgType, marshalErr)
			return
		}
		if writeErr := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); writeErr != nil {
			cancel()
			log.Printf("send: %v", writeErr)
		}
	}

	send(proto.InboundTypeJoinRoom, proto.JoinRoomData{
		Room: *room, Identity: *identity, Name: *name, Host: *host,
	})

	fmt.Printf("Connected to %s as %s in room %s\n", *addr, *identity, *room)
	fmt.Println("Commands: progress <0..1> | start <title> | list | leave. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, send, *room, *identity)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if outbound.Error != nil {
			fmt.Printf("error: %s (%s)\n", outbound.Error.Msg, outbound.Error.Code)
			continue
		}

		switch outbound.Event {
		case proto.EventNameJoined:
			var evt proto.EventJoined
			if err := json.Unmarshal(outbound.Data, &evt); err == nil {
				fmt.Printf("[%s] joined as %s (host=%v)\n", evt.Room, evt.Identity, evt.Host)
			}
		case proto.EventNameRoomUpdate:
			var evt proto.EventRoomUpdate
			if err := json.Unmarshal(outbound.Data, &evt); err == nil {
				names := make([]string, 0, len(evt.Participants))
				for _, p := range evt.Participants {
					label := p.Name
					if p.Host {
						label += " (host)"
					}
					names = append(names, label)
				}
				fmt.Printf("[%s] participants: %s\n", evt.Room, strings.Join(names, ", "))
			}
		case proto.EventNameParticipants:
			var evt proto.EventParticipants
			if err := json.Unmarshal(outbound.Data, &evt); err == nil {
				fmt.Printf("[%s] %d participant(s)\n", evt.Room, len(evt.Participants))
			}
		case proto.EventNameSessionStarting:
			var evt proto.EventSessionStarting
			if err := json.Unmarshal(outbound.Data, &evt); err == nil {
				fmt.Printf("[%s] session starting: %s\n", evt.Room, evt.Routine)
			}
		case proto.EventNameProgress:
			var evt proto.EventProgress
			if err := json.Unmarshal(outbound.Data, &evt); err == nil {
				fmt.Printf("[%s] %s progress: %.0f%%\n", evt.Room, evt.Identity, evt.Value*100)
			}
		default:
			fmt.Printf("event=%s data=%s\n", outbound.Event, outbound.Data)
		}
	}
}

func writeLoop(ctx context.Context, send func(string, any), room, identity string) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			fields := strings.Fields(strings.TrimSpace(line))
			if len(fields) == 0 {
				continue
			}

			switch fields[0] {
			case "progress":
				if len(fields) < 2 {
					fmt.Println("usage: progress <0..1>")
					continue
				}
				value, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					fmt.Println("usage: progress <0..1>")
					continue
				}
				send(proto.InboundTypeProgress, proto.ProgressData{
					Room: room, Identity: identity, Value: value,
				})
			case "start":
				title := "Ad-hoc workout"
				if len(fields) > 1 {
					title = strings.Join(fields[1:], " ")
				}
				routine, _ := json.Marshal(map[string]any{"title": title, "exercises": []any{}})
				send(proto.InboundTypeStartSession, proto.StartSessionData{
					Room: room, Routine: routine,
				})
			case "list":
				send(proto.InboundTypeParticipants, proto.ParticipantsData{Room: room})
			case "leave":
				send(proto.InboundTypeLeaveRoom, proto.LeaveRoomData{Room: room, Identity: identity})
			default:
				fmt.Println("unknown command")
			}
		}
	}
}
