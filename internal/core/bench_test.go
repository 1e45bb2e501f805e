package core

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
)

func benchmarkProgressBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	sender := NewClient("sender")
	hub.RegisterClient(sender)
	sender.Commands <- &Command{Kind: CommandJoinRoom, Room: "bench", Identity: "sender", Host: true}

	clients := make([]*Client, 0, recipients)
	for i := 0; i < recipients; i++ {
		c := NewClient(fmt.Sprintf("c%d", i))
		hub.RegisterClient(c)
		c.Commands <- &Command{Kind: CommandJoinRoom, Room: "bench", Identity: fmt.Sprintf("u%d", i)}
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}
	go func() {
		for range sender.Events {
		}
	}()

	payload := json.RawMessage(`{"set":1,"rep":10}`)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{
			Kind:     CommandProgress,
			Room:     "bench",
			Identity: "sender",
			Value:    0.5,
			Payload:  payload,
		}
		for {
			if ev := <-target.Events; ev != nil && ev.Kind == EventProgress {
				break
			}
		}
	}
}

func BenchmarkProgressBroadcast_10(b *testing.B)  { benchmarkProgressBroadcast(b, 10) }
func BenchmarkProgressBroadcast_100(b *testing.B) { benchmarkProgressBroadcast(b, 100) }
func BenchmarkProgressBroadcast_500(b *testing.B) { benchmarkProgressBroadcast(b, 500) }
