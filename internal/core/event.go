package core

import "encoding/json"

// EventKind is a notification the core emits to connections.
type EventKind int

const (
	// EventJoined is the one-time reply to the joiner carrying its
	// assigned host flag and a snapshot list. Queued before the general
	// room update so the joiner learns its own role first.
	EventJoined EventKind = iota
	// EventRoomUpdate carries the full participant list after any
	// membership change.
	EventRoomUpdate
	// EventParticipants answers a list query, caller only, public
	// fields only.
	EventParticipants
	// EventSessionStarting tells the room a synchronized session begins.
	EventSessionStarting
	// EventProgress relays another participant's progress update.
	EventProgress
	// EventOffer, EventAnswer and EventCandidate carry signaling
	// payloads verbatim.
	EventOffer
	EventAnswer
	EventCandidate
	// EventChatOpened tells a peer that someone opened a chat with them.
	EventChatOpened
	// EventError notifies the connection about a rejected command.
	EventError
)

// Event is sent to connections to describe what happened in a room.
type Event struct {
	Kind         EventKind
	Room         string
	Identity     string
	Host         bool
	Participants []Participant
	Public       []PublicView

	Routine json.RawMessage
	Value   float64
	Payload json.RawMessage
	Signal  json.RawMessage

	Error *CoreError
}
