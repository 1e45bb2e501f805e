package core

import "encoding/json"

// CommandKind describes what the connection wants to do.
type CommandKind int

const (
	// CommandJoinRoom attaches the connection to a gym room.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom removes an identity from a room.
	CommandLeaveRoom
	// CommandStartSession broadcasts a routine payload and starts the
	// synchronized countdown for everyone in the room.
	CommandStartSession
	// CommandProgress relays a per-participant progress update to the
	// rest of the room.
	CommandProgress
	// CommandListParticipants asks for the current list, answered to
	// the caller only.
	CommandListParticipants
	// CommandOffer forwards a WebRTC offer to the peer in a chat room.
	CommandOffer
	// CommandAnswer forwards a WebRTC answer to the peer.
	CommandAnswer
	// CommandCandidate forwards an ICE candidate to the peer.
	CommandCandidate
	// CommandOpenChat marks a chat as open for an identity and pings
	// the peer.
	CommandOpenChat
	// CommandCloseChat clears the open-chat mark.
	CommandCloseChat
)

// Command is the closed set of actions a connection may request. The
// transport layer validates required fields per kind before dispatch;
// the hub treats Routine, Payload and Signal as opaque.
type Command struct {
	Kind     CommandKind
	Room     string
	Identity string
	Name     string
	Host     bool

	// Routine carries the workout definition for start-session.
	Routine json.RawMessage
	// Value and Payload carry progress updates.
	Value   float64
	Payload json.RawMessage
	// Signal carries SDP or ICE payloads, forwarded verbatim.
	Signal json.RawMessage
}
