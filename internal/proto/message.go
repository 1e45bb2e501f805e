package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoinRoom     = "join-room"
	InboundTypeLeaveRoom    = "leave-room"
	InboundTypeStartSession = "start-session"
	InboundTypeProgress     = "progress-update"
	InboundTypeParticipants = "get-room-participants"
	InboundTypeOffer        = "offer"
	InboundTypeAnswer       = "answer"
	InboundTypeCandidate    = "ice-candidate"
	InboundTypeOpenChat     = "open-chat"
	InboundTypeCloseChat    = "close-chat"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventNameJoined          = "joined"
	EventNameRoomUpdate      = "room-update"
	EventNameParticipants    = "room-participants"
	EventNameSessionStarting = "session-starting"
	EventNameProgress        = "progress"
	EventNameOffer           = "offer"
	EventNameAnswer          = "answer"
	EventNameCandidate       = "ice-candidate"
	EventNameChatOpened      = "chat-opened"
)

// JoinRoomData requests to join a gym room.
type JoinRoomData struct {
	Room     string `json:"room"`
	Identity string `json:"identity"`
	Name     string `json:"name,omitempty"`
	Host     bool   `json:"host,omitempty"`
}

// LeaveRoomData removes an identity from a room.
type LeaveRoomData struct {
	Room     string `json:"room"`
	Identity string `json:"identity"`
}

// StartSessionData carries the routine definition to broadcast. The
// server never interprets the routine contents.
type StartSessionData struct {
	Room    string          `json:"room"`
	Routine json.RawMessage `json:"routine"`
}

// ProgressData is a per-participant progress update.
type ProgressData struct {
	Room     string          `json:"room"`
	Identity string          `json:"identity"`
	Value    float64         `json:"value"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// ParticipantsData asks for the current list of a room.
type ParticipantsData struct {
	Room string `json:"room"`
}

// SignalData carries an SDP offer/answer or an ICE candidate,
// forwarded verbatim to the room peer.
type SignalData struct {
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload"`
}

// ChatData marks a chat as opened or closed by an identity.
type ChatData struct {
	Room     string `json:"room"`
	Identity string `json:"identity"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// ParticipantInfo is a room member as seen by other members.
type ParticipantInfo struct {
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Host     bool   `json:"host"`
}

// PublicParticipantInfo is the projection returned by participant
// queries: no host flag.
type PublicParticipantInfo struct {
	Identity string `json:"identity"`
	Name     string `json:"name"`
}

// EventJoined is the one-time reply to a joiner with its assigned role.
type EventJoined struct {
	Room         string            `json:"room"`
	Identity     string            `json:"identity"`
	Host         bool              `json:"host"`
	Participants []ParticipantInfo `json:"participants"`
}

// EventRoomUpdate carries the full list after any membership change.
type EventRoomUpdate struct {
	Room         string            `json:"room"`
	Participants []ParticipantInfo `json:"participants"`
}

// EventParticipants answers a get-room-participants query.
type EventParticipants struct {
	Room         string                  `json:"room"`
	Participants []PublicParticipantInfo `json:"participants"`
}

// EventSessionStarting signals the synchronized session countdown.
type EventSessionStarting struct {
	Room    string          `json:"room"`
	Routine json.RawMessage `json:"routine"`
}

// EventProgress relays another participant's progress.
type EventProgress struct {
	Room     string          `json:"room"`
	Identity string          `json:"identity"`
	Value    float64         `json:"value"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// EventSignal carries a relayed SDP or ICE payload.
type EventSignal struct {
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload"`
}

// EventChatOpened tells a peer that someone opened a chat with them.
type EventChatOpened struct {
	Room     string `json:"room"`
	Identity string `json:"identity"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
