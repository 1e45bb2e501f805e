package core

// SignalState tracks how far the offer/answer exchange for a chat room
// has progressed. The relay never inspects SDP or candidate contents;
// the state only exists to drop renegotiation races.
type SignalState int

const (
	// SignalIdle means no offer has been relayed yet.
	SignalIdle SignalState = iota
	// SignalOffered means an offer was forwarded and an answer is expected.
	SignalOffered
	// SignalAnswered means the answer was forwarded.
	SignalAnswered
	// SignalEstablished means candidates flowed after the answer; the
	// peers are presumed connected.
	SignalEstablished
)

func (s SignalState) String() string {
	switch s {
	case SignalIdle:
		return "idle"
	case SignalOffered:
		return "offered"
	case SignalAnswered:
		return "answered"
	case SignalEstablished:
		return "established"
	default:
		return "unknown"
	}
}

// signaling holds per-room signaling state plus the auxiliary
// "who has this chat open" set used for notification suppression.
type signaling struct {
	states map[string]SignalState
	open   map[string]map[string]struct{} // room -> identities with the chat open
}

func newSignaling() *signaling {
	return &signaling{
		states: make(map[string]SignalState),
		open:   make(map[string]map[string]struct{}),
	}
}

// state returns the room's current signaling state, SignalIdle when untracked.
func (s *signaling) state(room string) SignalState {
	return s.states[room]
}

// offer attempts the IDLE -> OFFERED transition. A late or duplicate
// offer while not idle is rejected so the relay never propagates a
// renegotiation race.
func (s *signaling) offer(room string) bool {
	if s.states[room] != SignalIdle {
		return false
	}
	s.states[room] = SignalOffered
	return true
}

// answer attempts the OFFERED -> ANSWERED transition.
func (s *signaling) answer(room string) bool {
	if s.states[room] != SignalOffered {
		return false
	}
	s.states[room] = SignalAnswered
	return true
}

// candidate reports whether ICE payloads may flow: anytime once
// signaling has begun. The first candidate after the answer promotes
// the room to established.
func (s *signaling) candidate(room string) bool {
	switch s.states[room] {
	case SignalIdle:
		return false
	case SignalAnswered:
		s.states[room] = SignalEstablished
	}
	return true
}

// reset drops the room back to idle. Reachable from any state on error
// or leave.
func (s *signaling) reset(room string) {
	delete(s.states, room)
}

// markOpen records that identity has the chat for room on screen.
// Returns true if this is new.
func (s *signaling) markOpen(room, identity string) bool {
	set, ok := s.open[room]
	if !ok {
		set = make(map[string]struct{})
		s.open[room] = set
	}
	if _, exists := set[identity]; exists {
		return false
	}
	set[identity] = struct{}{}
	return true
}

// markClosed clears the open mark. Unknown pairs are a no-op.
func (s *signaling) markClosed(room, identity string) {
	set, ok := s.open[room]
	if !ok {
		return
	}
	delete(set, identity)
	if len(set) == 0 {
		delete(s.open, room)
	}
}

// isOpen reports whether identity currently has the chat open.
func (s *signaling) isOpen(room, identity string) bool {
	_, ok := s.open[room][identity]
	return ok
}

// drop removes all signaling state for a room, used when the room
// itself disappears.
func (s *signaling) drop(room string) {
	delete(s.states, room)
	delete(s.open, room)
}
