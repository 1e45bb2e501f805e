package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub owns the room directory, the connection registry and the
// signaling state, and processes every command on a single run
// goroutine. Serializing the read-modify-write sequences this way is
// what keeps concurrent joins and leaves on the same room from
// corrupting the participant list; no locks are needed anywhere in the
// core.
//
// Host assignment is last-write-wins on rejoin: two users claiming
// host both end up flagged until one rejoins without the claim. The
// hub does not arbitrate.
type Hub struct {
	log       *zerolog.Logger
	directory *Directory
	registry  *Registry
	signals   *signaling

	clients     map[*Client]struct{}
	register    chan *Client
	unregister  chan *Client
	submissions chan submission
}

type submission struct {
	client *Client
	cmd    *Command
}

// NewHub creates a hub with empty state. A nil logger disables logging.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		log:         logger,
		directory:   NewDirectory(),
		registry:    NewRegistry(),
		signals:     newSignaling(),
		clients:     make(map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		submissions: make(chan submission),
	}
}

// RegisterClient hands a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient signals that the connection's transport has gone
// away. Must be called after the caller has stopped writing to
// c.Commands.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(ctx, c)
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case sub := <-h.submissions:
			h.dispatch(sub.client, sub.cmd)
		}
	}
}

// pump forwards one connection's commands into the shared queue,
// preserving that connection's emission order. Exits when the hub
// stops, the transport closes Commands, or the connection is cleaned
// up after disconnect.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.submissions <- submission{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			case <-c.done:
				return
			}
		}
	}
}

// dispatch routes one command. A panicking handler must never take the
// shared loop down with it, so the worst a bad command can do is get
// logged and dropped.
func (h *Hub) dispatch(c *Client, cmd *Command) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Str("client_id", c.ID).Msg("command handler panicked")
		}
	}()

	if _, known := h.clients[c]; !known {
		// Late command from a connection that already disconnected.
		return
	}

	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd)
	case CommandLeaveRoom:
		h.handleLeave(c, cmd.Room, cmd.Identity)
	case CommandStartSession:
		h.handleStartSession(c, cmd)
	case CommandProgress:
		h.handleProgress(c, cmd)
	case CommandListParticipants:
		h.handleListParticipants(c, cmd.Room)
	case CommandOffer:
		h.handleSignal(c, cmd, EventOffer)
	case CommandAnswer:
		h.handleSignal(c, cmd, EventAnswer)
	case CommandCandidate:
		h.handleSignal(c, cmd, EventCandidate)
	case CommandOpenChat:
		h.handleOpenChat(c, cmd)
	case CommandCloseChat:
		h.signals.markClosed(cmd.Room, cmd.Identity)
	default:
		c.trySend(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "unknown command")})
	}
}

func (h *Hub) handleJoin(c *Client, cmd *Command) {
	// A connection holds a single binding. Rebinding to a different
	// room or identity behaves like the old presence disconnecting.
	if prev, had := h.registry.Lookup(c); had && (prev.Room != cmd.Room || prev.Identity != cmd.Identity) {
		h.removePresence(c, prev.Room, prev.Identity)
	}

	host, list := h.directory.Join(c, cmd.Room, cmd.Identity, cmd.Name, cmd.Host)
	h.registry.Bind(c, cmd.Identity, cmd.Room)

	// The joiner learns its own role before the general broadcast.
	c.trySend(&Event{
		Kind:         EventJoined,
		Room:         cmd.Room,
		Identity:     cmd.Identity,
		Host:         host,
		Participants: list,
	})
	h.broadcastRoomUpdate(cmd.Room, list)

	h.log.Debug().
		Str("room", cmd.Room).
		Str("identity", cmd.Identity).
		Bool("host", host).
		Int("participants", len(list)).
		Msg("participant joined")
}

func (h *Hub) broadcastRoomUpdate(room string, list []Participant) {
	r, ok := h.directory.Room(room)
	if !ok {
		return
	}
	r.Broadcast(&Event{Kind: EventRoomUpdate, Room: room, Participants: list})
}

func (h *Hub) handleLeave(c *Client, room, identity string) {
	// Only the connection bound to (identity, room) is detached from
	// the broadcast set. A leave naming someone else's identity, or one
	// the room never had, must not touch the issuer's subscription.
	if b, ok := h.registry.Lookup(c); ok && b.Room == room && b.Identity == identity {
		h.registry.Clear(c)
		h.removePresence(c, room, identity)
		return
	}
	h.removePresence(nil, room, identity)
}

// removePresence takes one (identity, room) presence out of the
// directory, resets any signaling the pair had going, and broadcasts
// the shrunken list to whoever is left. Unknown rooms are a no-op, and
// so is an absent identity unless a connection is being detached.
func (h *Hub) removePresence(c *Client, room, identity string) {
	if _, ok := h.directory.Room(room); !ok {
		return
	}

	removed := h.directory.Leave(c, room, identity)
	if !removed && c == nil {
		return
	}
	h.signals.reset(room)
	h.signals.markClosed(room, identity)

	if r, ok := h.directory.Room(room); ok {
		r.Broadcast(&Event{Kind: EventRoomUpdate, Room: room, Participants: r.Participants()})
	} else {
		h.signals.drop(room)
		h.log.Debug().Str("room", room).Msg("room deleted")
	}
}

func (h *Hub) handleDisconnect(c *Client) {
	if _, known := h.clients[c]; !known {
		return
	}
	delete(h.clients, c)

	if b, ok := h.registry.Lookup(c); ok {
		h.registry.Clear(c)
		h.removePresence(c, b.Room, b.Identity)
	}

	close(c.done)
	close(c.Events)
	h.log.Debug().Str("client_id", c.ID).Msg("connection cleaned up")
}

func (h *Hub) handleStartSession(c *Client, cmd *Command) {
	r, ok := h.directory.Room(cmd.Room)
	if !ok {
		h.log.Debug().Str("room", cmd.Room).Msg("start-session for unknown room dropped")
		return
	}
	// Fire-and-forget to every current member, origin included. The
	// routine payload passes through opaquely.
	r.Broadcast(&Event{Kind: EventSessionStarting, Room: cmd.Room, Routine: cmd.Routine})
	h.log.Info().Str("room", cmd.Room).Int("members", len(r.Participants())).Msg("session starting")
}

func (h *Hub) handleProgress(c *Client, cmd *Command) {
	r, ok := h.directory.Room(cmd.Room)
	if !ok {
		return
	}
	r.BroadcastExcept(c, &Event{
		Kind:     EventProgress,
		Room:     cmd.Room,
		Identity: cmd.Identity,
		Value:    cmd.Value,
		Payload:  cmd.Payload,
	})
}

func (h *Hub) handleListParticipants(c *Client, room string) {
	list := h.directory.Participants(room)
	public := make([]PublicView, 0, len(list))
	for _, p := range list {
		public = append(public, p.Public())
	}
	c.trySend(&Event{Kind: EventParticipants, Room: room, Public: public})
}

func (h *Hub) handleSignal(c *Client, cmd *Command, kind EventKind) {
	r, ok := h.directory.Room(cmd.Room)
	if !ok {
		h.log.Debug().Str("room", cmd.Room).Msg("signal for unknown room dropped")
		return
	}

	switch kind {
	case EventOffer:
		if !h.signals.offer(cmd.Room) {
			h.log.Debug().
				Str("room", cmd.Room).
				Str("state", h.signals.state(cmd.Room).String()).
				Msg("late offer dropped")
			return
		}
	case EventAnswer:
		if !h.signals.answer(cmd.Room) {
			h.log.Debug().
				Str("room", cmd.Room).
				Str("state", h.signals.state(cmd.Room).String()).
				Msg("answer out of order dropped")
			return
		}
	case EventCandidate:
		if !h.signals.candidate(cmd.Room) {
			h.log.Debug().Str("room", cmd.Room).Msg("candidate before offer dropped")
			return
		}
	}

	r.BroadcastExcept(c, &Event{Kind: kind, Room: cmd.Room, Signal: cmd.Signal})
}

func (h *Hub) handleOpenChat(c *Client, cmd *Command) {
	// Room first: marking an unknown room would leave a stale open
	// entry nothing ever clears.
	r, ok := h.directory.Room(cmd.Room)
	if !ok {
		return
	}
	h.signals.markOpen(cmd.Room, cmd.Identity)
	// Low-priority ping to peers that do not have the chat on screen.
	for peer := range r.clients {
		if peer == c {
			continue
		}
		if b, bound := h.registry.Lookup(peer); bound && h.signals.isOpen(cmd.Room, b.Identity) {
			continue
		}
		peer.trySend(&Event{Kind: EventChatOpened, Room: cmd.Room, Identity: cmd.Identity})
	}
}

// SignalState exposes the current signaling state of a room. Intended
// for tests and diagnostics; must only be trusted from within the run
// goroutine's ordering.
func (h *Hub) SignalState(room string) SignalState {
	return h.signals.state(room)
}
