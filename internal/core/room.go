package core

// Room groups the connections and participants sharing one broadcast
// scope: a live coaching session or a two-party chat.
type Room struct {
	Name         string
	clients      map[*Client]struct{}
	participants []Participant
}

// NewRoom constructs an empty room.
func NewRoom(name string) *Room {
	return &Room{
		Name:    name,
		clients: make(map[*Client]struct{}),
	}
}

// AddClient inserts a connection into the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a connection from the room. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Upsert appends a participant or, when the identity already exists,
// overwrites its host flag in place (last write wins). Returns the
// stored participant.
func (r *Room) Upsert(identity, name string, host bool) Participant {
	for i := range r.participants {
		if r.participants[i].Identity == identity {
			r.participants[i].Host = host
			if name != "" {
				r.participants[i].Name = name
			}
			return r.participants[i]
		}
	}
	if name == "" {
		name = placeholderName()
	}
	p := Participant{Identity: identity, Name: name, Host: host}
	r.participants = append(r.participants, p)
	return p
}

// RemoveParticipant filters out the participant with the given identity.
// Removing an unknown identity is a no-op.
func (r *Room) RemoveParticipant(identity string) bool {
	for i := range r.participants {
		if r.participants[i].Identity == identity {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return true
		}
	}
	return false
}

// Participants returns a snapshot copy of the insertion-ordered list.
func (r *Room) Participants() []Participant {
	out := make([]Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

// Broadcast sends an event to all connections in the room.
func (r *Room) Broadcast(event *Event) {
	for client := range r.clients {
		client.trySend(event)
	}
}

// BroadcastExcept sends an event to all connections except origin, so a
// sender does not receive an echo of its own update.
func (r *Room) BroadcastExcept(origin *Client, event *Event) {
	for client := range r.clients {
		if client == origin {
			continue
		}
		client.trySend(event)
	}
}

// Empty returns true when no participants and no connections remain.
func (r *Room) Empty() bool {
	return len(r.participants) == 0 && len(r.clients) == 0
}
