package core

// Directory owns the room table: room name to ordered participant list
// plus the connections bound to each room. Rooms are created implicitly
// on first join and deleted when the last participant leaves, so an
// emptied room is indistinguishable from one that never existed.
//
// The directory is not safe for concurrent use; the hub serializes all
// access on its run goroutine.
type Directory struct {
	rooms map[string]*Room
}

// NewDirectory constructs an empty directory.
func NewDirectory() *Directory {
	return &Directory{rooms: make(map[string]*Room)}
}

// Join adds or updates the participant in the room and attaches the
// connection. Returns the assigned host flag and a snapshot of the
// current list.
func (d *Directory) Join(c *Client, room, identity, name string, host bool) (bool, []Participant) {
	r, ok := d.rooms[room]
	if !ok {
		r = NewRoom(room)
		d.rooms[room] = r
	}
	p := r.Upsert(identity, name, host)
	r.AddClient(c)
	return p.Host, r.Participants()
}

// Leave removes the participant and, when c is non-nil, detaches the
// connection. When the room empties it is deleted entirely. Unknown
// rooms and identities are a no-op. Reports whether a participant was
// actually removed.
func (d *Directory) Leave(c *Client, room, identity string) bool {
	r, ok := d.rooms[room]
	if !ok {
		return false
	}
	removed := r.RemoveParticipant(identity)
	if c != nil {
		r.RemoveClient(c)
	}
	if r.Empty() {
		delete(d.rooms, room)
	}
	return removed
}

// Detach drops only the connection from the room, keeping the
// participant entry. Used when a connection rebinds elsewhere.
func (d *Directory) Detach(c *Client, room string) {
	r, ok := d.rooms[room]
	if !ok {
		return
	}
	r.RemoveClient(c)
	if r.Empty() {
		delete(d.rooms, room)
	}
}

// Room returns the live room entry, if present.
func (d *Directory) Room(name string) (*Room, bool) {
	r, ok := d.rooms[name]
	return r, ok
}

// Participants returns the current snapshot list, empty for unknown rooms.
func (d *Directory) Participants(room string) []Participant {
	r, ok := d.rooms[room]
	if !ok {
		return []Participant{}
	}
	return r.Participants()
}

// Len reports the number of live rooms.
func (d *Directory) Len() int {
	return len(d.rooms)
}
