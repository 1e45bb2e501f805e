package core

// Client is one live connection as seen by the core layer. Identity is
// carried per join command, not per connection; the connection only
// knows its transport-level id.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	done    chan struct{} // closed by the hub once the connection is cleaned up
	dropped uint64        // events discarded because the Events buffer was full
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
		done:     make(chan struct{}),
	}
}

// trySend queues an event for delivery, dropping it when the connection
// cannot keep up or is already gone. There is no delivery guarantee;
// clients reconcile via the next room-update or an explicit
// participants query.
func (c *Client) trySend(event *Event) bool {
	select {
	case c.Events <- event:
		return true
	default:
		c.dropped++
		return false
	}
}

// Dropped reports how many events were discarded for this connection.
func (c *Client) Dropped() uint64 {
	return c.dropped
}
