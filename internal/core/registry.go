package core

// Binding records which (identity, room) pair a connection last joined.
// It exists solely so disconnects know what to clean up.
type Binding struct {
	Identity string
	Room     string
}

// Registry maps live connections to their current binding. At most one
// binding per connection; a new join replaces the previous one.
type Registry struct {
	bindings map[*Client]Binding
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[*Client]Binding)}
}

// Bind associates a connection with (identity, room), returning the
// previous binding if one existed.
func (g *Registry) Bind(c *Client, identity, room string) (Binding, bool) {
	prev, had := g.bindings[c]
	g.bindings[c] = Binding{Identity: identity, Room: room}
	return prev, had
}

// Lookup returns the connection's current binding.
func (g *Registry) Lookup(c *Client) (Binding, bool) {
	b, ok := g.bindings[c]
	return b, ok
}

// Clear removes the connection's binding. Clearing an unbound
// connection is a no-op.
func (g *Registry) Clear(c *Client) {
	delete(g.bindings, c)
}

// Len reports how many connections are currently bound.
func (g *Registry) Len() int {
	return len(g.bindings)
}
