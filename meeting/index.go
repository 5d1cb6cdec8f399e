package meeting

import (
	"context"
	"sync"
)

// Conn is one live real-time connection. Send must not block; transports
// queue the event and drop it when the peer is too slow.
type Conn interface {
	ID() string
	Send(event string, payload any)
}

// Event is a room-scoped delivery. Exclude names a connection id that must
// not receive it.
type Event struct {
	Room    string `json:"room"`
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	Exclude string `json:"exclude,omitempty"`
}

// Broadcaster delivers events to every connection of a room, wherever that
// connection is attached.
type Broadcaster interface {
	Publish(ctx context.Context, ev Event) error
}

type binding struct {
	session string
	userID  uint
}

// ConnIndex maps room session ids to the connections attached on this
// process and counts connections per user so leave is reported once.
type ConnIndex struct {
	mu    sync.RWMutex
	rooms map[string]map[string]Conn
	refs  map[string]map[uint]int
	bound map[string]binding
}

func NewConnIndex() *ConnIndex {
	return &ConnIndex{
		rooms: make(map[string]map[string]Conn),
		refs:  make(map[string]map[uint]int),
		bound: make(map[string]binding),
	}
}

// Add attaches c to the room. It reports true when this is the user's first
// connection there. Callers detach c from any other room first.
func (x *ConnIndex) Add(session string, userID uint, c Conn) (first bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if b, ok := x.bound[c.ID()]; ok && b.session == session && b.userID == userID {
		return false
	}

	if _, ok := x.rooms[session]; !ok {
		x.rooms[session] = make(map[string]Conn)
		x.refs[session] = make(map[uint]int)
	}
	x.rooms[session][c.ID()] = c
	x.refs[session][userID]++
	x.bound[c.ID()] = binding{session: session, userID: userID}
	return x.refs[session][userID] == 1
}

// Remove detaches a connection. last is true when it was the user's final
// connection in that room on this process.
func (x *ConnIndex) Remove(connID string) (session string, userID uint, last bool, ok bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	b, ok := x.bound[connID]
	if !ok {
		return "", 0, false, false
	}
	delete(x.bound, connID)
	delete(x.rooms[b.session], connID)

	x.refs[b.session][b.userID]--
	if x.refs[b.session][b.userID] <= 0 {
		delete(x.refs[b.session], b.userID)
		last = true
	}
	if len(x.rooms[b.session]) == 0 {
		delete(x.rooms, b.session)
		delete(x.refs, b.session)
	}
	return b.session, b.userID, last, true
}

// Binding reports the room and user a connection is attached as.
func (x *ConnIndex) Binding(connID string) (session string, userID uint, ok bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	b, ok := x.bound[connID]
	return b.session, b.userID, ok
}

// Conns returns a snapshot of the connections attached to a room.
func (x *ConnIndex) Conns(session string) []Conn {
	x.mu.RLock()
	defer x.mu.RUnlock()

	out := make([]Conn, 0, len(x.rooms[session]))
	for _, c := range x.rooms[session] {
		out = append(out, c)
	}
	return out
}

// Connected reports whether userID has at least one connection in the room.
func (x *ConnIndex) Connected(session string, userID uint) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.refs[session][userID] > 0
}

// Deliver sends ev to the local connections of its room.
func (x *ConnIndex) Deliver(ev Event) {
	for _, c := range x.Conns(ev.Room) {
		if c.ID() == ev.Exclude {
			continue
		}
		c.Send(ev.Type, ev.Payload)
	}
}

// Publish makes ConnIndex a single-process Broadcaster.
func (x *ConnIndex) Publish(_ context.Context, ev Event) error {
	x.Deliver(ev)
	return nil
}
