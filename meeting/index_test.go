package meeting

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct {
	id  string
	mu  sync.Mutex
	got []string
}

func (c *stubConn) ID() string { return c.id }

func (c *stubConn) Send(event string, _ any) {
	c.mu.Lock()
	c.got = append(c.got, event)
	c.mu.Unlock()
}

func TestConnIndexRefcount(t *testing.T) {
	x := NewConnIndex()
	c1, c2 := &stubConn{id: "1"}, &stubConn{id: "2"}

	assert.True(t, x.Add("room", 7, c1))
	assert.False(t, x.Add("room", 7, c1), "re-adding is a no-op")
	assert.False(t, x.Add("room", 7, c2), "second connection of the same user")
	assert.True(t, x.Connected("room", 7))

	_, _, last, ok := x.Remove("1")
	require.True(t, ok)
	assert.False(t, last)

	session, user, last, ok := x.Remove("2")
	require.True(t, ok)
	assert.True(t, last)
	assert.Equal(t, "room", session)
	assert.Equal(t, uint(7), user)
	assert.False(t, x.Connected("room", 7))
	assert.Empty(t, x.rooms, "empty rooms are dropped")

	_, _, _, ok = x.Remove("2")
	assert.False(t, ok)
}

func TestConnIndexDeliverExcludes(t *testing.T) {
	x := NewConnIndex()
	a, b, other := &stubConn{id: "a"}, &stubConn{id: "b"}, &stubConn{id: "o"}
	x.Add("room", 1, a)
	x.Add("room", 2, b)
	x.Add("elsewhere", 3, other)

	require.NoError(t, x.Publish(context.Background(), Event{Room: "room", Type: "ping", Exclude: "a"}))

	assert.Empty(t, a.got)
	assert.Equal(t, []string{"ping"}, b.got)
	assert.Empty(t, other.got)
}

func TestRoomLocksForgetIdleRooms(t *testing.T) {
	l := newRoomLocks()
	unlock := l.lock("r")
	assert.Len(t, l.rooms, 1)
	unlock()
	assert.Empty(t, l.rooms)
}
