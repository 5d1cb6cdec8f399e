package fanout

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/CUknot/meetroom/meeting"
	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	id  string
	mu  sync.Mutex
	got []string
}

func (c *recordingConn) ID() string { return c.id }

func (c *recordingConn) Send(event string, payload any) {
	raw, _ := json.Marshal(payload)
	c.mu.Lock()
	c.got = append(c.got, event+" "+string(raw))
	c.mu.Unlock()
}

func (c *recordingConn) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.got...)
}

func startInstance(t *testing.T, addr string) (*Redis, *meeting.ConnIndex) {
	t.Helper()
	index := meeting.NewConnIndex()
	r := New(redis.NewClient(&redis.Options{Addr: addr}), DefaultChannel, index)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, r.Start(ctx))
	t.Cleanup(func() {
		cancel()
		_ = r.Close()
	})
	return r, index
}

func TestEventsCrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	first, indexA := startInstance(t, mr.Addr())
	_, indexB := startInstance(t, mr.Addr())

	alice := &recordingConn{id: "a"}
	bob := &recordingConn{id: "b"}
	outsider := &recordingConn{id: "o"}
	indexA.Add("room-1", 1, alice)
	indexB.Add("room-1", 2, bob)
	indexB.Add("room-2", 3, outsider)

	err := first.Publish(context.Background(), meeting.Event{
		Room:    "room-1",
		Type:    meeting.EventParticipantLeft,
		Payload: meeting.ParticipantLeft{UserID: 9},
	})
	require.NoError(t, err)

	want := []string{`participant-left {"userId":9}`}
	assert.Eventually(t, func() bool { return len(bob.received()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return len(alice.received()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, want, bob.received())
	assert.Equal(t, want, alice.received())
	assert.Empty(t, outsider.received())
}

func TestExcludeSurvivesTheWire(t *testing.T) {
	mr := miniredis.RunT(t)
	r, index := startInstance(t, mr.Addr())

	joiner := &recordingConn{id: "joiner"}
	peer := &recordingConn{id: "peer"}
	index.Add("room-1", 1, joiner)
	index.Add("room-1", 2, peer)

	require.NoError(t, r.Publish(context.Background(), meeting.Event{
		Room:    "room-1",
		Type:    meeting.EventParticipantJoined,
		Payload: meeting.ParticipantJoined{UserID: 1, Username: "alice", Role: "admin"},
		Exclude: "joiner",
	}))

	assert.Eventually(t, func() bool { return len(peer.received()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, joiner.received())
}

func TestPublishFallsBackToLocalDelivery(t *testing.T) {
	mr := miniredis.RunT(t)
	index := meeting.NewConnIndex()
	r := New(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), DefaultChannel, index)
	conn := &recordingConn{id: "c"}
	index.Add("room-1", 1, conn)

	mr.Close()
	err := r.Publish(context.Background(), meeting.Event{Room: "room-1", Type: meeting.EventNewMessage, Payload: map[string]string{"message": "hi"}})
	assert.Error(t, err)
	assert.Equal(t, []string{`new-message {"message":"hi"}`}, conn.received())
}

func TestDialRejectsBadURL(t *testing.T) {
	_, err := Dial(context.Background(), "", meeting.NewConnIndex())
	assert.Error(t, err)
	_, err = Dial(context.Background(), "not-a-url", meeting.NewConnIndex())
	assert.Error(t, err)
}
