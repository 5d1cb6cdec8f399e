package meeting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/CUknot/meetroom/repository"
	"github.com/rs/zerolog/log"
)

// Relay persists chat messages and fans them out to the room.
type Relay struct {
	auth  *Authorizer
	store Store
	bus   Broadcaster
	locks *roomLocks
	now   func() time.Time
}

func NewRelay(auth *Authorizer, store Store, bus Broadcaster) *Relay {
	return &Relay{auth: auth, store: store, bus: bus, locks: newRoomLocks(), now: time.Now}
}

// Send stores text from the credential's owner and broadcasts it to every
// connection in the room, the sender included. A muted sender gets
// ErrBlocked and nothing is stored.
func (r *Relay) Send(ctx context.Context, sessionID, credential, text string) (*MessageView, error) {
	id, err := r.auth.VerifyCredential(credential)
	if err != nil {
		return nil, err
	}
	room, err := r.auth.Room(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	// Persist and publish under the room's lock so every recipient sees
	// messages in the order they were stored.
	unlock := r.locks.lock(sessionID)
	defer unlock()

	msg, err := r.store.CreateMessageIfUnmuted(ctx, room.ID, id.UserID, text, r.now().UTC())
	switch {
	case errors.Is(err, repository.ErrMuted):
		log.Info().Str("module", "meeting.relay").
			Str("room", sessionID).Uint("user", id.UserID).
			Msg("message blocked for muted participant")
		return nil, ErrBlocked
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrNotParticipant
	case err != nil:
		return nil, storeFailure(err)
	}

	view := NewMessageView(*msg, id.Username)
	if err := r.bus.Publish(ctx, Event{Room: sessionID, Type: EventNewMessage, Payload: view}); err != nil {
		log.Error().Str("module", "meeting.relay").Err(err).
			Str("room", sessionID).Uint("message", msg.ID).
			Msg("message stored but broadcast failed")
	}
	return &view, nil
}

// roomLocks hands out one mutex per room and forgets it once unused.
type roomLocks struct {
	mu    sync.Mutex
	rooms map[string]*roomLock
}

type roomLock struct {
	sync.Mutex
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{rooms: make(map[string]*roomLock)}
}

func (l *roomLocks) lock(room string) func() {
	l.mu.Lock()
	rl, ok := l.rooms[room]
	if !ok {
		rl = &roomLock{}
		l.rooms[room] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.Lock()
	return func() {
		rl.Unlock()
		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.rooms, room)
		}
		l.mu.Unlock()
	}
}
