package meeting

import (
	"context"
	"time"

	"github.com/CUknot/meetroom/models"
	"github.com/rs/zerolog/log"
)

type JoinResult struct {
	Identity    Identity
	Room        *models.Room
	Participant ParticipantView
	Snapshot    []ParticipantView
}

// Membership admits connections into rooms and detaches them again.
type Membership struct {
	auth     *Authorizer
	store    Store
	index    *ConnIndex
	presence *Presence
	now      func() time.Time
}

func NewMembership(auth *Authorizer, store Store, index *ConnIndex, presence *Presence) *Membership {
	return &Membership{auth: auth, store: store, index: index, presence: presence, now: time.Now}
}

// Enroll persists the (room, user) row. The creator becomes admin on first
// join; later joins only refresh joined_at.
func (m *Membership) Enroll(ctx context.Context, room *models.Room, userID uint) (*models.Participant, error) {
	role := models.RoleParticipant
	if room.CreatedBy == userID {
		role = models.RoleAdmin
	}
	p, err := m.store.UpsertParticipant(ctx, room.ID, userID, role, m.now().UTC())
	if err != nil {
		return nil, storeFailure(err)
	}
	return p, nil
}

// JoinBySession is the connectionless join used by the REST surface.
func (m *Membership) JoinBySession(ctx context.Context, sessionID string, userID uint) (*models.Participant, error) {
	room, err := m.auth.Room(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return m.Enroll(ctx, room, userID)
}

// Join verifies the credential, persists membership and attaches conn to the
// room. The others hear about it on the user's first connection only; the
// joiner always gets a participant snapshot.
func (m *Membership) Join(ctx context.Context, sessionID, credential string, conn Conn) (*JoinResult, error) {
	id, err := m.auth.VerifyCredential(credential)
	if err != nil {
		return nil, err
	}
	room, err := m.auth.Room(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	p, err := m.Enroll(ctx, room, id.UserID)
	if err != nil {
		return nil, err
	}

	// The row is stored, so the snapshot already lists the joiner. Nothing is
	// attached or announced until it has been read.
	snapshot, err := m.presence.Snapshot(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	if bound, user, ok := m.index.Binding(conn.ID()); ok && (bound != sessionID || user != id.UserID) {
		m.Leave(ctx, conn)
	}
	if first := m.index.Add(sessionID, id.UserID, conn); first {
		m.presence.AnnounceJoin(ctx, sessionID, conn.ID(), ParticipantJoined{
			UserID:   id.UserID,
			Username: id.Username,
			Role:     p.Role,
		})
	}
	conn.Send(EventParticipantsList, snapshot)

	log.Info().Str("module", "meeting.membership").
		Str("room", sessionID).Uint("user", id.UserID).Str("role", p.Role).
		Str("conn", conn.ID()).
		Msg("participant joined")

	return &JoinResult{
		Identity:    id,
		Room:        room,
		Participant: NewParticipantView(*p),
		Snapshot:    snapshot,
	}, nil
}

// Leave detaches conn. The participant row is kept; the room hears about
// the departure only when the user's last connection goes away.
func (m *Membership) Leave(ctx context.Context, conn Conn) {
	sessionID, userID, last, ok := m.index.Remove(conn.ID())
	if !ok {
		return
	}
	log.Info().Str("module", "meeting.membership").
		Str("room", sessionID).Uint("user", userID).Str("conn", conn.ID()).
		Bool("last", last).
		Msg("connection left room")
	if last {
		m.presence.AnnounceLeave(ctx, sessionID, userID)
	}
}
