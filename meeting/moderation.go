package meeting

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Moderation carries out admin mute commands.
type Moderation struct {
	auth     *Authorizer
	store    Store
	presence *Presence
}

func NewModeration(auth *Authorizer, store Store, presence *Presence) *Moderation {
	return &Moderation{auth: auth, store: store, presence: presence}
}

// SetMute verifies the credential and then applies SetMuteAs.
func (m *Moderation) SetMute(ctx context.Context, sessionID, credential string, targetUserID uint, muted bool) (*ParticipantMuted, error) {
	actor, err := m.auth.VerifyCredential(credential)
	if err != nil {
		return nil, err
	}
	return m.SetMuteAs(ctx, sessionID, actor, targetUserID, muted)
}

// SetMuteAs changes the target's mute flag when actor is the room's admin
// and announces the change to the whole room.
func (m *Moderation) SetMuteAs(ctx context.Context, sessionID string, actor Identity, targetUserID uint, muted bool) (*ParticipantMuted, error) {
	room, err := m.auth.Room(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if actor.UserID == targetUserID {
		return nil, ErrSelfMute
	}

	allowed, err := m.auth.CanMute(ctx, actor.UserID, room.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		log.Warn().Str("module", "meeting.moderation").
			Str("room", sessionID).Uint("actor", actor.UserID).Uint("target", targetUserID).
			Msg("mute rejected: actor is not admin")
		return nil, ErrForbidden
	}

	target, err := m.store.Participant(ctx, room.ID, targetUserID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if err := m.store.SetMuted(ctx, room.ID, targetUserID, muted); err != nil {
		return nil, storeFailure(err)
	}

	change := ParticipantMuted{
		UserID:   targetUserID,
		Username: target.User.Username,
		IsMuted:  muted,
		MutedBy:  actor.Username,
	}
	m.presence.AnnounceMuteChange(ctx, sessionID, change)

	log.Info().Str("module", "meeting.moderation").
		Str("room", sessionID).Uint("actor", actor.UserID).Uint("target", targetUserID).
		Bool("muted", muted).
		Msg("mute state changed")
	return &change, nil
}
