package meeting

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Presence tells a room who arrived, who left and who was muted.
type Presence struct {
	store Store
	bus   Broadcaster
}

func NewPresence(store Store, bus Broadcaster) *Presence {
	return &Presence{store: store, bus: bus}
}

// AnnounceJoin notifies every connection in the room except the joiner's own.
func (p *Presence) AnnounceJoin(ctx context.Context, sessionID, joinerConnID string, joined ParticipantJoined) {
	p.publish(ctx, Event{Room: sessionID, Type: EventParticipantJoined, Payload: joined, Exclude: joinerConnID})
}

func (p *Presence) AnnounceLeave(ctx context.Context, sessionID string, userID uint) {
	p.publish(ctx, Event{Room: sessionID, Type: EventParticipantLeft, Payload: ParticipantLeft{UserID: userID}})
}

// AnnounceMuteChange reaches the whole room, the target included.
func (p *Presence) AnnounceMuteChange(ctx context.Context, sessionID string, muted ParticipantMuted) {
	p.publish(ctx, Event{Room: sessionID, Type: EventParticipantMuted, Payload: muted})
}

// Snapshot lists every participant row of the room ordered by join time.
func (p *Presence) Snapshot(ctx context.Context, roomID uint) ([]ParticipantView, error) {
	rows, err := p.store.ListParticipants(ctx, roomID)
	if err != nil {
		return nil, storeFailure(err)
	}
	views := make([]ParticipantView, 0, len(rows))
	for _, r := range rows {
		views = append(views, NewParticipantView(r))
	}
	return views, nil
}

func (p *Presence) publish(ctx context.Context, ev Event) {
	if err := p.bus.Publish(ctx, ev); err != nil {
		log.Error().Str("module", "meeting.presence").Err(err).
			Str("room", ev.Room).Str("event", ev.Type).
			Msg("failed to publish presence event")
	}
}
