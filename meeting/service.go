// Package meeting coordinates room membership, roles, mute state and chat
// delivery for live meeting rooms.
package meeting

// Service wires the coordinator components around one store, one token
// parser and one broadcaster.
type Service struct {
	Auth       *Authorizer
	Index      *ConnIndex
	Presence   *Presence
	Membership *Membership
	Relay      *Relay
	Moderation *Moderation
}

// NewService builds the coordinator. A nil bus delivers through index only.
func NewService(store Store, tokens TokenParser, index *ConnIndex, bus Broadcaster) *Service {
	if bus == nil {
		bus = index
	}
	auth := NewAuthorizer(tokens, store)
	presence := NewPresence(store, bus)
	return &Service{
		Auth:       auth,
		Index:      index,
		Presence:   presence,
		Membership: NewMembership(auth, store, index, presence),
		Relay:      NewRelay(auth, store, bus),
		Moderation: NewModeration(auth, store, presence),
	}
}
