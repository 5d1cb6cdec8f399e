package meeting

import (
	"context"
	"errors"

	"github.com/CUknot/meetroom/models"
)

// Identity is the verified subject of a credential.
type Identity struct {
	UserID   uint
	Username string
}

// Authorizer answers identity and permission questions. Nothing is cached:
// every call goes back to the token or the store.
type Authorizer struct {
	tokens TokenParser
	store  Store
}

func NewAuthorizer(tokens TokenParser, store Store) *Authorizer {
	return &Authorizer{tokens: tokens, store: store}
}

func (a *Authorizer) VerifyCredential(token string) (Identity, error) {
	claims, err := a.tokens.ParseToken(token)
	if err != nil {
		return Identity{}, ErrInvalidCredential
	}
	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// ResolveRole returns the persisted role of a user in a room.
func (a *Authorizer) ResolveRole(ctx context.Context, roomID, userID uint) (string, error) {
	p, err := a.store.Participant(ctx, roomID, userID)
	if err != nil {
		if errors.Is(storeFailure(err), ErrNotFound) {
			return "", ErrNotParticipant
		}
		return "", storeFailure(err)
	}
	return p.Role, nil
}

// CanMute reports whether actor currently holds the admin role in the room.
func (a *Authorizer) CanMute(ctx context.Context, actorID, roomID uint) (bool, error) {
	role, err := a.ResolveRole(ctx, roomID, actorID)
	if errors.Is(err, ErrNotParticipant) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}

// Room resolves an active room by its session id.
func (a *Authorizer) Room(ctx context.Context, sessionID string) (*models.Room, error) {
	if sessionID == "" {
		return nil, ErrNotFound
	}
	room, err := a.store.ActiveRoomBySessionID(ctx, sessionID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return room, nil
}
