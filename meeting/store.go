package meeting

import (
	"context"
	"time"

	"github.com/CUknot/meetroom/models"
	"github.com/CUknot/meetroom/utils"
)

// Store is the slice of the persistence gateway the coordinator needs.
type Store interface {
	ActiveRoomBySessionID(ctx context.Context, sessionID string) (*models.Room, error)
	UpsertParticipant(ctx context.Context, roomID, userID uint, role string, at time.Time) (*models.Participant, error)
	Participant(ctx context.Context, roomID, userID uint) (*models.Participant, error)
	SetMuted(ctx context.Context, roomID, userID uint, muted bool) error
	ListParticipants(ctx context.Context, roomID uint) ([]models.Participant, error)
	CreateMessageIfUnmuted(ctx context.Context, roomID, userID uint, text string, at time.Time) (*models.Message, error)
}

// TokenParser verifies bearer credentials.
type TokenParser interface {
	ParseToken(token string) (*utils.Claims, error)
}
