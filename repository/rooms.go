package repository

import (
	"context"

	"github.com/CUknot/meetroom/models"
)

// RoomSummary is a room joined with its creator's username.
type RoomSummary struct {
	models.Room
	CreatorUsername string `json:"creator_username"`
}

func (s *Store) CreateRoom(ctx context.Context, room *models.Room) error {
	room.IsActive = true
	return translate("create room", s.db.WithContext(ctx).Create(room).Error)
}

// ActiveRoomBySessionID resolves a session id. Deactivated rooms are reported
// as ErrNotFound.
func (s *Store) ActiveRoomBySessionID(ctx context.Context, sessionID string) (*models.Room, error) {
	var room models.Room
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND is_active = ?", sessionID, true).
		First(&room).Error
	if err != nil {
		return nil, translate("room by session", err)
	}
	return &room, nil
}

// ListActiveRooms returns active rooms, newest first.
func (s *Store) ListActiveRooms(ctx context.Context) ([]RoomSummary, error) {
	var rooms []models.Room
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Where("is_active = ?", true).
		Order("created_at DESC").Order("id DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, translate("list rooms", err)
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, RoomSummary{Room: r, CreatorUsername: r.Creator.Username})
	}
	return summaries, nil
}

// DeactivateRoom clears is_active. The row and its history are kept.
func (s *Store) DeactivateRoom(ctx context.Context, roomID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("is_active", false)
	if res.Error != nil {
		return translate("deactivate room", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
