package repository

import (
	"context"
	"time"

	"github.com/CUknot/meetroom/models"
	"gorm.io/gorm/clause"
)

// UpsertParticipant inserts the (room, user) membership row with the given
// role, or refreshes joined_at when the row already exists. Role and mute
// state of an existing row are never touched. The stored row is returned.
func (s *Store) UpsertParticipant(ctx context.Context, roomID, userID uint, role string, at time.Time) (*models.Participant, error) {
	db := s.db.WithContext(ctx)

	row := models.Participant{
		RoomID:   roomID,
		UserID:   userID,
		Role:     role,
		IsMuted:  false,
		JoinedAt: at,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"joined_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, translate("upsert participant", err)
	}

	return s.Participant(ctx, roomID, userID)
}

func (s *Store) Participant(ctx context.Context, roomID, userID uint) (*models.Participant, error) {
	var p models.Participant
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&p).Error
	if err != nil {
		return nil, translate("participant", err)
	}
	return &p, nil
}

// SetMuted is a single conditional update. A target that never joined the
// room yields ErrNotFound.
func (s *Store) SetMuted(ctx context.Context, roomID, userID uint, muted bool) error {
	res := s.db.WithContext(ctx).Model(&models.Participant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("is_muted", muted)
	if res.Error != nil {
		return translate("set muted", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListParticipants returns every membership row of a room ordered by join time.
func (s *Store) ListParticipants(ctx context.Context, roomID uint) ([]models.Participant, error) {
	var rows []models.Participant
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("joined_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("list participants", err)
	}
	return rows, nil
}
