package repository

import (
	"context"
	"errors"
	"time"

	"github.com/CUknot/meetroom/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateMessageIfUnmuted reads the sender's membership row under a share lock
// and inserts the message only when the sender is not muted. Both happen in
// one transaction so a concurrent mute either precedes the read or waits for
// the insert to commit.
func (s *Store) CreateMessageIfUnmuted(ctx context.Context, roomID, userID uint, text string, at time.Time) (*models.Message, error) {
	var msg *models.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Participant
		err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Where("room_id = ? AND user_id = ?", roomID, userID).
			First(&p).Error
		if err != nil {
			return err
		}
		if p.IsMuted {
			return ErrMuted
		}

		m := models.Message{RoomID: roomID, UserID: userID, Text: text, CreatedAt: at}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		msg = &m
		return nil
	})
	if errors.Is(err, ErrMuted) {
		return nil, ErrMuted
	}
	if err != nil {
		return nil, translate("create message", err)
	}
	return msg, nil
}

// RecentMessages returns at most limit of the newest messages of a room,
// oldest first, with the sender preloaded.
func (s *Store) RecentMessages(ctx context.Context, roomID uint, limit int) ([]models.Message, error) {
	var rows []models.Message
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translate("recent messages", err)
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
