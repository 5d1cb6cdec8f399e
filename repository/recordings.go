package repository

import (
	"context"

	"github.com/CUknot/meetroom/models"
)

type RecordingSummary struct {
	models.Recording
	RoomName string `json:"room_name"`
}

func (s *Store) CreateRecording(ctx context.Context, rec *models.Recording) error {
	if rec.Status == "" {
		rec.Status = models.RecordingActive
	}
	return translate("create recording", s.db.WithContext(ctx).Create(rec).Error)
}

// CompleteRecording stores the final metadata reported by the media server.
func (s *Store) CompleteRecording(ctx context.Context, recordingID string, duration float64, filePath string) error {
	res := s.db.WithContext(ctx).Model(&models.Recording{}).
		Where("recording_id = ?", recordingID).
		Updates(map[string]any{
			"status":    models.RecordingCompleted,
			"duration":  duration,
			"file_path": filePath,
		})
	if res.Error != nil {
		return translate("complete recording", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListRecordings(ctx context.Context) ([]RecordingSummary, error) {
	var rows []models.Recording
	err := s.db.WithContext(ctx).
		Preload("Room").
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("list recordings", err)
	}

	out := make([]RecordingSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, RecordingSummary{Recording: r, RoomName: r.Room.Name})
	}
	return out, nil
}
