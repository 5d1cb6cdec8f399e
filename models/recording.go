package models

import (
	"time"
)

const (
	RecordingActive    = "recording"
	RecordingCompleted = "completed"
)

type Recording struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoomID      uint      `gorm:"not null;index" json:"room_id"`
	Room        Room      `gorm:"foreignKey:RoomID" json:"-"`
	RecordingID string    `gorm:"size:255;not null;index" json:"recording_id"`
	FilePath    string    `gorm:"size:1024" json:"file_path"`
	Duration    float64   `json:"duration"`
	Status      string    `gorm:"size:20;not null;default:'recording'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
