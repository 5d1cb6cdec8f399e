package models

import (
	"time"
)

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Text      string    `gorm:"column:message;type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
