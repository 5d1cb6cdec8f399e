package models

import (
	"time"
)

// Room is a meeting space. SessionID is the only identifier shared with the
// media server and never changes after creation.
type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	SessionID string    `gorm:"size:255;not null;uniqueIndex" json:"session_id"`
	CreatedBy uint      `gorm:"not null;index" json:"created_by"`
	Creator   User      `gorm:"foreignKey:CreatedBy" json:"-"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

// Participant is the single persisted membership record of a user in a room.
type Participant struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	RoomID   uint      `gorm:"not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_room_user" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'participant'" json:"role"`
	IsMuted  bool      `gorm:"not null;default:false" json:"is_muted"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}

func (Participant) TableName() string {
	return "room_participants"
}

func (p *Participant) IsAdmin() bool {
	return p.Role == RoleAdmin
}
