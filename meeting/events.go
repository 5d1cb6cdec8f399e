package meeting

import (
	"time"

	"github.com/CUknot/meetroom/models"
)

// Outbound real-time event names.
const (
	EventParticipantsList  = "participants-list"
	EventParticipantJoined = "participant-joined"
	EventParticipantLeft   = "participant-left"
	EventParticipantMuted  = "participant-muted"
	EventNewMessage        = "new-message"
	EventMessageBlocked    = "message-blocked"
	EventError             = "error"
)

type ParticipantView struct {
	ID       uint      `json:"id"`
	RoomID   uint      `json:"room_id"`
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsMuted  bool      `json:"is_muted"`
	JoinedAt time.Time `json:"joined_at"`
}

func NewParticipantView(p models.Participant) ParticipantView {
	return ParticipantView{
		ID:       p.ID,
		RoomID:   p.RoomID,
		UserID:   p.UserID,
		Username: p.User.Username,
		Email:    p.User.Email,
		Role:     p.Role,
		IsMuted:  p.IsMuted,
		JoinedAt: p.JoinedAt,
	}
}

type MessageView struct {
	ID        uint      `json:"id"`
	RoomID    uint      `json:"room_id"`
	UserID    uint      `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}

func NewMessageView(m models.Message, username string) MessageView {
	return MessageView{
		ID:        m.ID,
		RoomID:    m.RoomID,
		UserID:    m.UserID,
		Message:   m.Text,
		CreatedAt: m.CreatedAt,
		Username:  username,
	}
}

type ParticipantJoined struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ParticipantLeft struct {
	UserID uint `json:"userId"`
}

type ParticipantMuted struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	IsMuted  bool   `json:"isMuted"`
	MutedBy  string `json:"mutedBy"`
}

type MessageBlocked struct {
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
