package controllers

import (
	"net/http"
	"strings"

	"github.com/CUknot/meetroom/meeting"
	"github.com/CUknot/meetroom/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateRoomInput struct {
	Name string `json:"name" binding:"required,max=255" example:"Daily standup"`
}

type JoinResponse struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
}

type MuteInput struct {
	TargetUserID uint  `json:"targetUserId" binding:"required" example:"2"`
	IsMuted      *bool `json:"isMuted" binding:"required" example:"true"`
}

// ParticipantDetail is a participant row with its room's name and owner.
type ParticipantDetail struct {
	meeting.ParticipantView
	RoomName      string `json:"room_name"`
	RoomCreatorID uint   `json:"room_creator_id"`
}

// GetRooms godoc
// @Summary List active rooms
// @Description Active rooms, newest first, with the creator's username
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.RoomSummary
// @Router /api/rooms [get]
func (a *API) GetRooms(c *gin.Context) {
	rooms, err := a.store.ListActiveRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// CreateRoom godoc
// @Summary Create a room
// @Description The caller becomes the room's admin when first joining it
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room body CreateRoomInput true "Room"
// @Success 201 {object} models.Room
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /api/rooms [post]
func (a *API) CreateRoom(c *gin.Context) {
	var input CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room name is required"})
		return
	}

	room := models.Room{
		Name:      name,
		SessionID: "room-" + uuid.NewString(),
		CreatedBy: currentIdentity(c).UserID,
	}
	if err := a.store.CreateRoom(c.Request.Context(), &room); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetParticipants godoc
// @Summary List a room's participants
// @Description Every participant row of the room ordered by join time
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Room session id"
// @Success 200 {array} ParticipantDetail
// @Failure 404 {object} map[string]string "Room not found"
// @Router /api/rooms/{sessionId}/participants [get]
func (a *API) GetParticipants(c *gin.Context) {
	ctx := c.Request.Context()
	room, err := a.svc.Auth.Room(ctx, c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := a.svc.Presence.Snapshot(ctx, room.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]ParticipantDetail, 0, len(views))
	for _, v := range views {
		out = append(out, ParticipantDetail{ParticipantView: v, RoomName: room.Name, RoomCreatorID: room.CreatedBy})
	}
	c.JSON(http.StatusOK, out)
}

// JoinRoom godoc
// @Summary Join a room without a live connection
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Room session id"
// @Success 200 {object} JoinResponse
// @Failure 404 {object} map[string]string "Room not found"
// @Router /api/rooms/{sessionId}/join [post]
func (a *API) JoinRoom(c *gin.Context) {
	p, err := a.svc.Membership.JoinBySession(c.Request.Context(), c.Param("sessionId"), currentIdentity(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, JoinResponse{Success: true, Role: p.Role})
}

// MuteParticipant godoc
// @Summary Mute or unmute a participant
// @Description Admin only. Connected members of the room are notified.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Room session id"
// @Param mute body MuteInput true "Mute command"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Invalid input or self-mute"
// @Failure 403 {object} map[string]string "Not the room admin"
// @Failure 404 {object} map[string]string "Room or participant not found"
// @Router /api/rooms/{sessionId}/mute [post]
func (a *API) MuteParticipant(c *gin.Context) {
	var input MuteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	_, err := a.svc.Moderation.SetMuteAs(c.Request.Context(), c.Param("sessionId"), currentIdentity(c), input.TargetUserID, *input.IsMuted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
