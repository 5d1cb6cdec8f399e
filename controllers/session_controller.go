package controllers

import (
	"net/http"

	"github.com/CUknot/meetroom/models"
	"github.com/gin-gonic/gin"
)

type SessionInput struct {
	SessionID string `json:"sessionId" binding:"required" example:"room-5b0c7f0e-1c1e-4d43-9a51-3c2a4f6b2f1d"`
}

type SessionResponse struct {
	Token       string       `json:"token"`
	Room        *models.Room `json:"room"`
	OpenViduURL string       `json:"openviduUrl"`
}

// CreateSession godoc
// @Summary Get a media token for a room
// @Description Ensures the media session exists and mints a connection token for the caller
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body SessionInput true "Room session id"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Media server error"
// @Router /api/session [post]
func (a *API) CreateSession(c *gin.Context) {
	var input SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	room, err := a.svc.Auth.Room(ctx, input.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := a.media.CreateSession(ctx, room.SessionID); err != nil {
		respondError(c, err)
		return
	}
	token, err := a.media.CreateToken(ctx, room.SessionID, currentIdentity(c).Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Token: token, Room: room, OpenViduURL: a.media.PublicURL()})
}
