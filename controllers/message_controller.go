package controllers

import (
	"net/http"

	"github.com/CUknot/meetroom/meeting"
	"github.com/gin-gonic/gin"
)

// GetMessages godoc
// @Summary Get a room's chat history
// @Description Up to the 100 most recent messages, oldest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Room session id"
// @Success 200 {array} meeting.MessageView
// @Failure 404 {object} map[string]string "Room not found"
// @Router /api/rooms/{sessionId}/messages [get]
func (a *API) GetMessages(c *gin.Context) {
	ctx := c.Request.Context()
	room, err := a.svc.Auth.Room(ctx, c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	messages, err := a.store.RecentMessages(ctx, room.ID, messageHistoryLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]meeting.MessageView, 0, len(messages))
	for _, m := range messages {
		out = append(out, meeting.NewMessageView(m, m.User.Username))
	}
	c.JSON(http.StatusOK, out)
}
