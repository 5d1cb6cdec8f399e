package controllers

import (
	"errors"
	"net/http"

	"github.com/CUknot/meetroom/media"
	"github.com/CUknot/meetroom/models"
	"github.com/CUknot/meetroom/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type StartRecordingInput struct {
	Session string `json:"session" binding:"required" example:"room-5b0c7f0e-1c1e-4d43-9a51-3c2a4f6b2f1d"`
}

type StopRecordingInput struct {
	RecordingID string `json:"recordingId" binding:"required" example:"room-5b0c7f0e~1"`
}

// StartRecording godoc
// @Summary Start recording a room
// @Description Requires a live media session with at least one connection
// @Tags recordings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recording body StartRecordingInput true "Room session id"
// @Success 200 {object} media.Recording
// @Failure 400 {object} map[string]string "Session inactive or empty"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Media server error"
// @Router /api/recordings/start [post]
func (a *API) StartRecording(c *gin.Context) {
	var input StartRecordingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	room, err := a.svc.Auth.Room(ctx, input.Session)
	if err != nil {
		respondError(c, err)
		return
	}

	n, err := a.media.ActiveConnections(ctx, room.SessionID)
	if errors.Is(err, media.ErrSessionNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session is not active"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session has no active participants"})
		return
	}

	rec, err := a.media.StartRecording(ctx, room.SessionID, media.DefaultRecordingOptions())
	if err != nil {
		respondError(c, err)
		return
	}

	if err := a.store.CreateRecording(ctx, &models.Recording{RoomID: room.ID, RecordingID: rec.ID}); err != nil {
		respondError(c, err)
		return
	}
	log.Info().Str("module", "recordings").Str("room", room.SessionID).Str("recording", rec.ID).Msg("recording started")
	c.JSON(http.StatusOK, rec)
}

// StopRecording godoc
// @Summary Stop a recording
// @Tags recordings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recording body StopRecordingInput true "Recording id"
// @Success 200 {object} media.Recording
// @Failure 500 {object} map[string]string "Media server error"
// @Router /api/recordings/stop [post]
func (a *API) StopRecording(c *gin.Context) {
	var input StopRecordingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	rec, err := a.media.StopRecording(ctx, input.RecordingID)
	if err != nil {
		respondError(c, err)
		return
	}

	err = a.store.CompleteRecording(ctx, input.RecordingID, rec.Duration, rec.URL)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn().Str("module", "recordings").Str("recording", input.RecordingID).Msg("stopped a recording this service never started")
	case err != nil:
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetRecordings godoc
// @Summary List recordings
// @Tags recordings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.RecordingSummary
// @Router /api/recordings [get]
func (a *API) GetRecordings(c *gin.Context) {
	recs, err := a.store.ListRecordings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}
