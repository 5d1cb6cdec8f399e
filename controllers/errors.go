package controllers

import (
	"errors"
	"net/http"

	"github.com/CUknot/meetroom/media"
	"github.com/CUknot/meetroom/meeting"
	"github.com/CUknot/meetroom/middleware"
	"github.com/CUknot/meetroom/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps domain, store and media errors onto status codes.
func respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, meeting.ErrInvalidCredential):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, meeting.ErrForbidden), errors.Is(err, meeting.ErrBlocked):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, meeting.ErrSelfMute), errors.Is(err, meeting.ErrEmptyMessage):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, meeting.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, repository.ErrDuplicate):
		status, message = http.StatusConflict, "User with this username or email already exists"
	case errors.Is(err, media.ErrUnavailable):
		message = "Media server error"
	}

	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		log.Error().Str("module", "http").Err(err).
			Str("path", c.FullPath()).
			Uint("user", c.GetUint(middleware.UserIDKey)).
			Msg("request failed")
	}
	c.JSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func currentIdentity(c *gin.Context) meeting.Identity {
	return meeting.Identity{
		UserID:   c.GetUint(middleware.UserIDKey),
		Username: c.GetString(middleware.UsernameKey),
	}
}
