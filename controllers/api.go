package controllers

import (
	"context"
	"time"

	"github.com/CUknot/meetroom/media"
	"github.com/CUknot/meetroom/meeting"
	"github.com/CUknot/meetroom/models"
	"github.com/CUknot/meetroom/repository"
	"github.com/gin-gonic/gin"
)

// messageHistoryLimit caps GET /rooms/:sessionId/messages.
const messageHistoryLimit = 100

// Store is what the REST handlers read and write directly.
type Store interface {
	Ping(ctx context.Context) error
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	ListActiveRooms(ctx context.Context) ([]repository.RoomSummary, error)
	RecentMessages(ctx context.Context, roomID uint, limit int) ([]models.Message, error)
	CreateRecording(ctx context.Context, rec *models.Recording) error
	CompleteRecording(ctx context.Context, recordingID string, duration float64, filePath string) error
	ListRecordings(ctx context.Context) ([]repository.RecordingSummary, error)
}

// MediaBridge is the media server surface used by the session and
// recording endpoints.
type MediaBridge interface {
	PublicURL() string
	CreateSession(ctx context.Context, sessionID string) error
	CreateToken(ctx context.Context, sessionID, username string) (string, error)
	ActiveConnections(ctx context.Context, sessionID string) (int, error)
	StartRecording(ctx context.Context, sessionID string, opts media.RecordingOptions) (*media.Recording, error)
	StopRecording(ctx context.Context, recordingID string) (*media.Recording, error)
}

type TokenIssuer interface {
	GenerateToken(userID uint, username string) (string, error)
}

// API holds the dependencies of every REST handler.
type API struct {
	store  Store
	svc    *meeting.Service
	media  MediaBridge
	tokens TokenIssuer
	now    func() time.Time
}

func NewAPI(store Store, svc *meeting.Service, bridge MediaBridge, tokens TokenIssuer) *API {
	return &API{store: store, svc: svc, media: bridge, tokens: tokens, now: time.Now}
}

// Routes mounts the public and the authenticated routes under /api.
func (a *API) Routes(router gin.IRouter, auth gin.HandlerFunc) {
	public := router.Group("/api")
	{
		public.GET("/health", a.Health)
		public.POST("/register", a.Register)
		public.POST("/login", a.Login)
	}

	api := router.Group("/api")
	api.Use(auth)
	{
		api.GET("/me", a.Me)

		api.GET("/rooms", a.GetRooms)
		api.POST("/rooms", a.CreateRoom)
		api.GET("/rooms/:sessionId/messages", a.GetMessages)
		api.GET("/rooms/:sessionId/participants", a.GetParticipants)
		api.POST("/rooms/:sessionId/join", a.JoinRoom)
		api.POST("/rooms/:sessionId/mute", a.MuteParticipant)

		api.POST("/session", a.CreateSession)

		api.POST("/recordings/start", a.StartRecording)
		api.POST("/recordings/stop", a.StopRecording)
		api.GET("/recordings", a.GetRecordings)
	}
}
