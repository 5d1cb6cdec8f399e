package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/CUknot/meetroom/media"
	"github.com/CUknot/meetroom/meeting"
	"github.com/CUknot/meetroom/middleware"
	"github.com/CUknot/meetroom/models"
	"github.com/CUknot/meetroom/repository"
	"github.com/CUknot/meetroom/repository/storetest"
	"github.com/CUknot/meetroom/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedia struct {
	mu          sync.Mutex
	sessions    []string
	connections int
	missing     bool
	fail        error
	stopped     []string
}

func (m *fakeMedia) PublicURL() string { return "https://media.example.com" }

func (m *fakeMedia) CreateSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sessions = append(m.sessions, id)
	return nil
}

func (m *fakeMedia) CreateToken(_ context.Context, id, username string) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	return fmt.Sprintf("tok:%s:%s", id, username), nil
}

func (m *fakeMedia) ActiveConnections(context.Context, string) (int, error) {
	if m.missing {
		return 0, media.ErrSessionNotFound
	}
	return m.connections, m.fail
}

func (m *fakeMedia) StartRecording(_ context.Context, id string, _ media.RecordingOptions) (*media.Recording, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return &media.Recording{ID: id + "~1", SessionID: id, Status: "started"}, nil
}

func (m *fakeMedia) StopRecording(_ context.Context, id string) (*media.Recording, error) {
	m.mu.Lock()
	m.stopped = append(m.stopped, id)
	m.mu.Unlock()
	return &media.Recording{ID: id, Status: "stopped", Duration: 61.5, URL: "https://media/" + id + ".mp4"}, nil
}

type sink struct {
	id     string
	mu     sync.Mutex
	events []string
}

func (s *sink) ID() string { return s.id }
func (s *sink) Send(event string, _ any) {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}

type harness struct {
	router *gin.Engine
	store  *repository.Store
	svc    *meeting.Service
	media  *fakeMedia
	tokens *utils.TokenService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, _ := storetest.Open(t)
	tokens := utils.NewTokenService("api-secret", time.Hour)
	svc := meeting.NewService(store, tokens, meeting.NewConnIndex(), nil)
	fm := &fakeMedia{connections: 1}

	r := gin.New()
	NewAPI(store, svc, fm, tokens).Routes(r, middleware.JWTAuth(tokens))
	return &harness{router: r, store: store, svc: svc, media: fm, tokens: tokens}
}

func (h *harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) user(t *testing.T, name string) (*models.User, string) {
	t.Helper()
	u := storetest.User(t, h.store, name)
	tok, err := h.tokens.GenerateToken(u.ID, u.Username)
	require.NoError(t, err)
	return u, tok
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRegisterLoginMe(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/api/register", "", RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "secret123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode[AuthResponse](t, w)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.NotEmpty(t, reg.Token)

	w = h.do(t, http.MethodPost, "/api/register", "", RegisterInput{Username: "alice", Email: "x@example.com", Password: "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.do(t, http.MethodPost, "/api/login", "", LoginInput{Email: "alice@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = h.do(t, http.MethodPost, "/api/login", "", LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, http.MethodPost, "/api/login", "", LoginInput{Email: "alice@example.com", Password: "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[AuthResponse](t, w)

	w = h.do(t, http.MethodGet, "/api/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, UserResponse{ID: reg.User.ID, Username: "alice", Email: "alice@example.com"}, decode[UserResponse](t, w))

	w = h.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "a", "email": "not-an-email", "password": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAndListRooms(t *testing.T) {
	h := newHarness(t)
	alice, tok := h.user(t, "alice")

	w := h.do(t, http.MethodPost, "/api/rooms", tok, CreateRoomInput{Name: "Standup"})
	require.Equal(t, http.StatusCreated, w.Code)
	room := decode[models.Room](t, w)
	assert.Regexp(t, `^room-[0-9a-f-]{36}$`, room.SessionID)
	assert.Equal(t, alice.ID, room.CreatedBy)
	assert.True(t, room.IsActive)

	w = h.do(t, http.MethodPost, "/api/rooms", tok, CreateRoomInput{Name: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodGet, "/api/rooms", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rooms := decode[[]repository.RoomSummary](t, w)
	require.Len(t, rooms, 1)
	assert.Equal(t, "alice", rooms[0].CreatorUsername)
}

func TestSessionToken(t *testing.T) {
	h := newHarness(t)
	alice, tok := h.user(t, "alice")
	room := storetest.Room(t, h.store, alice, "room-s")

	w := h.do(t, http.MethodPost, "/api/session", tok, SessionInput{SessionID: room.SessionID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[SessionResponse](t, w)
	assert.Equal(t, "tok:room-s:alice", resp.Token)
	assert.Equal(t, "https://media.example.com", resp.OpenViduURL)
	assert.Equal(t, room.ID, resp.Room.ID)

	w = h.do(t, http.MethodPost, "/api/session", tok, SessionInput{SessionID: "room-missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	h.media.fail = fmt.Errorf("%w: connection refused", media.ErrUnavailable)
	w = h.do(t, http.MethodPost, "/api/session", tok, SessionInput{SessionID: room.SessionID})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Bridge failures never touch membership.
	rows, err := h.store.ListParticipants(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRecordingFlow(t *testing.T) {
	h := newHarness(t)
	alice, tok := h.user(t, "alice")
	room := storetest.Room(t, h.store, alice, "room-r")

	h.media.connections = 0
	w := h.do(t, http.MethodPost, "/api/recordings/start", tok, StartRecordingInput{Session: room.SessionID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h.media.missing = true
	w = h.do(t, http.MethodPost, "/api/recordings/start", tok, StartRecordingInput{Session: room.SessionID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPost, "/api/recordings/start", tok, StartRecordingInput{Session: "room-missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	h.media.missing = false
	h.media.connections = 2
	w = h.do(t, http.MethodPost, "/api/recordings/start", tok, StartRecordingInput{Session: room.SessionID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec := decode[media.Recording](t, w)
	assert.Equal(t, "room-r~1", rec.ID)

	w = h.do(t, http.MethodPost, "/api/recordings/stop", tok, StopRecordingInput{RecordingID: rec.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodGet, "/api/recordings", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	recs := decode[[]repository.RecordingSummary](t, w)
	require.Len(t, recs, 1)
	assert.Equal(t, models.RecordingCompleted, recs[0].Status)
	assert.Equal(t, 61.5, recs[0].Duration)
	assert.Equal(t, room.Name, recs[0].RoomName)
}

func TestJoinMuteAndHistory(t *testing.T) {
	h := newHarness(t)
	alice, aliceTok := h.user(t, "alice")
	bob, bobTok := h.user(t, "bob")
	room := storetest.Room(t, h.store, alice, "room-j")
	path := "/api/rooms/" + room.SessionID

	w := h.do(t, http.MethodPost, path+"/join", aliceTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, JoinResponse{Success: true, Role: models.RoleAdmin}, decode[JoinResponse](t, w))

	w = h.do(t, http.MethodPost, path+"/join", bobTok, nil)
	assert.Equal(t, JoinResponse{Success: true, Role: models.RoleParticipant}, decode[JoinResponse](t, w))

	w = h.do(t, http.MethodPost, "/api/rooms/room-nope/join", bobTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A live connection of bob's should hear the REST mute.
	live := &sink{id: "bob-live"}
	_, err := h.svc.Membership.Join(context.Background(), room.SessionID, bobTok, live)
	require.NoError(t, err)

	muted := true
	w = h.do(t, http.MethodPost, path+"/mute", bobTok, MuteInput{TargetUserID: alice.ID, IsMuted: &muted})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(t, http.MethodPost, path+"/mute", aliceTok, MuteInput{TargetUserID: alice.ID, IsMuted: &muted})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPost, path+"/mute", aliceTok, map[string]any{"targetUserId": bob.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code, "isMuted is required")

	w = h.do(t, http.MethodPost, path+"/mute", aliceTok, MuteInput{TargetUserID: bob.ID, IsMuted: &muted})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, live.events, meeting.EventParticipantMuted)

	w = h.do(t, http.MethodGet, path+"/participants", aliceTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	parts := decode[[]ParticipantDetail](t, w)
	require.Len(t, parts, 2)
	assert.Equal(t, "alice", parts[0].Username)
	assert.True(t, parts[1].IsMuted)
	assert.Equal(t, room.Name, parts[1].RoomName)
	assert.Equal(t, alice.ID, parts[1].RoomCreatorID)

	_, err = h.svc.Relay.Send(context.Background(), room.SessionID, aliceTok, "first")
	require.NoError(t, err)
	_, err = h.svc.Relay.Send(context.Background(), room.SessionID, aliceTok, "second")
	require.NoError(t, err)

	w = h.do(t, http.MethodGet, path+"/messages", bobTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	msgs := decode[[]meeting.MessageView](t, w)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Message)
	assert.Equal(t, "second", msgs[1].Message)
	assert.Equal(t, "alice", msgs[1].Username)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestStartRecordingConflictStoresNothing(t *testing.T) {
	h := newHarness(t)
	alice, tok := h.user(t, "alice")
	room := storetest.Room(t, h.store, alice, "room-busy")

	ov := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/openvidu/api/sessions/" + room.SessionID:
			_, _ = w.Write([]byte(`{"sessionId":"room-busy","recording":true,"connections":{"numberOfElements":1,"content":[{}]}}`))
		default:
			http.Error(w, `{"message":"session is already being recorded"}`, http.StatusConflict)
		}
	}))
	defer ov.Close()

	r := gin.New()
	NewAPI(h.store, h.svc, media.New(ov.URL, "", "secret"), h.tokens).Routes(r, middleware.JWTAuth(h.tokens))
	h.router = r

	w := h.do(t, http.MethodPost, "/api/recordings/start", tok, StartRecordingInput{Session: room.SessionID})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Media server error", decode[map[string]string](t, w)["error"])

	recs, err := h.store.ListRecordings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}
