// Package media talks to the OpenVidu REST API. It creates sessions, mints
// connection tokens and drives recordings. Nothing here touches room or
// participant state.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUnavailable wraps every transport failure and unexpected status.
	ErrUnavailable     = errors.New("media server unavailable")
	ErrSessionNotFound = errors.New("media session not found")
)

// basicUser is the fixed user name OpenVidu expects in basic auth.
const basicUser = "OPENVIDUAPP"

// APIError is a non-success response from the media server.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("media: %s: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return ErrUnavailable }

type Client struct {
	baseURL   string
	publicURL string
	secret    string
	http      *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL, publicURL, secret string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		publicURL: publicURL,
		secret:    secret,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.publicURL == "" {
		c.publicURL = c.baseURL
	}
	return c
}

// PublicURL is the address browsers use to reach the media server.
func (c *Client) PublicURL() string { return c.publicURL }

// CreateSession makes sure a media session with the given id exists. A
// conflict means it already does and counts as success.
func (c *Client) CreateSession(ctx context.Context, sessionID string) error {
	body := map[string]string{"customSessionId": sessionID}
	_, _, err := c.do(ctx, "create session", http.MethodPost, "/openvidu/api/sessions", body, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		log.Debug().Str("module", "media").Str("session", sessionID).Msg("session already exists")
		return nil
	}
	return err
}

// CreateToken mints a connection token for the session. username is embedded
// as connection data so other peers can label the stream.
func (c *Client) CreateToken(ctx context.Context, sessionID, username string) (string, error) {
	data, err := json.Marshal(map[string]string{"username": username})
	if err != nil {
		return "", err
	}
	body := map[string]string{"session": sessionID, "data": string(data)}

	var out struct {
		Token string `json:"token"`
	}
	if _, _, err := c.do(ctx, "create token", http.MethodPost, "/openvidu/api/tokens", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("%w: create token: empty token in response", ErrUnavailable)
	}
	return out.Token, nil
}

type Session struct {
	ID          string `json:"sessionId"`
	Recording   bool   `json:"recording"`
	Connections struct {
		NumberOfElements int               `json:"numberOfElements"`
		Content          []json.RawMessage `json:"content"`
	} `json:"connections"`
}

// Session fetches a live session. A missing session yields ErrSessionNotFound.
func (c *Client) Session(ctx context.Context, sessionID string) (*Session, error) {
	var out Session
	_, _, err := c.do(ctx, "get session", http.MethodGet, "/openvidu/api/sessions/"+url.PathEscape(sessionID), nil, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &out, nil
}

// ActiveConnections counts the peers currently connected to a session.
func (c *Client) ActiveConnections(ctx context.Context, sessionID string) (int, error) {
	s, err := c.Session(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	n := s.Connections.NumberOfElements
	if len(s.Connections.Content) > n {
		n = len(s.Connections.Content)
	}
	return n, nil
}
