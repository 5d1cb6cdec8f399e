package media

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type RecordingOptions struct {
	OutputMode      string `json:"outputMode"`
	HasAudio        bool   `json:"hasAudio"`
	HasVideo        bool   `json:"hasVideo"`
	Resolution      string `json:"resolution,omitempty"`
	FrameRate       int    `json:"frameRate,omitempty"`
	RecordingLayout string `json:"recordingLayout,omitempty"`
}

// DefaultRecordingOptions is a single composed 1080p stream.
func DefaultRecordingOptions() RecordingOptions {
	return RecordingOptions{
		OutputMode:      "COMPOSED",
		HasAudio:        true,
		HasVideo:        true,
		Resolution:      "1920x1080",
		FrameRate:       25,
		RecordingLayout: "BEST_FIT",
	}
}

type Recording struct {
	ID         string  `json:"id"`
	SessionID  string  `json:"sessionId"`
	Name       string  `json:"name"`
	OutputMode string  `json:"outputMode"`
	Status     string  `json:"status"`
	CreatedAt  int64   `json:"createdAt"`
	Size       int64   `json:"size"`
	Duration   float64 `json:"duration"`
	URL        string  `json:"url"`
}

// StartRecording starts a recording of the session. A session that is already
// being recorded is reported as an *APIError with status 409.
func (c *Client) StartRecording(ctx context.Context, sessionID string, opts RecordingOptions) (*Recording, error) {
	body := struct {
		Session string `json:"session"`
		RecordingOptions
	}{Session: sessionID, RecordingOptions: opts}

	var out Recording
	if _, _, err := c.do(ctx, "start recording", http.MethodPost, "/openvidu/api/recordings/start", body, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: start recording: empty recording id in response", ErrUnavailable)
	}
	return &out, nil
}

func (c *Client) StopRecording(ctx context.Context, recordingID string) (*Recording, error) {
	var out Recording
	path := "/openvidu/api/recordings/stop/" + url.PathEscape(recordingID)
	if _, _, err := c.do(ctx, "stop recording", http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
