package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const maxErrorBody = 512

// do sends one request. Only 2xx is success; out, when non-nil, receives the
// decoded body. Anything else comes back as an *APIError.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (int, []byte, error) {
	var reader io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("media: %s: encode: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("media: %s: %w", op, err)
	}
	req.SetBasicAuth(basicUser, c.secret)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: %s: read body: %w", ErrUnavailable, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return resp.StatusCode, body, &APIError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, body, fmt.Errorf("%w: %s: decode: %w", ErrUnavailable, op, err)
		}
	}
	return resp.StatusCode, body, nil
}

// Ping reports whether the media server answers at all. A 401 still proves
// the server is up.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.do(ctx, "ping", http.MethodGet, "/openvidu/api/config", nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return nil
	}
	return err
}

// WaitReady pings up to attempts times, sleeping delay between tries.
func (c *Client) WaitReady(ctx context.Context, attempts int, delay time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = c.Ping(ctx); err == nil {
			log.Info().Str("module", "media").Str("url", c.baseURL).Int("attempt", i).Msg("media server reachable")
			return nil
		}
		log.Warn().Str("module", "media").Err(err).Int("attempt", i).Int("of", attempts).Msg("media server not ready")
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("media: not ready after %d attempts: %w", attempts, err)
}
