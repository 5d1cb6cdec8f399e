// Package fanout relays room events between service instances over Redis
// pub/sub so a room can span connections attached to different processes.
package fanout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/CUknot/meetroom/meeting"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DefaultChannel = "meetroom:events"

// Deliverer hands an event to the connections attached on this process.
type Deliverer interface {
	Deliver(ev meeting.Event)
}

// wireEvent keeps the payload undecoded; transports re-encode it verbatim.
type wireEvent struct {
	Room    string          `json:"room"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Exclude string          `json:"exclude,omitempty"`
}

// Redis is a meeting.Broadcaster backed by a single pub/sub channel. Every
// instance subscribes and delivers to its own connections.
type Redis struct {
	client  *redis.Client
	channel string
	local   Deliverer
	sub     *redis.PubSub
	done    chan struct{}
}

var _ meeting.Broadcaster = (*Redis)(nil)

// Dial parses a redis:// URL, pings the server and wraps the client.
func Dial(ctx context.Context, url string, local Deliverer) (*Redis, error) {
	if url == "" {
		return nil, errors.New("fanout: redis url is empty")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("fanout: parse url: %w", err)
	}
	c := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("fanout: ping: %w", err)
	}
	return New(c, DefaultChannel, local), nil
}

func New(client *redis.Client, channel string, local Deliverer) *Redis {
	return &Redis{client: client, channel: channel, local: local, done: make(chan struct{})}
}

// Start subscribes and waits for the subscription to be confirmed, then
// delivers incoming events until ctx ends or Close is called.
func (r *Redis) Start(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("fanout: subscribe %s: %w", r.channel, err)
	}
	r.sub = sub

	go r.loop(ctx, sub.Channel())
	log.Info().Str("module", "fanout").Str("channel", r.channel).Msg("subscribed to room events")
	return nil
}

func (r *Redis) loop(ctx context.Context, ch <-chan *redis.Message) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev wireEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Error().Str("module", "fanout").Err(err).Msg("dropping malformed event")
				continue
			}
			r.local.Deliver(meeting.Event{
				Room:    ev.Room,
				Type:    ev.Type,
				Payload: ev.Payload,
				Exclude: ev.Exclude,
			})
		}
	}
}

// Publish sends ev to every instance, this one included. When Redis is
// unreachable the event still reaches local connections and the error is
// returned.
func (r *Redis) Publish(ctx context.Context, ev meeting.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("fanout: encode %s: %w", ev.Type, err)
	}
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.local.Deliver(ev)
		return fmt.Errorf("fanout: publish %s: %w", ev.Type, err)
	}
	return nil
}

func (r *Redis) Close() error {
	var err error
	if r.sub != nil {
		err = r.sub.Close()
		<-r.done
	}
	return errors.Join(err, r.client.Close())
}
