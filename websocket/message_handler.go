package websocket

import (
	"encoding/json"
	"errors"

	"github.com/CUknot/meetroom/meeting"
	"github.com/rs/zerolog/log"
)

// Inbound event names.
const (
	EventJoinRoom        = "join-room"
	EventLeaveRoom       = "leave-room"
	EventSendMessage     = "send-message"
	EventMuteParticipant = "mute-participant"
)

type inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type JoinRoomPayload struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}

type SendMessagePayload struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
	Token     string `json:"token"`
}

type MutePayload struct {
	SessionID    string `json:"sessionId"`
	TargetUserID uint   `json:"targetUserId"`
	IsMuted      bool   `json:"isMuted"`
	Token        string `json:"token"`
}

// dispatch processes one inbound frame. Failures are reported to the sender
// only; the connection stays open.
func (h *Hub) dispatch(client *Client, raw []byte) {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		sendErrorToClient(client, "malformed message")
		return
	}

	ctx, cancel := h.eventContext()
	defer cancel()

	switch msg.Type {
	case EventJoinRoom:
		var p JoinRoomPayload
		if !decode(client, msg, &p) {
			return
		}
		if _, err := h.svc.Membership.Join(ctx, p.SessionID, p.Token, client); err != nil {
			reportFailure(client, msg.Type, err)
		}
	case EventLeaveRoom:
		h.svc.Membership.Leave(ctx, client)
	case EventSendMessage:
		var p SendMessagePayload
		if !decode(client, msg, &p) {
			return
		}
		if _, err := h.svc.Relay.Send(ctx, p.SessionID, p.Token, p.Message); err != nil {
			reportFailure(client, msg.Type, err)
		}
	case EventMuteParticipant:
		var p MutePayload
		if !decode(client, msg, &p) {
			return
		}
		if _, err := h.svc.Moderation.SetMute(ctx, p.SessionID, p.Token, p.TargetUserID, p.IsMuted); err != nil {
			reportFailure(client, msg.Type, err)
		}
	default:
		sendErrorToClient(client, "unknown event type: "+msg.Type)
	}
}

func decode(client *Client, msg inbound, dst any) bool {
	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		sendErrorToClient(client, "invalid payload for "+msg.Type)
		return false
	}
	return true
}

// reportFailure turns a service error into the event the sender expects.
func reportFailure(client *Client, event string, err error) {
	if errors.Is(err, meeting.ErrBlocked) {
		client.Send(meeting.EventMessageBlocked, meeting.MessageBlocked{Reason: err.Error()})
		return
	}
	if errors.Is(err, meeting.ErrInfrastructure) {
		log.Error().Str("module", "websocket").Str("conn", client.id).Str("event", event).Err(err).Msg("event failed")
		sendErrorToClient(client, "internal server error")
		return
	}
	log.Debug().Str("module", "websocket").Str("conn", client.id).Str("event", event).Err(err).Msg("event rejected")
	sendErrorToClient(client, err.Error())
}

func sendErrorToClient(client *Client, message string) {
	client.Send(meeting.EventError, meeting.ErrorPayload{Message: message})
}
