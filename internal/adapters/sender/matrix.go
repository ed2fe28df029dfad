package sender

import (
	"context"
	"errors"
	"fmt"
	"html"
	"officebot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

type MatrixClient interface {
	SendMessageEvent(ctx context.Context, roomID id.RoomID, eventType event.Type, contentJSON any,
		extra ...mautrix.ReqSendEvent) (*mautrix.RespSendEvent, error)
}

const red = "#ff0000"

type Matrix struct {
	client       MatrixClient
	announceRoom id.RoomID
}

// NewMatrix sends replies without a target message to announceRoom.
func NewMatrix(client MatrixClient, announceRoom string) *Matrix {
	return &Matrix{client: client, announceRoom: id.RoomID(announceRoom)}
}

func (s *Matrix) Send(ctx context.Context, reply domain.Reply) error {
	roomID := s.announceRoom
	if reply.To != nil {
		roomID = id.RoomID(reply.To.ChatID)
	}
	if roomID == "" {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, errors.New("no announce room configured"))
	}

	_, err := s.client.SendMessageEvent(ctx, roomID, event.EventMessage, content(reply))
	if err != nil {
		log.Error().Err(err).Str("roomId", roomID.String()).Msg("failed to send message")
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// content builds the event for a reply. Replies that need no attention go out as notices.
func content(reply domain.Reply) *event.MessageEventContent {
	c := &event.MessageEventContent{MsgType: event.MsgText, Body: reply.Content}
	if !reply.Notify {
		c.MsgType = event.MsgNotice
	}

	formatted := ""
	if reply.HTML {
		formatted = reply.Content
		c.Body = reply.Text
		if c.Body == "" {
			c.Body = reply.Content
		}
	}

	if reply.Quote && reply.To != nil {
		c.RelatesTo = &event.RelatesTo{InReplyTo: &event.InReplyTo{EventID: id.EventID(reply.To.ID)}}
		c.Mentions = &event.Mentions{UserIDs: []id.UserID{id.UserID(reply.To.Sender.ID)}}
	}

	if reply.Color == domain.Red {
		if formatted == "" {
			formatted = html.EscapeString(reply.Content)
		}
		formatted = fmt.Sprintf(`<font data-mx-color="%s">%s</font>`, red, formatted)
	}

	if formatted != "" {
		c.Format = event.FormatHTML
		c.FormattedBody = formatted
	}

	return c
}
