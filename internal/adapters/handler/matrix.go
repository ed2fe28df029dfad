package handler

import (
	"context"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

// Matrix turns room messages into messages for the dispatcher.
type Matrix struct {
	dispatcher port.Dispatcher
	userID     id.UserID
	name       string
	rooms      []string
}

// NewMatrix listens in rooms only. A message is addressed to the bot when it mentions userID or
// starts with name.
func NewMatrix(dispatcher port.Dispatcher, userID, name string, rooms []string) *Matrix {
	return &Matrix{dispatcher: dispatcher, userID: id.UserID(userID), name: name, rooms: rooms}
}

func (h *Matrix) Handle(ctx context.Context, evt *event.Event) {
	if evt.Sender == h.userID {
		return
	}

	if !slices.Contains(h.rooms, evt.RoomID.String()) {
		return
	}

	content := evt.Content.AsMessage()
	if content == nil || content.MsgType != event.MsgText || content.Body == "" {
		return
	}

	message := h.toMessage(evt, content)

	log.Debug().
		Str("messageId", message.ID).
		Str("chatId", message.ChatID).
		Bool("directed", message.Directed).
		Msg("received message")

	h.dispatcher.Dispatch(ctx, message)
}

func (h *Matrix) toMessage(evt *event.Event, content *event.MessageEventContent) *domain.Message {
	text, directed := domain.StripMention(content.Body, h.name)
	if !directed {
		// clients insert the bot's localpart or full id as a pill
		text, directed = domain.StripMention(content.Body, h.userID.Localpart())
	}
	if !directed && content.Mentions != nil && slices.Contains(content.Mentions.UserIDs, h.userID) {
		text, directed = strings.TrimSpace(strings.TrimPrefix(content.Body, h.userID.String()+":")), true
	}

	return &domain.Message{
		ID:     evt.ID.String(),
		ChatID: evt.RoomID.String(),
		Sender: domain.Sender{
			ID:   evt.Sender.String(),
			Nick: evt.Sender.Localpart(),
		},
		Text:     text,
		Directed: directed,
	}
}
