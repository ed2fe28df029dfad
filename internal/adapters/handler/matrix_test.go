package handler

import (
	"officebot/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/mock"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

func makeEvent(sender, room string, content *event.MessageEventContent) *event.Event {
	return &event.Event{
		ID:      id.EventID("$abc"),
		Sender:  id.UserID(sender),
		RoomID:  id.RoomID(room),
		Type:    event.EventMessage,
		Content: event.Content{Parsed: content},
	}
}

func TestMatrix_Handle(t *testing.T) {
	const room = "!office:example.org"

	tests := []struct {
		name    string
		evt     *event.Event
		wantMsg *domain.Message
	}{
		{
			name: "own message",
			evt: makeEvent("@officebot:example.org", room,
				&event.MessageEventContent{MsgType: event.MsgText, Body: "Silence please!"}),
		},
		{
			name: "foreign room",
			evt: makeEvent("@john:example.org", "!elsewhere:example.org",
				&event.MessageEventContent{MsgType: event.MsgText, Body: "pug"}),
		},
		{
			name: "notice",
			evt: makeEvent("@john:example.org", room,
				&event.MessageEventContent{MsgType: event.MsgNotice, Body: "pug"}),
		},
		{
			name: "chatter",
			evt: makeEvent("@john:example.org", room,
				&event.MessageEventContent{MsgType: event.MsgText, Body: "time to deploy"}),
			wantMsg: &domain.Message{ID: "$abc", ChatID: room,
				Sender: domain.Sender{ID: "@john:example.org", Nick: "john"}, Text: "time to deploy"},
		},
		{
			name: "addressed by name",
			evt: makeEvent("@john:example.org", room,
				&event.MessageEventContent{MsgType: event.MsgText, Body: "officebot: linode status"}),
			wantMsg: &domain.Message{ID: "$abc", ChatID: room,
				Sender: domain.Sender{ID: "@john:example.org", Nick: "john"}, Text: "linode status", Directed: true},
		},
		{
			name: "addressed by mention",
			evt: makeEvent("@john:example.org", room, &event.MessageEventContent{MsgType: event.MsgText,
				Body: "@officebot:example.org: stop", Mentions: &event.Mentions{
					UserIDs: []id.UserID{"@officebot:example.org"}}}),
			wantMsg: &domain.Message{ID: "$abc", ChatID: room,
				Sender: domain.Sender{ID: "@john:example.org", Nick: "john"}, Text: "stop", Directed: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := new(MockDispatcher)
			if tc.wantMsg != nil {
				d.On("Dispatch", mock.Anything, tc.wantMsg).Return(true).Once()
			}

			NewMatrix(d, "@officebot:example.org", "officebot", []string{room}).Handle(t.Context(), tc.evt)

			d.AssertExpectations(t)
			if tc.wantMsg == nil {
				d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
			}
		})
	}
}
