package command

import (
	"context"
	"officebot/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResponder struct {
	command string
}

func (m *MockResponder) Respond(_ context.Context, _ time.Duration, _ *domain.Message) error {
	return nil
}

func (m *MockResponder) GetCommand() string {
	return m.command
}

func TestRegister(t *testing.T) {
	cr := &Registry{}

	err := cr.Register(Route{Pattern: "^stop$", Command: &MockResponder{command: "stop"}})
	require.NoError(t, err)
	assert.Len(t, cr.routes, 1)
}

func TestRegisterInvalidPattern(t *testing.T) {
	cr := &Registry{}

	err := cr.Register(Route{Pattern: "(unclosed", Command: &MockResponder{command: "broken"}})
	require.Error(t, err)
	assert.Empty(t, cr.routes)
}

func TestRegisterWithoutCommand(t *testing.T) {
	cr := &Registry{}

	err := cr.Register(Route{Pattern: "stop"})
	require.Error(t, err)
}

func TestMatch(t *testing.T) {
	cr := &Registry{}
	cr.MustRegister(Route{Pattern: `linode reboot (?P<label>[-\w]+)`, Mode: domain.RespondTo,
		Command: &MockResponder{command: "linode_reboot"}})
	cr.MustRegister(Route{Pattern: `play|play (?P<url>.*)`, Mode: domain.RespondTo,
		Command: &MockResponder{command: "play"}})
	cr.MustRegister(Route{Pattern: "deploy", Mode: domain.Hear, Command: &MockResponder{command: "deploy"}})
	cr.MustRegister(Route{Pattern: "pug", Mode: domain.Hear, Command: &MockResponder{command: "pug"}})

	tests := []struct {
		name     string
		message  *domain.Message
		wantOK   bool
		wantName string
		wantArgs map[string]string
	}{
		{
			name:     "respond route with capture",
			message:  &domain.Message{Text: "linode reboot web-1", Directed: true},
			wantOK:   true,
			wantName: "linode_reboot",
			wantArgs: map[string]string{"label": "web-1"},
		},
		{
			name:    "respond route needs the bot to be addressed",
			message: &domain.Message{Text: "linode reboot web-1"},
			wantOK:  false,
		},
		{
			name:    "respond route is anchored",
			message: &domain.Message{Text: "please linode reboot web-1 now", Directed: true},
			wantOK:  false,
		},
		{
			name:     "optional capture left out",
			message:  &domain.Message{Text: "PLAY", Directed: true},
			wantOK:   true,
			wantName: "play",
			wantArgs: map[string]string{},
		},
		{
			name:     "optional capture given",
			message:  &domain.Message{Text: "play http://example.org/a.mp3", Directed: true},
			wantOK:   true,
			wantName: "play",
			wantArgs: map[string]string{"url": "http://example.org/a.mp3"},
		},
		{
			name:     "hear route anywhere in text",
			message:  &domain.Message{Text: "who wants to Deploy today?"},
			wantOK:   true,
			wantName: "deploy",
			wantArgs: map[string]string{},
		},
		{
			name:     "first registered wins",
			message:  &domain.Message{Text: "deploy the pug"},
			wantOK:   true,
			wantName: "deploy",
			wantArgs: map[string]string{},
		},
		{
			name:    "nothing matches",
			message: &domain.Message{Text: "good morning", Directed: true},
			wantOK:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			route, args, ok := cr.Match(tc.message)

			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantName, route.Command.GetCommand())
				assert.Equal(t, tc.wantArgs, args)
			}
		})
	}
}

func TestListCommands(t *testing.T) {
	cr := &Registry{}
	cr.MustRegister(Route{Pattern: "foo", Command: &MockResponder{command: "/foo"}})
	cr.MustRegister(Route{Pattern: "bar", Command: &MockResponder{command: "/bar"}})

	list := cr.ListCommands()

	require.Len(t, list, 2)
	assert.Equal(t, "/foo", list[0].Command.GetCommand())
	assert.Equal(t, "/bar", list[1].Command.GetCommand())
}
