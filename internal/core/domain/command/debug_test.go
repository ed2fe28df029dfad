package command

import (
	"context"
	"officebot/internal/core/domain"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, reply domain.Reply) error {
	return m.Called(ctx, reply).Error(0)
}

func TestDebug_Respond_SendsDebugInfo(t *testing.T) {
	mockSender := new(MockSender)
	debugCmd := NewDebug(mockSender, "debug")

	message := &domain.Message{ID: "123", ChatID: "456"}

	mockSender.
		On(
			"Send",
			mock.Anything,
			mock.MatchedBy(func(reply domain.Reply) bool {
				return reply.To == message &&
					strings.Contains(reply.Content, "allocated mem:") &&
					strings.Contains(reply.Content, "goroutines:") &&
					strings.Contains(reply.Content, "heap:") &&
					strings.Contains(reply.Content, "stack:") &&
					strings.Contains(reply.Content, "uptime:") &&
					strings.Contains(reply.Content, "compiled with")
			}),
		).
		Return(nil)

	err := debugCmd.Respond(t.Context(), time.Second, message)
	require.NoError(t, err)
	mockSender.AssertExpectations(t)
}
