package door

import (
	"context"
	"fmt"
	"net/http"
	"officebot/internal/adapters/web"

	"github.com/rs/zerolog/log"
)

// Webhook opens the door lock by calling its configured URL.
type Webhook struct {
	client *http.Client
	url    string
}

func NewWebhook(client *http.Client, url string) *Webhook {
	return &Webhook{client: client, url: url}
}

func (w *Webhook) Open(ctx context.Context) error {
	if _, err := web.Get(ctx, w.client, w.url, nil); err != nil {
		return fmt.Errorf("door webhook failed: %w", err)
	}

	log.Debug().Msg("door webhook called")

	return nil
}
