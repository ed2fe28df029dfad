package matrix

import (
	"context"
	"errors"
	"fmt"
	"officebot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

type Config struct {
	Homeserver  string
	UserID      string
	AccessToken string
	// Rooms the bot joins and listens in.
	Rooms []string
}

const (
	backoffMin = 2 * time.Second
	backoffMax = 5 * time.Minute
)

type Client struct {
	*mautrix.Client
	config Config

	backoffMin time.Duration
	backoffMax time.Duration
}

// New keeps the sync position in store so a restart does not replay old commands.
func New(config Config, store port.KeyValueStore) (*Client, error) {
	client, err := mautrix.NewClient(config.Homeserver, id.UserID(config.UserID), config.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create matrix client: %w", err)
	}

	client.Store = newSyncStore(store)

	return &Client{Client: client, config: config, backoffMin: backoffMin, backoffMax: backoffMax}, nil
}

// Run joins the configured rooms and syncs until ctx is done, reconnecting with back-off.
// Events of the initial sync are history and never reach handler.
func (c *Client) Run(ctx context.Context, handler func(ctx context.Context, evt *event.Event)) error {
	syncer, ok := c.Syncer.(*mautrix.DefaultSyncer)
	if !ok {
		return errors.New("unexpected matrix syncer")
	}
	syncer.OnSync(c.Client.DontProcessOldEvents)
	syncer.OnEventType(event.EventMessage, handler)

	for _, room := range c.config.Rooms {
		if err := c.joinRoom(ctx, id.RoomID(room)); err != nil {
			return fmt.Errorf("failed to join room %s: %w", room, err)
		}
	}

	backoff := c.backoffMin
	for {
		err := c.SyncWithContext(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			return nil
		}

		log.Error().Err(err).Dur("backoff", backoff).Msg("matrix sync stopped, reconnecting")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}

		backoff = nextBackoff(backoff, c.backoffMax)
	}
}

func (c *Client) joinRoom(ctx context.Context, roomID id.RoomID) error {
	_, err := c.JoinRoomByID(ctx, roomID)
	if errors.Is(err, mautrix.MForbidden) {
		log.Warn().Str("room", roomID.String()).Msg("already a member or access denied, continuing")
		return nil
	}

	return err
}

func nextBackoff(current, limit time.Duration) time.Duration {
	return min(current*2, limit)
}
