package matrix

import (
	"context"
	"errors"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"

	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/id"
)

var _ mautrix.SyncStore = (*syncStore)(nil)

// syncStore keeps the filter id and the next_batch token of the sync loop.
type syncStore struct {
	store port.KeyValueStore
}

func newSyncStore(store port.KeyValueStore) *syncStore {
	return &syncStore{store: store}
}

func (s *syncStore) SaveFilterID(ctx context.Context, userID id.UserID, filterID string) error {
	return s.store.Put(ctx, key(userID, "filter_id"), []byte(filterID))
}

func (s *syncStore) LoadFilterID(ctx context.Context, userID id.UserID) (string, error) {
	return s.load(ctx, key(userID, "filter_id"))
}

func (s *syncStore) SaveNextBatch(ctx context.Context, userID id.UserID, nextBatchToken string) error {
	return s.store.Put(ctx, key(userID, "next_batch"), []byte(nextBatchToken))
}

func (s *syncStore) LoadNextBatch(ctx context.Context, userID id.UserID) (string, error) {
	return s.load(ctx, key(userID, "next_batch"))
}

// load returns "" for a value that was never saved.
func (s *syncStore) load(ctx context.Context, key string) (string, error) {
	value, err := s.store.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return string(value), nil
}

func key(userID id.UserID, name string) string {
	return "matrix:" + userID.String() + ":" + name
}
