package port

import (
	"context"
	"officebot/internal/core/domain"
)

type KeyValueStore interface {
	// Get returns the value stored under key or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put creates or overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}

type VMCache interface {
	// Replace swaps the whole cached label → VM mapping.
	Replace(ctx context.Context, vms map[string]domain.VMRecord) error
	// Lookup finds a VM by label in the last cached listing.
	Lookup(ctx context.Context, label string) (domain.VMRecord, bool, error)
}
