package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"sync"

	"github.com/rs/zerolog/log"
)

// VMCacheSlot is the store key the last instance listing lives under.
const VMCacheSlot = "linode_list"

// VMCache keeps the label → instance mapping of the last status listing in a key/value store.
// The mapping is written as a single value, so a reader sees either the old or the new listing.
type VMCache struct {
	store port.KeyValueStore
	mutex sync.RWMutex
}

func NewVMCache(store port.KeyValueStore) *VMCache {
	return &VMCache{store: store}
}

func (c *VMCache) Replace(ctx context.Context, vms map[string]domain.VMRecord) error {
	if vms == nil {
		vms = map[string]domain.VMRecord{}
	}

	data, err := json.Marshal(vms)
	if err != nil {
		return fmt.Errorf("error encoding vm cache: %w", err)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.store.Put(ctx, VMCacheSlot, data); err != nil {
		return fmt.Errorf("error saving vm cache: %w", err)
	}

	log.Debug().Int("vms", len(vms)).Msg("replaced vm cache")

	return nil
}

func (c *VMCache) Lookup(ctx context.Context, label string) (domain.VMRecord, bool, error) {
	vms, err := c.load(ctx)
	if err != nil {
		return domain.VMRecord{}, false, err
	}

	vm, ok := vms[label]

	return vm, ok, nil
}

func (c *VMCache) load(ctx context.Context) (map[string]domain.VMRecord, error) {
	c.mutex.RLock()
	data, err := c.store.Get(ctx, VMCacheSlot)
	c.mutex.RUnlock()

	if errors.Is(err, domain.ErrNotFound) {
		return map[string]domain.VMRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading vm cache: %w", err)
	}

	vms := make(map[string]domain.VMRecord)
	if err := json.Unmarshal(data, &vms); err != nil {
		return nil, fmt.Errorf("error decoding vm cache: %w", err)
	}

	return vms, nil
}
