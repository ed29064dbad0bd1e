package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mcclellann/branchdesk/pkg/logger"
	"github.com/mcclellann/branchdesk/pkg/store"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

type Identified interface {
	EntityID() string
}

// Collection owns the records of one slot. Every mutation writes the whole
// slot back to storage before the in-memory copy changes, so a failed save
// leaves the collection as it was.
type Collection[T Identified] struct {
	mu      sync.RWMutex
	storage store.Storage
	slot    string
	items   []T
}

func NewCollection[T Identified](s store.Storage, slot string) *Collection[T] {
	return &Collection[T]{storage: s, slot: slot}
}

func (c *Collection[T]) Slot() string { return c.slot }

// Load reads the slot. An empty slot starts from defaults.
func (c *Collection[T]) Load(ctx context.Context, defaults []T) error {
	data, err := c.storage.Load(ctx, c.slot)
	if errors.Is(err, store.ErrSlotNotFound) {
		c.mu.Lock()
		c.items = append([]T(nil), defaults...)
		c.mu.Unlock()
		logger.Debug("slot empty, using defaults", zap.String("slot", c.slot), zap.Int("count", len(defaults)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.slot, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to decode %s: %w", c.slot, err)
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	logger.Debug("slot loaded", zap.String("slot", c.slot), zap.Int("count", len(items)))
	return nil
}

// All returns a copy of every record in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], nil
	}
	var zero T
	return zero, fmt.Errorf("%s %s: %w", c.slot, id, ErrNotFound)
}

func (c *Collection[T]) Add(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, 0, len(c.items)+1)
	next = append(next, c.items...)
	next = append(next, item)
	return c.commit(ctx, next)
}

// Update replaces the record with the same id.
func (c *Collection[T]) Update(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(item.EntityID())
	if i < 0 {
		return fmt.Errorf("%s %s: %w", c.slot, item.EntityID(), ErrNotFound)
	}
	next := append([]T(nil), c.items...)
	next[i] = item
	return c.commit(ctx, next)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%s %s: %w", c.slot, id, ErrNotFound)
	}
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return c.commit(ctx, next)
}

// Modify applies fn to a copy of every record and saves the result if fn
// reported a change for at least one of them. It returns the number changed.
func (c *Collection[T]) Modify(ctx context.Context, fn func(*T) bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := append([]T(nil), c.items...)
	changed := 0
	for i := range next {
		if fn(&next[i]) {
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := c.commit(ctx, next); err != nil {
		return 0, err
	}
	return changed, nil
}

// commit must be called with the write lock held.
func (c *Collection[T]) commit(ctx context.Context, next []T) error {
	if next == nil {
		next = []T{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.slot, err)
	}
	if err := c.storage.Save(ctx, c.slot, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", c.slot, err)
	}
	c.items = next
	return nil
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}
