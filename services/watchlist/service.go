package watchlist

import (
	"context"
	"errors"
	"sync"

	"streamhaven/internal/storage"
	"streamhaven/models"
)

// ErrStoreRequired is returned when the service is constructed without a store.
var ErrStoreRequired = errors.New("watchlist: storage is required")

// Service keeps the watchlist: an unordered set of MediaItems keyed by
// (ID, Kind). The in-memory list is the optimistic source for reads; every
// mutation writes the full list back through storage.
type Service struct {
	mu    sync.RWMutex
	store storage.Store
	items []models.MediaItem
}

// NewService loads the persisted watchlist. A read miss starts empty.
func NewService(ctx context.Context, store storage.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	svc := &Service{store: store}
	storage.ReadJSON(ctx, store, storage.KeyWatchlist, &svc.items)
	return svc, nil
}

// List returns a copy of the current watchlist.
func (s *Service) List(ctx context.Context) []models.MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MediaItem, len(s.items))
	copy(out, s.items)
	return out
}

// Contains reports whether (id, kind) is on the watchlist.
func (s *Service) Contains(ctx context.Context, id int64, kind models.Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := models.MediaKey{ID: id, Kind: kind}
	for _, it := range s.items {
		if it.Key() == key {
			return true
		}
	}
	return false
}

// Toggle flips set membership for the item: present entries are removed,
// absent ones appended. Toggling twice restores the original list. The new
// list is returned and persisted; a persistence failure keeps the in-memory
// change and is only logged.
func (s *Service) Toggle(ctx context.Context, item models.MediaItem) []models.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	next := make([]models.MediaItem, 0, len(s.items)+1)
	removed := false
	for _, it := range s.items {
		if it.Key() == key {
			removed = true
			continue
		}
		next = append(next, it)
	}
	if !removed {
		next = append(next, item)
	}

	s.items = next
	storage.WriteJSON(ctx, s.store, storage.KeyWatchlist, s.items)

	out := make([]models.MediaItem, len(s.items))
	copy(out, s.items)
	return out
}
