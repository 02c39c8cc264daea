package theme

import (
	"context"
	"errors"
	"sync"

	"streamhaven/internal/storage"
)

const (
	Dark  = "dark"
	Light = "light"
)

var (
	ErrStoreRequired = errors.New("theme: storage is required")
	ErrUnknownTheme  = errors.New("theme: unknown theme")
)

// Service holds the single process-wide theme preference, persisted and
// re-applied at load.
type Service struct {
	mu      sync.RWMutex
	store   storage.Store
	current string
}

// NewService loads the persisted theme, defaulting to dark.
func NewService(ctx context.Context, store storage.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	svc := &Service{store: store, current: Dark}

	var saved string
	if storage.ReadJSON(ctx, store, storage.KeyTheme, &saved) && (saved == Dark || saved == Light) {
		svc.current = saved
	}
	return svc, nil
}

// Get returns the current theme.
func (s *Service) Get(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set switches the theme and persists it.
func (s *Service) Set(ctx context.Context, value string) error {
	if value != Dark && value != Light {
		return ErrUnknownTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = value
	storage.WriteJSON(ctx, s.store, storage.KeyTheme, value)
	return nil
}
