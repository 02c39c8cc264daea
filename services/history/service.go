package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"streamhaven/internal/storage"
	"streamhaven/models"
)

// ErrStoreRequired is returned when the service is constructed without a store.
var ErrStoreRequired = errors.New("history: storage is required")

const (
	// DefaultMaxEntries bounds the continue-watching list.
	DefaultMaxEntries = 20

	// Kind-dependent total-duration defaults applied when a title has no
	// recorded runtime: a feature-length movie vs. a single episode.
	DefaultMovieSeconds  = 7200
	DefaultSeriesSeconds = 2400
)

// Options tunes the continue-watching policy.
type Options struct {
	MaxEntries         int
	MovieTotalSeconds  int
	SeriesTotalSeconds int

	// now is swappable for tests.
	now func() time.Time
}

func (o *Options) fill() {
	if o.MaxEntries <= 0 {
		o.MaxEntries = DefaultMaxEntries
	}
	if o.MovieTotalSeconds <= 0 {
		o.MovieTotalSeconds = DefaultMovieSeconds
	}
	if o.SeriesTotalSeconds <= 0 {
		o.SeriesTotalSeconds = DefaultSeriesSeconds
	}
	if o.now == nil {
		o.now = time.Now
	}
}

// Service maintains the continue-watching list: at most one entry per
// (ID, Kind), most-recent-first, bounded to MaxEntries with the oldest entry
// evicted on overflow. Recording progress for an existing key moves its entry
// to the front so recency order and eviction agree.
type Service struct {
	mu    sync.RWMutex
	store storage.Store
	opts  Options
	items []models.ContinueWatchingItem
}

// NewService loads the persisted list. A read miss starts empty.
func NewService(ctx context.Context, store storage.Store, opts Options) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	opts.fill()
	svc := &Service{store: store, opts: opts}
	storage.ReadJSON(ctx, store, storage.KeyContinueWatching, &svc.items)
	return svc, nil
}

// List returns a copy of the list, most recent first.
func (s *Service) List(ctx context.Context) []models.ContinueWatchingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ContinueWatchingItem, len(s.items))
	copy(out, s.items)
	return out
}

// RecordProgress updates watch progress for the item. Existing entries keep
// their TotalSeconds and move to the front; new entries are prepended with the
// kind-dependent default total. The list is then truncated to the bound.
func (s *Service) RecordProgress(ctx context.Context, item models.MediaItem, watchedSeconds int) []models.ContinueWatchingItem {
	if watchedSeconds < 0 {
		watchedSeconds = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now().UTC()
	key := item.Key()

	entry := models.ContinueWatchingItem{
		MediaItem:      item,
		WatchedSeconds: watchedSeconds,
		TotalSeconds:   s.defaultTotal(item.Kind),
		LastWatchedAt:  now,
	}

	next := make([]models.ContinueWatchingItem, 0, len(s.items)+1)
	next = append(next, entry)
	for _, it := range s.items {
		if it.Key() == key {
			// Keep the previously recorded total for the refreshed entry.
			next[0].TotalSeconds = it.TotalSeconds
			continue
		}
		next = append(next, it)
	}
	if len(next) > s.opts.MaxEntries {
		next = next[:s.opts.MaxEntries]
	}

	s.items = next
	storage.WriteJSON(ctx, s.store, storage.KeyContinueWatching, s.items)

	out := make([]models.ContinueWatchingItem, len(s.items))
	copy(out, s.items)
	return out
}

// Remove drops the entry for the item, if present.
func (s *Service) Remove(ctx context.Context, item models.MediaItem) []models.ContinueWatchingItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	next := s.items[:0:0]
	for _, it := range s.items {
		if it.Key() == key {
			continue
		}
		next = append(next, it)
	}

	s.items = next
	storage.WriteJSON(ctx, s.store, storage.KeyContinueWatching, s.items)

	out := make([]models.ContinueWatchingItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) defaultTotal(kind models.Kind) int {
	if kind == models.KindSeries {
		return s.opts.SeriesTotalSeconds
	}
	return s.opts.MovieTotalSeconds
}
