package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

// Store is a persistent key to string-value store. Values are opaque strings;
// callers serialize/deserialize JSON themselves. Absence of a key is a normal
// condition, reported via ok=false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// ErrKeyRequired is returned when an empty key is used.
var ErrKeyRequired = errors.New("storage: key is required")

// Well-known keys shared by the user-state services.
const (
	KeyWatchlist        = "watchlist"
	KeyContinueWatching = "continueWatching"
	KeyTheme            = "theme"
	KeyUsers            = "users"
	KeyCurrentUser      = "currentUser"
)

// ReadJSON loads key into v. A missing key, a read failure, or a corrupt
// value all behave as "no data yet": v is left untouched and false is
// returned. Failures are logged, never propagated.
func ReadJSON(ctx context.Context, s Store, key string, v any) bool {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		log.Printf("[storage] read %q failed, treating as absent: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Printf("[storage] value for %q is not valid JSON, treating as absent: %v", key, err)
		return false
	}
	return true
}

// WriteJSON persists v under key. Write failures are logged and swallowed;
// the caller's in-memory state stays optimistically updated so a later
// successful write can still persist it.
func WriteJSON(ctx context.Context, s Store, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[storage] marshal for %q failed: %v", key, err)
		return
	}
	if err := s.Set(ctx, key, string(raw)); err != nil {
		log.Printf("[storage] write %q failed, keeping in-memory state: %v", key, err)
	}
}
