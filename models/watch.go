package models

import "time"

// ContinueWatchingItem is a MediaItem the user has partially watched.
// At most one entry exists per (ID, Kind); the list is kept most-recent-first
// and bounded, with the oldest entry evicted on overflow.
type ContinueWatchingItem struct {
	MediaItem
	WatchedSeconds int       `json:"watchedSeconds"`
	TotalSeconds   int       `json:"totalSeconds"`
	LastWatchedAt  time.Time `json:"lastWatchedAt"`
}

// ProgressPercent returns watch progress in [0,100].
func (c ContinueWatchingItem) ProgressPercent() float64 {
	if c.TotalSeconds <= 0 {
		return 0
	}
	pct := float64(c.WatchedSeconds) / float64(c.TotalSeconds) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
