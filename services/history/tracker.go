package history

import (
	"context"
	"log"
	"sync"
	"time"

	"streamhaven/models"
)

// DefaultFlushInterval is how often an open playback flushes its progress.
const DefaultFlushInterval = 30 * time.Second

// Tracker periodically records playback progress while a video view is open
// and flushes once more when it closes. One Tracker per open playback; there
// is no cross-playback coordination.
type Tracker struct {
	svc      *Service
	interval time.Duration

	mu      sync.Mutex
	item    models.MediaItem
	seconds int
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewTracker builds a tracker flushing through svc. A non-positive interval
// uses the default.
func NewTracker(svc *Service, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &Tracker{svc: svc, interval: interval}
}

// Start begins tracking the item. Progress updates arrive via Advance; every
// tick flushes the latest position. Starting while already tracking stops the
// previous playback first (with its final flush).
func (t *Tracker) Start(ctx context.Context, item models.MediaItem, startSeconds int) {
	t.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.item = item
	t.seconds = startSeconds
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	go t.loop(ctx, done)
}

// Advance records the current playback position in seconds. It only updates
// the in-memory position; persistence happens on the next tick or on Stop.
func (t *Tracker) Advance(seconds int) {
	t.mu.Lock()
	if seconds > t.seconds {
		t.seconds = seconds
	}
	t.mu.Unlock()
}

// Stop ends tracking and performs the final flush. Safe to call when idle.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	done := t.done
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Tracker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.flush(context.Background())
		case <-ctx.Done():
			// Final flush on close.
			t.flush(context.Background())
			return
		}
	}
}

func (t *Tracker) flush(ctx context.Context) {
	t.mu.Lock()
	item := t.item
	seconds := t.seconds
	t.mu.Unlock()

	if item.ID == 0 {
		return
	}
	t.svc.RecordProgress(ctx, item, seconds)
	log.Printf("[history] flushed progress %ds for %s %d", seconds, item.Kind, item.ID)
}
