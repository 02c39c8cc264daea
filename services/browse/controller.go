package browse

import (
	"context"
	"errors"
	"log"
	"sync"

	"streamhaven/models"
	"streamhaven/services/catalog"
)

// Section is one of the browsable views.
type Section string

const (
	SectionHome    Section = "home"
	SectionMovies  Section = "movies"
	SectionTVShows Section = "tvshows"
	SectionMyList  Section = "mylist"
	SectionSearch  Section = "search"
)

// IsValid reports whether s is a known section.
func (s Section) IsValid() bool {
	switch s {
	case SectionHome, SectionMovies, SectionTVShows, SectionMyList, SectionSearch:
		return true
	}
	return false
}

// Phase is the controller's fetch state.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseLoading     Phase = "loading"
	PhaseLoadingMore Phase = "loadingMore"
	PhaseError       Phase = "error"
)

// ErrUnknownSection is returned for section names outside the fixed set.
var ErrUnknownSection = errors.New("browse: unknown section")

// Source is the slice of the catalog client the controller needs.
type Source interface {
	Category(ctx context.Context, category catalog.Category, page int) (models.Batch, error)
	ByGenre(ctx context.Context, kind models.Kind, genreID int64, page int) (models.Batch, error)
	Search(ctx context.Context, query string, page int) (models.Batch, error)
}

// WatchlistSource supplies the fixed mylist section.
type WatchlistSource interface {
	List(ctx context.Context) []models.MediaItem
}

// State is the explicit browse state, updated reducer-style: every transition
// produces the next state under the controller's lock, and fetch results are
// only applied if no newer transition superseded them.
type State struct {
	Section    Section            `json:"section"`
	Page       int                `json:"page"`
	GenreID    int64              `json:"genreId,omitempty"`
	Query      string             `json:"query,omitempty"`
	Phase      Phase              `json:"phase"`
	TotalPages int                `json:"totalPages"`
	HasMore    bool               `json:"hasMore"`
	Items      []models.MediaItem `json:"items"`
}

// Controller drives pagination and filtering over the catalog. At most one
// fetch is applied at a time: load-more triggers while a fetch is in flight
// are ignored (not queued), and reset transitions invalidate any fetch still
// outstanding so a stale response can never overwrite newer state.
type Controller struct {
	source Source
	mylist WatchlistSource

	mu         sync.Mutex
	state      State
	generation uint64
}

// NewController starts idle on the home section; call SetSection to load.
func NewController(source Source, mylist WatchlistSource) *Controller {
	return &Controller{
		source: source,
		mylist: mylist,
		state:  State{Section: SectionHome, Page: 1, Phase: PhaseIdle, Items: []models.MediaItem{}},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	out := c.state
	out.Items = make([]models.MediaItem, len(c.state.Items))
	copy(out.Items, c.state.Items)
	return out
}

// SetSection switches views: page resets to 1 and the genre filter and query
// are cleared. The display list is replaced, never merged.
func (c *Controller) SetSection(ctx context.Context, section Section) (State, error) {
	if !section.IsValid() {
		return c.Snapshot(), ErrUnknownSection
	}
	gen := c.beginReset(func(st *State) {
		st.Section = section
		st.GenreID = 0
		st.Query = ""
	})
	return c.fetchReplace(ctx, gen, section, 0, "", 1), nil
}

// SetGenre re-fetches the current section filtered by genre, from page 1.
func (c *Controller) SetGenre(ctx context.Context, genreID int64) State {
	c.mu.Lock()
	section := c.state.Section
	c.mu.Unlock()

	gen := c.beginReset(func(st *State) {
		st.GenreID = genreID
		st.Query = ""
	})
	return c.fetchReplace(ctx, gen, section, genreID, "", 1)
}

// SearchQuery switches to the search section for the given query.
func (c *Controller) SearchQuery(ctx context.Context, query string) State {
	gen := c.beginReset(func(st *State) {
		st.Section = SectionSearch
		st.GenreID = 0
		st.Query = query
	})
	return c.fetchReplace(ctx, gen, SectionSearch, 0, query, 1)
}

// GoToPage is explicit numbered pagination: the display list is replaced with
// the requested page, never merged with the previous one.
func (c *Controller) GoToPage(ctx context.Context, page int) State {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	section := c.state.Section
	genreID := c.state.GenreID
	query := c.state.Query
	c.mu.Unlock()

	gen := c.beginReset(nil)
	return c.fetchReplace(ctx, gen, section, genreID, query, page)
}

// LoadMore is the infinite-scroll trigger. It is ignored while a fetch is in
// flight, when no pages remain, and for the mylist and search sections, whose
// result sets are already complete. New items are merged into the accumulated
// list with first-seen-wins dedup.
func (c *Controller) LoadMore(ctx context.Context) State {
	c.mu.Lock()
	st := c.state
	if st.Phase == PhaseLoading || st.Phase == PhaseLoadingMore ||
		!st.HasMore || st.Section == SectionMyList || st.Section == SectionSearch {
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}
	c.generation++
	gen := c.generation
	c.state.Phase = PhaseLoadingMore
	nextPage := st.Page + 1
	section, genreID, query := st.Section, st.GenreID, st.Query
	c.mu.Unlock()

	batch, err := c.fetch(ctx, section, genreID, query, nextPage)
	return c.apply(gen, func(next *State) {
		if err != nil {
			log.Printf("[browse] load more for %s page %d failed: %v", section, nextPage, err)
			next.Phase = PhaseError
			return
		}
		next.Items = catalog.AppendPage(next.Items, batch.Items)
		next.Page = nextPage
		next.TotalPages = batch.TotalPages
		next.HasMore = nextPage < batch.TotalPages
		next.Phase = PhaseIdle
	})
}

// beginReset starts a fresh Loading generation; any fetch still in flight
// becomes stale and its result will be discarded.
func (c *Controller) beginReset(mutate func(*State)) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if mutate != nil {
		mutate(&c.state)
	}
	c.state.Page = 1
	c.state.Phase = PhaseLoading
	return c.generation
}

func (c *Controller) fetchReplace(ctx context.Context, gen uint64, section Section, genreID int64, query string, page int) State {
	if section == SectionMyList {
		items := c.mylist.List(ctx)
		return c.apply(gen, func(next *State) {
			next.Items = items
			next.Page = 1
			next.TotalPages = 1
			next.HasMore = false
			next.Phase = PhaseIdle
		})
	}

	batch, err := c.fetch(ctx, section, genreID, query, page)
	return c.apply(gen, func(next *State) {
		if err != nil {
			log.Printf("[browse] load %s page %d failed, degrading to empty: %v", section, page, err)
			next.Items = []models.MediaItem{}
			next.Page = page
			next.TotalPages = 0
			next.HasMore = false
			next.Phase = PhaseError
			return
		}
		next.Items = catalog.Merge(batch.Items)
		next.Page = page
		next.TotalPages = batch.TotalPages
		next.HasMore = page < batch.TotalPages && section != SectionSearch
		next.Phase = PhaseIdle
	})
}

func (c *Controller) fetch(ctx context.Context, section Section, genreID int64, query string, page int) (models.Batch, error) {
	switch section {
	case SectionHome:
		// The home grid is the merged upcoming + now-playing feed; the same
		// title often sits in both.
		upcoming, upErr := c.source.Category(ctx, catalog.CategoryUpcoming, page)
		nowPlaying, npErr := c.source.Category(ctx, catalog.CategoryNowPlaying, page)
		if upErr != nil && npErr != nil {
			return models.Batch{}, upErr
		}
		if upErr != nil {
			log.Printf("[browse] upcoming feed failed, serving now-playing only: %v", upErr)
		}
		if npErr != nil {
			log.Printf("[browse] now-playing feed failed, serving upcoming only: %v", npErr)
		}
		total := max(upcoming.TotalPages, nowPlaying.TotalPages)
		return models.Batch{
			Items:      catalog.Merge(upcoming.Items, nowPlaying.Items),
			Page:       page,
			TotalPages: total,
		}, nil
	case SectionMovies:
		return c.source.ByGenre(ctx, models.KindMovie, genreID, page)
	case SectionTVShows:
		return c.source.ByGenre(ctx, models.KindSeries, genreID, page)
	case SectionSearch:
		return c.source.Search(ctx, query, page)
	default:
		return models.Batch{}, ErrUnknownSection
	}
}

// apply commits a fetch result unless a newer transition superseded it.
func (c *Controller) apply(gen uint64, fn func(*State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		log.Printf("[browse] dropping stale response (generation %d, current %d)", gen, c.generation)
		return c.snapshotLocked()
	}
	fn(&c.state)
	return c.snapshotLocked()
}
