package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"streamhaven/models"
	"streamhaven/services/catalog"
)

type fakeSource struct {
	mu      sync.Mutex
	calls   int
	fail    bool
	pages   map[int][]models.MediaItem
	total   int
	blockCh chan struct{}
}

func (f *fakeSource) respond(page int) (models.Batch, error) {
	f.mu.Lock()
	f.calls++
	block := f.blockCh
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.fail {
		return models.Batch{}, errors.New("catalog down")
	}
	return models.Batch{Items: f.pages[page], Page: page, TotalPages: f.total}, nil
}

func (f *fakeSource) Category(ctx context.Context, category catalog.Category, page int) (models.Batch, error) {
	return f.respond(page)
}

func (f *fakeSource) ByGenre(ctx context.Context, kind models.Kind, genreID int64, page int) (models.Batch, error) {
	return f.respond(page)
}

func (f *fakeSource) Search(ctx context.Context, query string, page int) (models.Batch, error) {
	return f.respond(page)
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeWatchlist struct{ items []models.MediaItem }

func (f *fakeWatchlist) List(ctx context.Context) []models.MediaItem { return f.items }

func movie(id int64) models.MediaItem {
	return models.MediaItem{ID: id, Kind: models.KindMovie, Title: fmt.Sprintf("Movie %d", id)}
}

func TestSetSectionResetsAndLoads(t *testing.T) {
	source := &fakeSource{pages: map[int][]models.MediaItem{1: {movie(1), movie(2)}}, total: 5}
	ctrl := NewController(source, &fakeWatchlist{})

	state, err := ctrl.SetSection(context.Background(), SectionMovies)
	require.NoError(t, err)
	require.Equal(t, SectionMovies, state.Section)
	require.Equal(t, 1, state.Page)
	require.Equal(t, PhaseIdle, state.Phase)
	require.Len(t, state.Items, 2)
	require.True(t, state.HasMore)
}

func TestSetSectionRejectsUnknown(t *testing.T) {
	ctrl := NewController(&fakeSource{}, &fakeWatchlist{})
	_, err := ctrl.SetSection(context.Background(), Section("bogus"))
	require.ErrorIs(t, err, ErrUnknownSection)
}

func TestLoadMoreMergesWithoutDuplicates(t *testing.T) {
	source := &fakeSource{
		pages: map[int][]models.MediaItem{
			1: {movie(1), movie(2)},
			2: {movie(2), movie(3)},
		},
		total: 2,
	}
	ctrl := NewController(source, &fakeWatchlist{})

	_, err := ctrl.SetSection(context.Background(), SectionMovies)
	require.NoError(t, err)

	state := ctrl.LoadMore(context.Background())
	require.Equal(t, 2, state.Page)
	require.Len(t, state.Items, 3, "overlapping item must be merged, not duplicated")
	require.Equal(t, int64(1), state.Items[0].ID)
	require.Equal(t, int64(3), state.Items[2].ID)
	require.False(t, state.HasMore, "page 2 of 2 leaves nothing more")

	// Further triggers with no pages left are ignored.
	before := source.callCount()
	state = ctrl.LoadMore(context.Background())
	require.Equal(t, before, source.callCount())
	require.Equal(t, 2, state.Page)
}

func TestGoToPageReplacesList(t *testing.T) {
	source := &fakeSource{
		pages: map[int][]models.MediaItem{
			1: {movie(1), movie(2)},
			3: {movie(30), movie(31)},
		},
		total: 10,
	}
	ctrl := NewController(source, &fakeWatchlist{})

	_, err := ctrl.SetSection(context.Background(), SectionMovies)
	require.NoError(t, err)

	state := ctrl.GoToPage(context.Background(), 3)
	require.Equal(t, 3, state.Page)
	require.Len(t, state.Items, 2)
	require.Equal(t, int64(30), state.Items[0].ID, "numbered pagination replaces, never merges")
}

func TestMyListAndSearchNeverLoadMore(t *testing.T) {
	source := &fakeSource{pages: map[int][]models.MediaItem{1: {movie(1)}}, total: 50}
	ctrl := NewController(source, &fakeWatchlist{items: []models.MediaItem{movie(7)}})

	state, err := ctrl.SetSection(context.Background(), SectionMyList)
	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	require.False(t, state.HasMore)

	before := source.callCount()
	ctrl.LoadMore(context.Background())
	require.Equal(t, before, source.callCount(), "mylist must not trigger fetches")

	state = ctrl.SearchQuery(context.Background(), "dune")
	require.Equal(t, SectionSearch, state.Section)
	require.False(t, state.HasMore)

	before = source.callCount()
	ctrl.LoadMore(context.Background())
	require.Equal(t, before, source.callCount(), "search must not trigger fetches")
}

func TestGenreChangeResetsPage(t *testing.T) {
	source := &fakeSource{pages: map[int][]models.MediaItem{1: {movie(1)}, 2: {movie(2)}}, total: 5}
	ctrl := NewController(source, &fakeWatchlist{})

	_, err := ctrl.SetSection(context.Background(), SectionMovies)
	require.NoError(t, err)
	ctrl.LoadMore(context.Background())

	state := ctrl.SetGenre(context.Background(), 28)
	require.Equal(t, 1, state.Page)
	require.EqualValues(t, 28, state.GenreID)
}

func TestFailedResetDegradesToEmpty(t *testing.T) {
	source := &fakeSource{fail: true}
	ctrl := NewController(source, &fakeWatchlist{})

	state, err := ctrl.SetSection(context.Background(), SectionMovies)
	require.NoError(t, err, "fetch failures are not fatal")
	require.Equal(t, PhaseError, state.Phase)
	require.Empty(t, state.Items)
	require.False(t, state.HasMore)
}

func TestLoadMoreIgnoredWhileInFlight(t *testing.T) {
	block := make(chan struct{})
	source := &fakeSource{pages: map[int][]models.MediaItem{1: {movie(1)}, 2: {movie(2)}}, total: 5}
	ctrl := NewController(source, &fakeWatchlist{})

	_, err := ctrl.SetSection(context.Background(), SectionMovies)
	require.NoError(t, err)

	source.mu.Lock()
	source.blockCh = block
	source.mu.Unlock()

	done := make(chan State, 1)
	go func() { done <- ctrl.LoadMore(context.Background()) }()

	// Wait until the first trigger is in flight.
	require.Eventually(t, func() bool {
		return ctrl.Snapshot().Phase == PhaseLoadingMore
	}, time.Second, 5*time.Millisecond)

	inFlightCalls := source.callCount()
	state := ctrl.LoadMore(context.Background())
	require.Equal(t, PhaseLoadingMore, state.Phase)
	require.Equal(t, inFlightCalls, source.callCount(), "second trigger must be ignored, not queued")

	close(block)
	final := <-done
	require.Equal(t, 2, final.Page)
}

func TestStaleResponseDiscardedAfterReset(t *testing.T) {
	block := make(chan struct{})
	source := &fakeSource{
		pages: map[int][]models.MediaItem{1: {movie(1)}, 2: {movie(99)}},
		total: 5,
	}
	ctrl := NewController(source, &fakeWatchlist{})

	_, err := ctrl.SetSection(context.Background(), SectionMovies)
	require.NoError(t, err)

	source.mu.Lock()
	source.blockCh = block
	source.mu.Unlock()

	done := make(chan State, 1)
	go func() { done <- ctrl.LoadMore(context.Background()) }()
	require.Eventually(t, func() bool {
		return ctrl.Snapshot().Phase == PhaseLoadingMore
	}, time.Second, 5*time.Millisecond)

	// Navigating to mylist supersedes the outstanding fetch.
	state, err := ctrl.SetSection(context.Background(), SectionMyList)
	require.NoError(t, err)
	require.Equal(t, SectionMyList, state.Section)

	close(block)
	<-done

	final := ctrl.Snapshot()
	require.Equal(t, SectionMyList, final.Section, "stale response must not overwrite newer state")
	for _, it := range final.Items {
		require.NotEqual(t, int64(99), it.ID, "stale page 2 items leaked in")
	}
}
