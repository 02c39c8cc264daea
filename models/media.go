package models

// Kind discriminates movie content from series content. Catalog IDs are only
// unique within a kind, so a MediaItem is always identified by (ID, Kind).
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	return k == KindMovie || k == KindSeries
}

// MediaKey is the identity of a MediaItem for dedup and lookups.
type MediaKey struct {
	ID   int64 `json:"id"`
	Kind Kind  `json:"kind"`
}

// MediaItem is the canonical display record for a movie or series.
// Instances are constructed fresh on every fetch/normalize cycle and never
// mutated in place; lists of them are replaced or merged into new slices.
type MediaItem struct {
	ID          int64   `json:"id"`
	Kind        Kind    `json:"kind"`
	Title       string  `json:"title"`
	Year        string  `json:"year"`
	Rating      string  `json:"rating"`
	PosterURL   string  `json:"posterUrl"`
	BackdropURL *string `json:"backdropUrl"`
	Description string  `json:"description"`
}

// Key returns the (ID, Kind) identity of the item.
func (m MediaItem) Key() MediaKey {
	return MediaKey{ID: m.ID, Kind: m.Kind}
}

// Batch is one page's worth of results from a single catalog request.
type Batch struct {
	Items      []MediaItem `json:"items"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}

// Detail is the full record for a single title. Seasons is zero for movies.
type Detail struct {
	MediaItem
	Genres         []string `json:"genres"`
	RuntimeMinutes int      `json:"runtimeMinutes,omitempty"`
	Seasons        int      `json:"seasons,omitempty"`
	Tagline        string   `json:"tagline,omitempty"`
}

// SeasonEpisode is one episode inside a season listing.
type SeasonEpisode struct {
	EpisodeNumber int    `json:"episodeNumber"`
	Name          string `json:"name"`
	Overview      string `json:"overview,omitempty"`
	AirDate       string `json:"airDate,omitempty"`
}

// SeasonDetail is the episode list for one season of a series.
type SeasonDetail struct {
	SeriesID     int64           `json:"seriesId"`
	SeasonNumber int             `json:"seasonNumber"`
	Name         string          `json:"name"`
	Episodes     []SeasonEpisode `json:"episodes"`
}

// HomeSection is one named row on the dashboard.
type HomeSection struct {
	Key   string      `json:"key"`
	Title string      `json:"title"`
	Items []MediaItem `json:"items"`
}

// HomeSections is the full dashboard payload, rows in display order.
type HomeSections struct {
	Sections []HomeSection `json:"sections"`
}

// Trailer is the promotional video selected for a title, always YouTube
// hosted. URL is the embeddable player address.
type Trailer struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Genre is a catalog genre usable as a browse filter.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
