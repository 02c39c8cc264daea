package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"streamhaven/models"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"

	// The catalog refuses to page past 500 regardless of what it reports.
	maxTotalPages = 500
)

// Config holds catalog client configuration.
type Config struct {
	APIKey     string
	Language   string
	BaseURL    string
	HTTPClient *http.Client
}

// Client issues one-shot requests against the catalog API. There is no retry
// policy; a failed request surfaces as an error that aggregation boundaries
// degrade to an empty batch.
type Client struct {
	apiKey   string
	language string
	baseURL  string
	http     *http.Client
}

// NewClient builds a catalog client. Zero-value config fields get defaults.
func NewClient(cfg Config) *Client {
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		baseURL:  cfg.BaseURL,
		http:     cfg.HTTPClient,
	}
}

// Category is a named catalog listing.
type Category string

const (
	CategoryTrending   Category = "trending"
	CategoryTopRated   Category = "top_rated"
	CategoryNowPlaying Category = "now_playing"
	CategoryUpcoming   Category = "upcoming"
	CategoryPopularTV  Category = "popular_tv"
	CategoryOnTheAir   Category = "on_the_air"
	CategoryKDrama     Category = "kdrama"
	CategoryCDrama     Category = "cdrama"
)

type categorySpec struct {
	path   string
	params url.Values
	kind   models.Kind
}

func (c Category) spec() (categorySpec, error) {
	switch c {
	case CategoryTrending:
		return categorySpec{path: "/trending/movie/week", kind: models.KindMovie}, nil
	case CategoryTopRated:
		return categorySpec{path: "/movie/top_rated", kind: models.KindMovie}, nil
	case CategoryNowPlaying:
		return categorySpec{path: "/movie/now_playing", kind: models.KindMovie}, nil
	case CategoryUpcoming:
		return categorySpec{path: "/movie/upcoming", kind: models.KindMovie}, nil
	case CategoryPopularTV:
		return categorySpec{path: "/tv/popular", kind: models.KindSeries}, nil
	case CategoryOnTheAir:
		return categorySpec{path: "/tv/on_the_air", kind: models.KindSeries}, nil
	case CategoryKDrama:
		return categorySpec{
			path:   "/discover/tv",
			params: url.Values{"with_original_language": {"ko"}, "sort_by": {"popularity.desc"}},
			kind:   models.KindSeries,
		}, nil
	case CategoryCDrama:
		return categorySpec{
			path:   "/discover/tv",
			params: url.Values{"with_original_language": {"zh"}, "sort_by": {"popularity.desc"}},
			kind:   models.KindSeries,
		}, nil
	default:
		return categorySpec{}, fmt.Errorf("unknown category %q", string(c))
	}
}

// listResponse is the common shape of every catalog list endpoint.
type listResponse struct {
	Page       int         `json:"page"`
	Results    []RawRecord `json:"results"`
	TotalPages int         `json:"total_pages"`
}

// Category fetches one page of a named listing.
func (c *Client) Category(ctx context.Context, category Category, page int) (models.Batch, error) {
	spec, err := category.spec()
	if err != nil {
		return models.Batch{}, err
	}
	return c.fetchList(ctx, spec.path, spec.params, func(r RawRecord) models.MediaItem {
		return Normalize(r, spec.kind, DashboardDefaultYear)
	}, page)
}

// ByGenre fetches one discover page for a kind, optionally filtered by genre.
// A genreID of zero or less means "no genre filter".
func (c *Client) ByGenre(ctx context.Context, kind models.Kind, genreID int64, page int) (models.Batch, error) {
	path := "/discover/movie"
	if kind == models.KindSeries {
		path = "/discover/tv"
	}
	params := url.Values{"sort_by": {"popularity.desc"}}
	if genreID > 0 {
		params.Set("with_genres", strconv.FormatInt(genreID, 10))
	}
	return c.fetchList(ctx, path, params, func(r RawRecord) models.MediaItem {
		return Normalize(r, kind, DefaultYearNA)
	}, page)
}

// Search queries both kinds at once via the multi-search endpoint, preserving
// the catalog's own result order. Records that are neither movies nor series
// (people, collections) are skipped.
func (c *Client) Search(ctx context.Context, query string, page int) (models.Batch, error) {
	params := url.Values{"query": {query}, "include_adult": {"false"}}
	return c.fetchList(ctx, "/search/multi", params, func(r RawRecord) models.MediaItem {
		return Normalize(r, r.KindFromMediaType(), DefaultYearNA)
	}, page)
}

// detailResponse covers both the movie and the series detail shapes.
type detailResponse struct {
	RawRecord
	Genres          []models.Genre `json:"genres"`
	Runtime         int            `json:"runtime"`
	EpisodeRunTime  []int          `json:"episode_run_time"`
	NumberOfSeasons int            `json:"number_of_seasons"`
	Tagline         string         `json:"tagline"`
}

// Detail fetches the full record for a single title.
func (c *Client) Detail(ctx context.Context, kind models.Kind, id int64) (*models.Detail, error) {
	path := fmt.Sprintf("/movie/%d", id)
	if kind == models.KindSeries {
		path = fmt.Sprintf("/tv/%d", id)
	}

	var resp detailResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	detail := &models.Detail{
		MediaItem: Normalize(resp.RawRecord, kind, DefaultYearNA),
		Tagline:   resp.Tagline,
		Seasons:   resp.NumberOfSeasons,
	}
	for _, g := range resp.Genres {
		detail.Genres = append(detail.Genres, g.Name)
	}
	switch {
	case resp.Runtime > 0:
		detail.RuntimeMinutes = resp.Runtime
	case len(resp.EpisodeRunTime) > 0:
		detail.RuntimeMinutes = resp.EpisodeRunTime[0]
	}
	return detail, nil
}

// ErrNoTrailer is returned when a title has no playable trailer or teaser.
var ErrNoTrailer = errors.New("catalog: no trailer available")

type videoResponse struct {
	Results []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

// Trailer fetches the promotional videos for a title and picks the first
// YouTube trailer, falling back to the first YouTube teaser.
func (c *Client) Trailer(ctx context.Context, kind models.Kind, id int64) (*models.Trailer, error) {
	path := fmt.Sprintf("/movie/%d/videos", id)
	if kind == models.KindSeries {
		path = fmt.Sprintf("/tv/%d/videos", id)
	}

	var resp videoResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	for _, wanted := range []string{"Trailer", "Teaser"} {
		for _, v := range resp.Results {
			if v.Site == "YouTube" && v.Type == wanted {
				return &models.Trailer{
					Key:  v.Key,
					Name: v.Name,
					Type: v.Type,
					URL:  "https://www.youtube.com/embed/" + v.Key,
				}, nil
			}
		}
	}
	return nil, ErrNoTrailer
}

// Related fetches titles similar to the given one.
func (c *Client) Related(ctx context.Context, kind models.Kind, id int64) (models.Batch, error) {
	path := fmt.Sprintf("/movie/%d/similar", id)
	if kind == models.KindSeries {
		path = fmt.Sprintf("/tv/%d/similar", id)
	}
	return c.fetchList(ctx, path, nil, func(r RawRecord) models.MediaItem {
		return Normalize(r, kind, DefaultYearNA)
	}, 1)
}

type seasonResponse struct {
	Name     string `json:"name"`
	Episodes []struct {
		EpisodeNumber int    `json:"episode_number"`
		Name          string `json:"name"`
		Overview      string `json:"overview"`
		AirDate       string `json:"air_date"`
	} `json:"episodes"`
}

// Season fetches the episode list for one season of a series.
func (c *Client) Season(ctx context.Context, seriesID int64, seasonNumber int) (*models.SeasonDetail, error) {
	var resp seasonResponse
	path := fmt.Sprintf("/tv/%d/season/%d", seriesID, seasonNumber)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	detail := &models.SeasonDetail{
		SeriesID:     seriesID,
		SeasonNumber: seasonNumber,
		Name:         resp.Name,
	}
	for _, ep := range resp.Episodes {
		detail.Episodes = append(detail.Episodes, models.SeasonEpisode{
			EpisodeNumber: ep.EpisodeNumber,
			Name:          ep.Name,
			Overview:      ep.Overview,
			AirDate:       ep.AirDate,
		})
	}
	return detail, nil
}

func (c *Client) fetchList(ctx context.Context, path string, params url.Values, normalize func(RawRecord) models.MediaItem, page int) (models.Batch, error) {
	if page < 1 {
		page = 1
	}
	merged := url.Values{}
	for k, vs := range params {
		merged[k] = vs
	}
	merged.Set("page", strconv.Itoa(page))

	var resp listResponse
	if err := c.get(ctx, path, merged, &resp); err != nil {
		return models.Batch{}, err
	}

	batch := models.Batch{Page: resp.Page, TotalPages: resp.TotalPages}
	if batch.Page == 0 {
		batch.Page = page
	}
	if batch.TotalPages > maxTotalPages {
		batch.TotalPages = maxTotalPages
	}
	for _, raw := range resp.Results {
		item := normalize(raw)
		if item.Kind == "" {
			continue
		}
		batch.Items = append(batch.Items, item)
	}
	return batch, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog request %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response %s: %w", path, err)
	}
	return nil
}
