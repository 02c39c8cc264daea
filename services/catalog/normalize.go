package catalog

import (
	"fmt"

	"streamhaven/models"
)

// Image CDN prefixes. Posters use a fixed display size, backdrops use the
// original resolution.
const (
	posterBaseURL   = "https://image.tmdb.org/t/p/w500"
	backdropBaseURL = "https://image.tmdb.org/t/p/original"

	placeholderPoster      = "https://via.placeholder.com/500x750"
	placeholderDescription = "No description available."

	// DefaultYearNA is the year fallback for search and discover contexts.
	DefaultYearNA = "N/A"
	// DashboardDefaultYear is the year fallback used by dashboard rows, which
	// bias missing dates toward "recent" rather than "unknown".
	DashboardDefaultYear = "2024"
)

// RawRecord is a single heterogeneous result from the catalog. Movie and
// series records disagree on field names (title vs name, release_date vs
// first_air_date); Normalize resolves them into one MediaItem.
type RawRecord struct {
	ID           int64    `json:"id"`
	MediaType    string   `json:"media_type,omitempty"`
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	ReleaseDate  string   `json:"release_date"`
	FirstAirDate string   `json:"first_air_date"`
	VoteAverage  *float64 `json:"vote_average"`
	PosterPath   string   `json:"poster_path"`
	BackdropPath string   `json:"backdrop_path"`
	Overview     string   `json:"overview"`
}

// KindFromMediaType maps a multi-search media_type to a Kind. Records that
// are neither ("person", "collection") map to the empty Kind and are skipped
// by callers.
func (r RawRecord) KindFromMediaType() models.Kind {
	switch r.MediaType {
	case "movie":
		return models.KindMovie
	case "tv":
		return models.KindSeries
	default:
		return ""
	}
}

// Normalize maps a raw catalog record into the canonical MediaItem shape.
// It is pure and total: any input, including the zero RawRecord, yields a
// valid item with placeholder defaults. defaultYear is a parameter because
// contexts disagree on the fallback (dashboards use "2024", search "N/A").
func Normalize(raw RawRecord, kind models.Kind, defaultYear string) models.MediaItem {
	item := models.MediaItem{
		ID:          raw.ID,
		Kind:        kind,
		Title:       raw.Title,
		Year:        defaultYear,
		Rating:      "N/A",
		PosterURL:   placeholderPoster,
		Description: placeholderDescription,
	}

	if item.Title == "" {
		item.Title = raw.Name
	}

	date := raw.ReleaseDate
	if date == "" {
		date = raw.FirstAirDate
	}
	if len(date) >= 4 {
		item.Year = date[:4]
	}

	if raw.VoteAverage != nil {
		item.Rating = fmt.Sprintf("%.1f", *raw.VoteAverage)
	}

	if raw.PosterPath != "" {
		item.PosterURL = posterBaseURL + raw.PosterPath
	}
	if raw.BackdropPath != "" {
		backdrop := backdropBaseURL + raw.BackdropPath
		item.BackdropURL = &backdrop
	}

	if raw.Overview != "" {
		item.Description = raw.Overview
	}

	return item
}

// NormalizeBatch maps a results slice, dropping nothing.
func NormalizeBatch(raws []RawRecord, kind models.Kind, defaultYear string) []models.MediaItem {
	items := make([]models.MediaItem, 0, len(raws))
	for _, raw := range raws {
		items = append(items, Normalize(raw, kind, defaultYear))
	}
	return items
}
