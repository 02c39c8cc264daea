// Package embed builds playback URLs for the third-party iframe providers.
// No streams are hosted or proxied here; each provider resolves the TMDB id
// on its own end.
package embed

import (
	"errors"
	"fmt"

	"streamhaven/models"
)

// ErrItemRequired is returned when the media id is missing or invalid.
var ErrItemRequired = errors.New("embed: media id required")

// Source is a single playable provider entry.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type provider struct {
	name   string
	movie  string
	series string
}

// Provider order matters: clients fall through the list top to bottom when a
// player fails to load.
var providers = []provider{
	{"VidSrc.to", "https://vidsrc.to/embed/movie/%d", "https://vidsrc.to/embed/tv/%d/%d/%d"},
	{"VidSrc.xyz", "https://vidsrc.xyz/embed/movie?tmdb=%d", "https://vidsrc.xyz/embed/tv?tmdb=%d&season=%d&episode=%d"},
	{"VidSrc.me", "https://vidsrc.me/embed/movie?tmdb=%d", "https://vidsrc.me/embed/tv?tmdb=%d&season=%d&episode=%d"},
	{"Embed.su", "https://embed.su/embed/movie/%d", "https://embed.su/embed/tv/%d/%d/%d"},
	{"VidLink Pro", "https://vidlink.pro/movie/%d", "https://vidlink.pro/tv/%d?s=%d&e=%d"},
	{"Movie API", "https://moviesapi.club/movie/%d", "https://moviesapi.club/tv/%d-%d-%d"},
	{"2Embed", "https://www.2embed.cc/embed/%d", "https://www.2embed.cc/embedtv/%d&s=%d&e=%d"},
}

// Sources returns the provider list for an item. Season and episode are only
// consulted for series and are clamped to a minimum of 1, matching what the
// providers expect for specials-free numbering.
func Sources(kind models.Kind, id int64, season, episode int) ([]Source, error) {
	if id <= 0 {
		return nil, ErrItemRequired
	}
	if season < 1 {
		season = 1
	}
	if episode < 1 {
		episode = 1
	}

	out := make([]Source, 0, len(providers))
	for _, p := range providers {
		var url string
		if kind == models.KindSeries {
			url = fmt.Sprintf(p.series, id, season, episode)
		} else {
			url = fmt.Sprintf(p.movie, id)
		}
		out = append(out, Source{Name: p.name, URL: url})
	}
	return out, nil
}
