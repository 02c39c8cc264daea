package catalog

import "streamhaven/models"

// Fixed catalog genre tables. Movie and series listings use different genre
// ids for overlapping names (e.g. Action), so the tables are separate.

var MovieGenres = []models.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Sci-Fi"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

var TVGenres = []models.Genre{
	{ID: 10759, Name: "Action"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 10762, Name: "Kids"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10763, Name: "News"},
	{ID: 10764, Name: "Reality"},
	{ID: 10765, Name: "Sci-Fi"},
	{ID: 10766, Name: "Soap"},
	{ID: 10767, Name: "Talk"},
	{ID: 10768, Name: "War"},
	{ID: 37, Name: "Western"},
}

// GenresFor returns the genre table for a kind.
func GenresFor(kind models.Kind) []models.Genre {
	if kind == models.KindSeries {
		return TVGenres
	}
	return MovieGenres
}
