package catalog

import (
	"testing"

	"streamhaven/models"
)

func TestNormalizeEmptyRecord(t *testing.T) {
	item := Normalize(RawRecord{}, models.KindMovie, DefaultYearNA)

	if item.Kind != models.KindMovie {
		t.Fatalf("unexpected kind %q", item.Kind)
	}
	if item.Year != "N/A" {
		t.Fatalf("expected year fallback N/A, got %q", item.Year)
	}
	if item.Rating != "N/A" {
		t.Fatalf("expected rating fallback N/A, got %q", item.Rating)
	}
	if item.PosterURL != "https://via.placeholder.com/500x750" {
		t.Fatalf("expected placeholder poster, got %q", item.PosterURL)
	}
	if item.BackdropURL != nil {
		t.Fatalf("expected nil backdrop, got %q", *item.BackdropURL)
	}
	if item.Description != "No description available." {
		t.Fatalf("expected placeholder description, got %q", item.Description)
	}
}

func TestNormalizeMovieFields(t *testing.T) {
	vote := 7.25
	item := Normalize(RawRecord{
		ID:           603,
		Title:        "The Matrix",
		ReleaseDate:  "1999-03-31",
		VoteAverage:  &vote,
		PosterPath:   "/poster.jpg",
		BackdropPath: "/backdrop.jpg",
		Overview:     "A hacker learns the truth.",
	}, models.KindMovie, DefaultYearNA)

	if item.Title != "The Matrix" {
		t.Fatalf("unexpected title %q", item.Title)
	}
	if item.Year != "1999" {
		t.Fatalf("unexpected year %q", item.Year)
	}
	if item.Rating != "7.2" {
		t.Fatalf("expected one-decimal rating, got %q", item.Rating)
	}
	if item.PosterURL != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Fatalf("unexpected poster url %q", item.PosterURL)
	}
	if item.BackdropURL == nil || *item.BackdropURL != "https://image.tmdb.org/t/p/original/backdrop.jpg" {
		t.Fatalf("unexpected backdrop %v", item.BackdropURL)
	}
}

func TestNormalizeSeriesNameAndAirDate(t *testing.T) {
	item := Normalize(RawRecord{
		ID:           1399,
		Name:         "Game of Thrones",
		FirstAirDate: "2011-04-17",
	}, models.KindSeries, DefaultYearNA)

	if item.Title != "Game of Thrones" {
		t.Fatalf("expected name to back title, got %q", item.Title)
	}
	if item.Year != "2011" {
		t.Fatalf("unexpected year %q", item.Year)
	}
}

func TestNormalizeDefaultYearParameter(t *testing.T) {
	item := Normalize(RawRecord{ID: 1}, models.KindMovie, DashboardDefaultYear)
	if item.Year != "2024" {
		t.Fatalf("expected caller-specified default year, got %q", item.Year)
	}
}

func TestNormalizeZeroRatingFormats(t *testing.T) {
	vote := 0.0
	item := Normalize(RawRecord{ID: 1, VoteAverage: &vote}, models.KindMovie, DefaultYearNA)
	if item.Rating != "0.0" {
		t.Fatalf("a present zero average should format, got %q", item.Rating)
	}
}

func TestKindFromMediaType(t *testing.T) {
	if k := (RawRecord{MediaType: "movie"}).KindFromMediaType(); k != models.KindMovie {
		t.Fatalf("movie mapped to %q", k)
	}
	if k := (RawRecord{MediaType: "tv"}).KindFromMediaType(); k != models.KindSeries {
		t.Fatalf("tv mapped to %q", k)
	}
	if k := (RawRecord{MediaType: "person"}).KindFromMediaType(); k != "" {
		t.Fatalf("person mapped to %q", k)
	}
}
