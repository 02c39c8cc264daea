package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"streamhaven/internal/storage"
	"streamhaven/models"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.OpenFs(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("OpenFs() error = %v", err)
	}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestSubmitAndList(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	review, err := svc.Submit(ctx, Input{
		Kind:   models.KindMovie,
		ItemID: 603,
		Rating: 5,
		Text:   "Still holds up.",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if review.ID == "" || review.AuthorLabel != "Anonymous User" {
		t.Fatalf("unexpected review %+v", review)
	}

	list := svc.List(ctx, models.KindMovie, 603)
	if len(list) != 1 || list[0].Text != "Still holds up." {
		t.Fatalf("unexpected list %v", list)
	}

	// Personal record persisted for edit recall.
	mine, found := svc.MyReview(ctx, models.KindMovie, 603)
	if !found || mine.Rating != 5 || mine.Text != "Still holds up." {
		t.Fatalf("unexpected my-review %+v found=%v", mine, found)
	}
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	cases := []Input{
		{Kind: models.KindMovie, ItemID: 1, Rating: 0, Text: "no rating"},
		{Kind: models.KindMovie, ItemID: 1, Rating: 6, Text: "too high"},
		{Kind: models.KindMovie, ItemID: 1, Rating: 3, Text: ""},
		{Kind: models.KindMovie, ItemID: 1, Rating: 3, Text: "   \n\t "},
		{Kind: "episode", ItemID: 1, Rating: 3, Text: "bad kind"},
	}
	for _, input := range cases {
		if _, err := svc.Submit(ctx, input); !errors.Is(err, ErrValidation) {
			t.Fatalf("Submit(%+v) expected ErrValidation, got %v", input, err)
		}
	}

	// Rejected submissions must not touch persisted state.
	if list := svc.List(ctx, models.KindMovie, 1); len(list) != 0 {
		t.Fatalf("validation failure leaked into storage: %v", list)
	}
}

func TestReviewsScopedByKindAndItem(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	mustSubmit(t, svc, models.KindMovie, 42, "movie review")
	mustSubmit(t, svc, models.KindSeries, 42, "series review")

	if list := svc.List(ctx, models.KindMovie, 42); len(list) != 1 || list[0].Text != "movie review" {
		t.Fatalf("movie reviews polluted: %v", list)
	}
	if list := svc.List(ctx, models.KindSeries, 42); len(list) != 1 || list[0].Text != "series review" {
		t.Fatalf("series reviews polluted: %v", list)
	}
}

func TestMarkHelpful(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	review := mustSubmit(t, svc, models.KindMovie, 1, "helpful one")

	updated, err := svc.MarkHelpful(ctx, models.KindMovie, 1, review.ID)
	if err != nil {
		t.Fatalf("MarkHelpful() error = %v", err)
	}
	if updated.HelpfulCount != 1 {
		t.Fatalf("expected count 1, got %d", updated.HelpfulCount)
	}

	if _, err := svc.MarkHelpful(ctx, models.KindMovie, 1, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for _, rating := range []int{5, 4, 4} {
		if _, err := svc.Submit(ctx, Input{Kind: models.KindMovie, ItemID: 9, Rating: rating, Text: "r"}); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	summary := svc.Summary(ctx, models.KindMovie, 9)
	if summary.Count != 3 {
		t.Fatalf("unexpected count %d", summary.Count)
	}
	if summary.Distribution[4] != 2 || summary.Distribution[5] != 1 {
		t.Fatalf("unexpected distribution %v", summary.Distribution)
	}
	if summary.Average < 4.32 || summary.Average > 4.34 {
		t.Fatalf("unexpected average %f", summary.Average)
	}
}

func mustSubmit(t *testing.T, svc *Service, kind models.Kind, itemID int64, text string) models.Review {
	t.Helper()
	review, err := svc.Submit(context.Background(), Input{Kind: kind, ItemID: itemID, Rating: 4, Text: text})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	return review
}

func TestSubmitTrimsText(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	review, err := svc.Submit(ctx, Input{Kind: models.KindMovie, ItemID: 3, Rating: 4, Text: "  great watch  ", AuthorLabel: " Pat "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.Text != "great watch" {
		t.Fatalf("expected trimmed text, got %q", review.Text)
	}
	if review.AuthorLabel != "Pat" {
		t.Fatalf("expected trimmed author, got %q", review.AuthorLabel)
	}
}
