package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"streamhaven/models"
	"streamhaven/services/reviews"
)

type stubReviews struct {
	byItem map[string][]models.Review
	mine   map[string]models.MyReview
}

func newStubReviews() *stubReviews {
	return &stubReviews{
		byItem: make(map[string][]models.Review),
		mine:   make(map[string]models.MyReview),
	}
}

func itemKey(kind models.Kind, id int64) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

func (s *stubReviews) Submit(ctx context.Context, input reviews.Input) (models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 || input.Text == "" {
		return models.Review{}, reviews.ErrValidation
	}
	review := models.Review{ID: "r1", Kind: input.Kind, ItemID: input.ItemID, Rating: input.Rating, Text: input.Text}
	key := itemKey(input.Kind, input.ItemID)
	s.byItem[key] = append([]models.Review{review}, s.byItem[key]...)
	s.mine[key] = models.MyReview{Rating: input.Rating, Text: input.Text}
	return review, nil
}

func (s *stubReviews) List(ctx context.Context, kind models.Kind, itemID int64) []models.Review {
	return s.byItem[itemKey(kind, itemID)]
}

func (s *stubReviews) MyReview(ctx context.Context, kind models.Kind, itemID int64) (models.MyReview, bool) {
	mine, ok := s.mine[itemKey(kind, itemID)]
	return mine, ok
}

func (s *stubReviews) MarkHelpful(ctx context.Context, kind models.Kind, itemID int64, reviewID string) (models.Review, error) {
	for i, review := range s.byItem[itemKey(kind, itemID)] {
		if review.ID == reviewID {
			review.HelpfulCount++
			s.byItem[itemKey(kind, itemID)][i] = review
			return review, nil
		}
	}
	return models.Review{}, reviews.ErrNotFound
}

func (s *stubReviews) Summary(ctx context.Context, kind models.Kind, itemID int64) models.ReviewSummary {
	return models.ReviewSummary{Count: len(s.byItem[itemKey(kind, itemID)])}
}

func reviewsRouter(svc reviewsService) *mux.Router {
	h := NewReviewsHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/reviews/{kind}/{id:[0-9]+}", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/reviews/{kind}/{id:[0-9]+}", h.Submit).Methods(http.MethodPost)
	r.HandleFunc("/api/reviews/{kind}/{id:[0-9]+}/mine", h.Mine).Methods(http.MethodGet)
	r.HandleFunc("/api/reviews/{kind}/{id:[0-9]+}/{reviewID}/helpful", h.MarkHelpful).Methods(http.MethodPost)
	return r
}

func TestSubmitAndListReviews(t *testing.T) {
	router := reviewsRouter(newStubReviews())

	body := `{"rating":4,"text":"Tense and lean."}`
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/movie/550", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/reviews/movie/550", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Reviews []models.Review      `json:"reviews"`
		Summary models.ReviewSummary `json:"summary"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Reviews) != 1 || resp.Summary.Count != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	router := reviewsRouter(newStubReviews())

	req := httptest.NewRequest(http.MethodPost, "/api/reviews/movie/550", strings.NewReader(`{"rating":9,"text":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMineNotFound(t *testing.T) {
	router := reviewsRouter(newStubReviews())

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/movie/550/mine", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMarkHelpful(t *testing.T) {
	svc := newStubReviews()
	svc.byItem["movie-550"] = []models.Review{{ID: "r9", Kind: models.KindMovie, ItemID: 550}}
	router := reviewsRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews/movie/550/r9/helpful", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var review models.Review
	if err := json.NewDecoder(rec.Body).Decode(&review); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if review.HelpfulCount != 1 {
		t.Fatalf("expected helpful count 1, got %d", review.HelpfulCount)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/reviews/movie/550/ghost/helpful", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown review, got %d", rec.Code)
	}
}
