package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"streamhaven/models"
	"streamhaven/services/reviews"
)

type reviewsService interface {
	Submit(ctx context.Context, input reviews.Input) (models.Review, error)
	List(ctx context.Context, kind models.Kind, itemID int64) []models.Review
	MyReview(ctx context.Context, kind models.Kind, itemID int64) (models.MyReview, bool)
	MarkHelpful(ctx context.Context, kind models.Kind, itemID int64, reviewID string) (models.Review, error)
	Summary(ctx context.Context, kind models.Kind, itemID int64) models.ReviewSummary
}

var _ reviewsService = (*reviews.Service)(nil)

type ReviewsHandler struct {
	Service reviewsService
}

func NewReviewsHandler(service reviewsService) *ReviewsHandler {
	return &ReviewsHandler{Service: service}
}

// List returns the item's reviews (newest first) together with the rating
// summary so clients render both from one request.
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reviews": h.Service.List(r.Context(), kind, id),
		"summary": h.Service.Summary(r.Context(), kind, id),
	})
}

func (h *ReviewsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}

	var body struct {
		Rating      int    `json:"rating"`
		Text        string `json:"text"`
		AuthorLabel string `json:"authorLabel"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.Service.Submit(r.Context(), reviews.Input{
		Kind:        kind,
		ItemID:      id,
		Rating:      body.Rating,
		Text:        body.Text,
		AuthorLabel: body.AuthorLabel,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, reviews.ErrValidation) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// Mine returns the caller's own last review of the item, used to pre-fill the
// review form.
func (h *ReviewsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}
	mine, found := h.Service.MyReview(r.Context(), kind, id)
	if !found {
		http.Error(w, "no review yet", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mine)
}

func (h *ReviewsHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}
	reviewID := mux.Vars(r)["reviewID"]

	review, err := h.Service.MarkHelpful(r.Context(), kind, id, reviewID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, reviews.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, review)
}
