package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"streamhaven/models"
	"streamhaven/services/watchlist"
)

type watchlistService interface {
	List(ctx context.Context) []models.MediaItem
	Contains(ctx context.Context, id int64, kind models.Kind) bool
	Toggle(ctx context.Context, item models.MediaItem) []models.MediaItem
}

var _ watchlistService = (*watchlist.Service)(nil)

type WatchlistHandler struct {
	Service watchlistService
}

func NewWatchlistHandler(service watchlistService) *WatchlistHandler {
	return &WatchlistHandler{Service: service}
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.List(r.Context()))
}

// Toggle adds the item when absent and removes it when present, then returns
// the full updated list.
func (h *WatchlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var body models.MediaItem
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.ID <= 0 || !body.Kind.IsValid() {
		http.Error(w, "id and kind are required", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.Service.Toggle(r.Context(), body))
}

func (h *WatchlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"inWatchlist": h.Service.Contains(r.Context(), id, kind),
	})
}
