package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"streamhaven/models"
	"streamhaven/services/history"
)

type historyService interface {
	List(ctx context.Context) []models.ContinueWatchingItem
	RecordProgress(ctx context.Context, item models.MediaItem, watchedSeconds int) []models.ContinueWatchingItem
	Remove(ctx context.Context, item models.MediaItem) []models.ContinueWatchingItem
}

var _ historyService = (*history.Service)(nil)

type HistoryHandler struct {
	Service historyService
	Tracker *history.Tracker
}

func NewHistoryHandler(service historyService, tracker *history.Tracker) *HistoryHandler {
	return &HistoryHandler{Service: service, Tracker: tracker}
}

// List serves the continue-watching shelf, most recent first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.List(r.Context()))
}

// Progress records a playback position and returns the updated shelf.
func (h *HistoryHandler) Progress(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Item           models.MediaItem `json:"item"`
		WatchedSeconds int              `json:"watchedSeconds"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Item.ID <= 0 || !body.Item.Kind.IsValid() {
		http.Error(w, "item id and kind are required", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.Service.RecordProgress(r.Context(), body.Item, body.WatchedSeconds))
}

// PlaybackStart opens a tracked playback session. The tracker keeps flushing
// progress after this request returns, so it runs on its own context rather
// than the request's.
func (h *HistoryHandler) PlaybackStart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Item         models.MediaItem `json:"item"`
		StartSeconds int              `json:"startSeconds"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Item.ID <= 0 || !body.Item.Kind.IsValid() {
		http.Error(w, "item id and kind are required", http.StatusBadRequest)
		return
	}

	h.Tracker.Start(context.Background(), body.Item, body.StartSeconds)
	w.WriteHeader(http.StatusNoContent)
}

// PlaybackAdvance reports the current playback position for the open session.
func (h *HistoryHandler) PlaybackAdvance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Seconds int `json:"seconds"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.Tracker.Advance(body.Seconds)
	w.WriteHeader(http.StatusNoContent)
}

// PlaybackStop closes the open session, flushes the final position, and
// returns the updated shelf. Stopping with no session open is a no-op.
func (h *HistoryHandler) PlaybackStop(w http.ResponseWriter, r *http.Request) {
	h.Tracker.Stop()
	writeJSON(w, http.StatusOK, h.Service.List(r.Context()))
}

// Remove drops an item from the shelf. Removing an absent item is a no-op.
func (h *HistoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Service.Remove(r.Context(), models.MediaItem{ID: id, Kind: kind}))
}
