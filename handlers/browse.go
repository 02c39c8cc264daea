package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"streamhaven/services/browse"
)

type browseController interface {
	Snapshot() browse.State
	SetSection(ctx context.Context, section browse.Section) (browse.State, error)
	SetGenre(ctx context.Context, genreID int64) browse.State
	SearchQuery(ctx context.Context, query string) browse.State
	GoToPage(ctx context.Context, page int) browse.State
	LoadMore(ctx context.Context) browse.State
}

var _ browseController = (*browse.Controller)(nil)

type BrowseHandler struct {
	Controller browseController
}

func NewBrowseHandler(controller browseController) *BrowseHandler {
	return &BrowseHandler{Controller: controller}
}

// Snapshot serves the current browse state without triggering any fetch.
func (h *BrowseHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Controller.Snapshot())
}

// Navigate moves to a section, applying the optional genre, query and page
// parameters in that order. Search ignores genre and page; any navigation
// resets the accumulated list.
func (h *BrowseHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	section := browse.Section(mux.Vars(r)["section"])
	q := r.URL.Query()

	if section == browse.SectionSearch {
		query := q.Get("query")
		if query == "" {
			http.Error(w, "query parameter required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, h.Controller.SearchQuery(r.Context(), query))
		return
	}

	state, err := h.Controller.SetSection(r.Context(), section)
	if err != nil {
		if errors.Is(err, browse.ErrUnknownSection) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if raw := q.Get("genre"); raw != "" {
		genreID, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil {
			http.Error(w, "invalid genre id", http.StatusBadRequest)
			return
		}
		state = h.Controller.SetGenre(r.Context(), genreID)
	}
	if raw := q.Get("page"); raw != "" {
		page, convErr := strconv.Atoi(raw)
		if convErr != nil || page < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		state = h.Controller.GoToPage(r.Context(), page)
	}
	writeJSON(w, http.StatusOK, state)
}

// More is the infinite-scroll trigger. The response is whatever state the
// controller settles on; ignored triggers return the unchanged snapshot.
func (h *BrowseHandler) More(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Controller.LoadMore(r.Context()))
}
