package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"streamhaven/models"
	"streamhaven/services/catalog"
)

type catalogService interface {
	HomeSections(ctx context.Context) (models.HomeSections, error)
	Detail(ctx context.Context, kind models.Kind, id int64) (*models.Detail, error)
	Related(ctx context.Context, kind models.Kind, id int64) (models.Batch, error)
	Season(ctx context.Context, seriesID int64, seasonNumber int) (*models.SeasonDetail, error)
	Trailer(ctx context.Context, kind models.Kind, id int64) (*models.Trailer, error)
}

var _ catalogService = (*catalog.Client)(nil)

type CatalogHandler struct {
	Service catalogService
}

func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

// Home serves the dashboard rows. Rows whose upstream fetch failed come back
// empty rather than failing the whole response.
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	sections, err := h.Service.HomeSections(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}
	detail, err := h.Service.Detail(r.Context(), kind, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *CatalogHandler) Related(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}
	batch, err := h.Service.Related(r.Context(), kind, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func (h *CatalogHandler) Season(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	seriesID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || seriesID <= 0 {
		http.Error(w, "invalid series id", http.StatusBadRequest)
		return
	}
	seasonNumber, err := strconv.Atoi(vars["season"])
	if err != nil || seasonNumber < 1 {
		http.Error(w, "invalid season number", http.StatusBadRequest)
		return
	}
	season, err := h.Service.Season(r.Context(), seriesID, seasonNumber)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

// Trailer serves the selected promotional video for a title; 404 when the
// title has none.
func (h *CatalogHandler) Trailer(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}
	trailer, err := h.Service.Trailer(r.Context(), kind, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNoTrailer) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, trailer)
}

// Genres serves the static genre filter list for a kind.
func (h *CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(mux.Vars(r)["kind"])
	if !ok {
		http.Error(w, "invalid media kind", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, catalog.GenresFor(kind))
}

// parseKind maps URL path segments to a Kind. The catalog upstream calls
// series "tv", so both spellings are accepted.
func parseKind(raw string) (models.Kind, bool) {
	switch raw {
	case "movie":
		return models.KindMovie, true
	case "series", "tv":
		return models.KindSeries, true
	}
	return "", false
}

func mediaVars(w http.ResponseWriter, r *http.Request) (models.Kind, int64, bool) {
	vars := mux.Vars(r)
	kind, ok := parseKind(vars["kind"])
	if !ok {
		http.Error(w, "invalid media kind", http.StatusBadRequest)
		return "", 0, false
	}
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid media id", http.StatusBadRequest)
		return "", 0, false
	}
	return kind, id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
