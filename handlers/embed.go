package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"streamhaven/services/embed"
)

type EmbedHandler struct{}

func NewEmbedHandler() *EmbedHandler {
	return &EmbedHandler{}
}

// Sources lists the playable provider URLs for an item. For series the
// season and episode query params select the episode, defaulting to S1E1.
func (h *EmbedHandler) Sources(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := mediaVars(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	season, _ := strconv.Atoi(q.Get("season"))
	episode, _ := strconv.Atoi(q.Get("episode"))

	sources, err := embed.Sources(kind, id, season, episode)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, embed.ErrItemRequired) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sources": sources})
}
