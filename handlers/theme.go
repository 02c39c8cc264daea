package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"streamhaven/services/theme"
)

type themeService interface {
	Get(ctx context.Context) string
	Set(ctx context.Context, value string) error
}

var _ themeService = (*theme.Service)(nil)

type ThemeHandler struct {
	Service themeService
}

func NewThemeHandler(service themeService) *ThemeHandler {
	return &ThemeHandler{Service: service}
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"theme": h.Service.Get(r.Context())})
}

func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.Set(r.Context(), body.Theme); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, theme.ErrUnknownTheme) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": h.Service.Get(r.Context())})
}
