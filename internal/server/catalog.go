package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixdeck/internal/services"
	"github.com/desertthunder/mixdeck/internal/shared"
)

const maxBodyBytes = 1 << 20

// CreateMixRequest is the body of POST /mixes.
type CreateMixRequest struct {
	FirstSongID  int64  `json:"first_song_id"`
	SecondSongID int64  `json:"second_song_id"`
	Notes        string `json:"notes"`
}

// UpdateMixRequest is the body of PATCH /mixes/{id}.
type UpdateMixRequest struct {
	Notes *string `json:"notes"`
}

// CreateMixResponse is returned by POST /mixes.
type CreateMixResponse struct {
	ID int64 `json:"id"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Songs  int    `json:"songs"`
	Mixes  int    `json:"mixes"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CatalogHandler serves the catalog routes. Implements [Handler].
type CatalogHandler struct {
	catalog services.Catalog
	logger  *log.Logger
	mux     *http.ServeMux
}

// NewCatalogHandler creates a CatalogHandler over catalog.
func NewCatalogHandler(catalog services.Catalog, logger *log.Logger) *CatalogHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	h := &CatalogHandler{
		catalog: catalog,
		logger:  shared.WithLogger(logger, "component", "http"),
		mux:     http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /health", h.health)
	h.mux.HandleFunc("GET /songs", h.searchSongs)
	h.mux.HandleFunc("GET /songs/{id}", h.getSong)
	h.mux.HandleFunc("GET /mixes", h.searchMixes)
	h.mux.HandleFunc("GET /mixes/{id}", h.getMix)
	h.mux.HandleFunc("POST /mixes", h.createMix)
	h.mux.HandleFunc("PATCH /mixes/{id}", h.updateMix)
	h.mux.HandleFunc("DELETE /mixes/{id}", h.deleteMix)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *CatalogHandler) Routes() []string {
	return []string{
		"GET /health",
		"GET /songs",
		"GET /songs/{id}",
		"GET /mixes",
		"POST /mixes",
		"GET /mixes/{id}",
		"PATCH /mixes/{id}",
		"DELETE /mixes/{id}",
	}
}

// ServeHTTP dispatches to the route handlers.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *CatalogHandler) health(w http.ResponseWriter, r *http.Request) {
	songs, err := h.catalog.CountSongs(r.Context())
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	mixes, err := h.catalog.CountMixes(r.Context())
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Songs: songs, Mixes: mixes})
}

func (h *CatalogHandler) searchSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.catalog.SearchSongs(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(songs))
}

func (h *CatalogHandler) getSong(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	song, err := h.catalog.GetSong(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (h *CatalogHandler) searchMixes(w http.ResponseWriter, r *http.Request) {
	mixes, err := h.catalog.SearchMixesBySongTerm(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(mixes))
}

func (h *CatalogHandler) getMix(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	mix, err := h.catalog.GetMix(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mix)
}

func (h *CatalogHandler) createMix(w http.ResponseWriter, r *http.Request) {
	var req CreateMixRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeCatalogError(w, err)
		return
	}

	id, err := h.catalog.CreateMix(r.Context(), req.FirstSongID, req.SecondSongID, req.Notes)
	if errors.Is(err, shared.ErrSongNotFound) {
		writeError(w, http.StatusUnprocessableEntity, shared.ErrSongNotFound.Error())
		return
	}
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/mixes/%d", id))
	writeJSON(w, http.StatusCreated, CreateMixResponse{ID: id})
}

func (h *CatalogHandler) updateMix(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	var req UpdateMixRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeCatalogError(w, err)
		return
	}
	if req.Notes == nil {
		h.writeCatalogError(w, fmt.Errorf("%w: notes is required", shared.ErrInvalidInput))
		return
	}

	if err := h.catalog.UpdateMixNotes(r.Context(), id, *req.Notes); err != nil {
		h.writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) deleteMix(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	if err := h.catalog.DeleteMix(r.Context(), id); err != nil {
		h.writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCatalogError maps catalog errors to status codes.
// Store failures are logged and answered with a generic message.
func (h *CatalogHandler) writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrSongNotFound):
		writeError(w, http.StatusNotFound, shared.ErrSongNotFound.Error())
	case errors.Is(err, shared.ErrMixNotFound):
		writeError(w, http.StatusNotFound, shared.ErrMixNotFound.Error())
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, shared.ErrQueryFailed.Error())
	}
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", shared.ErrInvalidInput)
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", shared.ErrInvalidInput)
		}
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

var _ Handler = (*CatalogHandler)(nil)
