package handler

import (
	"net/http"
	"strconv"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

// GET /api/v1/series
func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListSeries(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /api/v1/series/top?n=5
func (h *Handler) TopSeries(w http.ResponseWriter, r *http.Request) {
	n := 5
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid n parameter")
			return
		}
		n = parsed
	}
	list, err := h.service.TopSeries(r.Context(), n)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /api/v1/series/search?query=
func (h *Handler) SearchSeries(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.SearchByTitle(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GET /api/v1/series/{id}
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid id parameter")
		return
	}
	s, err := h.service.GetSeries(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// POST /api/v1/series
func (h *Handler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	var in domain.SeriesInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}
	s, err := h.service.CreateSeries(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// PUT /api/v1/series/{id}
func (h *Handler) UpdateSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid id parameter")
		return
	}
	var in domain.SeriesInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}
	s, err := h.service.UpdateSeries(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// DELETE /api/v1/series/{id}
func (h *Handler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid id parameter")
		return
	}
	if err := h.service.DeleteSeries(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/series/_list
func (h *Handler) ListSeriesPage(w http.ResponseWriter, r *http.Request) {
	var req ListRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}
	page, err := h.service.ListSeriesPage(r.Context(), req.SeriesFilter, req.PageRequest)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// POST /api/v1/series/upload, multipart field "file"
func (h *Handler) UploadSeries(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "File is required")
		return
	}
	defer file.Close()

	res, err := h.service.ImportSeries(r.Context(), file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
