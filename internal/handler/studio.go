package handler

import (
	"net/http"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

// GET /api/v1/studios
func (h *Handler) ListStudios(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListStudios(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// POST /api/v1/studios
func (h *Handler) CreateStudio(w http.ResponseWriter, r *http.Request) {
	var in domain.StudioInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}
	st, err := h.service.CreateStudio(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

// PUT /api/v1/studios/{id}
func (h *Handler) UpdateStudio(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid id parameter")
		return
	}
	var in domain.StudioInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}
	st, err := h.service.UpdateStudio(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// DELETE /api/v1/studios/{id}
func (h *Handler) DeleteStudio(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid id parameter")
		return
	}
	if err := h.service.DeleteStudio(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
