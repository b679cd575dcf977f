package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GET /api/v1/statistics/{attribute}?format=xml
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Statistics(r.Context(), chi.URLParam(r, "attribute"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if !strings.EqualFold(r.URL.Query().Get("format"), "xml") {
		writeJSON(w, http.StatusOK, doc)
		return
	}

	var buf bytes.Buffer
	if err := doc.WriteXML(&buf); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
