package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
	"github.com/actuallystonmai/series-analyzer/internal/report"
	"github.com/go-chi/chi/v5"
)

// POST /api/v1/series/_report
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req domain.ReportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}
	res, err := h.service.GenerateReport(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if res.Handle != nil {
		writeJSON(w, http.StatusAccepted, res.Handle)
		return
	}
	writeReport(w, res.Report)
}

// GET /api/v1/series/_report/{jobID}
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.DownloadReport(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeReport(w, rep)
}

func writeReport(w http.ResponseWriter, rep *report.Report) {
	w.Header().Set("Content-Type", rep.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(rep.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(rep.Data)
}
