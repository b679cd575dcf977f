package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
	"github.com/actuallystonmai/series-analyzer/internal/logger"
	"github.com/actuallystonmai/series-analyzer/internal/service"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// writeServiceError maps an error from the service layer to a status code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *domain.ValidationError
		render *domain.RenderError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: verr.Error(),
			Fields:  verr.Fields,
		})
		return
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "Request timed out, please try again")
		return
	case errors.As(err, &render):
		logger.Log.WithError(err).WithField("path", r.URL.Path).Error("report rendering failed")
		writeError(w, http.StatusInternalServerError, "render_failed", render.Error())
		return
	}

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case domain.KindConflict:
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case domain.KindBadInput:
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
	default:
		logger.Log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
