package router

import (
	"net/http"
	"time"

	"github.com/actuallystonmai/series-analyzer/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func Setup(h *handler.Handler, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/health", healthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/series", func(r chi.Router) {
			r.Get("/", h.ListSeries)
			r.Post("/", h.CreateSeries)
			r.Get("/top", h.TopSeries)
			r.Get("/search", h.SearchSeries)
			r.Post("/_list", h.ListSeriesPage)
			r.Post("/_report", h.GenerateReport)
			r.Get("/_report/{jobID}", h.DownloadReport)
			r.Post("/upload", h.UploadSeries)
			r.Get("/{id}", h.GetSeries)
			r.Put("/{id}", h.UpdateSeries)
			r.Delete("/{id}", h.DeleteSeries)
		})

		r.Route("/studios", func(r chi.Router) {
			r.Get("/", h.ListStudios)
			r.Post("/", h.CreateStudio)
			r.Put("/{id}", h.UpdateStudio)
			r.Delete("/{id}", h.DeleteStudio)
		})

		r.Get("/statistics/{attribute}", h.Statistics)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
