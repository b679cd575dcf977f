package service

import (
	"context"
	"time"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
	"github.com/actuallystonmai/series-analyzer/internal/jobstore"
	"github.com/actuallystonmai/series-analyzer/internal/report"
	"github.com/google/uuid"
)

const (
	defaultTopN = 5
	maxPageSize = 100
)

// Repository is the record store the service reads and writes.
type Repository interface {
	SearchSeries(ctx context.Context, f domain.SeriesFilter) ([]domain.Series, error)
	ListSeriesPage(ctx context.Context, f domain.SeriesFilter, p domain.PageRequest) (*domain.SeriesPage, error)
	TopSeries(ctx context.Context, n int) ([]domain.Series, error)
	FindSeriesByTitle(ctx context.Context, query string) (*domain.Series, error)
	GetSeries(ctx context.Context, id int64) (*domain.Series, error)
	CreateSeries(ctx context.Context, s *domain.Series) error
	UpdateSeries(ctx context.Context, s *domain.Series) error
	DeleteSeries(ctx context.Context, id int64) error

	ListStudios(ctx context.Context) ([]domain.Studio, error)
	GetStudio(ctx context.Context, id int64) (*domain.Studio, error)
	FindStudioByName(ctx context.Context, name string) (*domain.Studio, error)
	CreateStudio(ctx context.Context, st *domain.Studio) error
	UpdateStudio(ctx context.Context, st *domain.Studio) error
	DeleteStudio(ctx context.Context, id int64) error
}

type Options struct {
	// ReportBasePath prefixes the download URL of async reports.
	ReportBasePath string
	NewID          func() string
	Now            func() time.Time
}

type Service struct {
	repo     Repository
	jobs     jobstore.Store
	renderer *report.Renderer
	basePath string
	newID    func() string
	now      func() time.Time
}

func NewService(repo Repository, jobs jobstore.Store, renderer *report.Renderer, opts Options) *Service {
	s := &Service{
		repo:     repo,
		jobs:     jobs,
		renderer: renderer,
		basePath: opts.ReportBasePath,
		newID:    opts.NewID,
		now:      opts.Now,
	}
	if s.renderer == nil {
		s.renderer = report.NewRenderer()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}
