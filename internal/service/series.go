package service

import (
	"context"
	"errors"
	"strings"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
	"github.com/actuallystonmai/series-analyzer/internal/logger"
)

func (s *Service) ListSeries(ctx context.Context) ([]domain.Series, error) {
	return s.repo.SearchSeries(ctx, domain.SeriesFilter{})
}

func (s *Service) ListSeriesPage(ctx context.Context, f domain.SeriesFilter, p domain.PageRequest) (*domain.SeriesPage, error) {
	p = p.Normalize()
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	if f.MinRating != nil && *f.MinRating < 0 {
		return nil, &domain.BadRequestError{Message: "minRating must be >= 0"}
	}
	return s.repo.ListSeriesPage(ctx, f, p)
}

// TopSeries returns the n best-rated series; n <= 0 uses the default.
func (s *Service) TopSeries(ctx context.Context, n int) ([]domain.Series, error) {
	if n <= 0 {
		n = defaultTopN
	}
	return s.repo.TopSeries(ctx, n)
}

func (s *Service) SearchByTitle(ctx context.Context, query string) (*domain.Series, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &domain.BadRequestError{Message: "query is required"}
	}
	return s.repo.FindSeriesByTitle(ctx, query)
}

func (s *Service) GetSeries(ctx context.Context, id int64) (*domain.Series, error) {
	return s.repo.GetSeries(ctx, id)
}

func (s *Service) CreateSeries(ctx context.Context, in domain.SeriesInput) (*domain.Series, error) {
	if err := s.checkSeries(ctx, in); err != nil {
		return nil, err
	}
	series := fromInput(in)
	if err := s.repo.CreateSeries(ctx, &series); err != nil {
		return nil, err
	}
	logger.Log.WithField("series_id", series.ID).Debug("series created")
	return s.repo.GetSeries(ctx, series.ID)
}

func (s *Service) UpdateSeries(ctx context.Context, id int64, in domain.SeriesInput) (*domain.Series, error) {
	if err := s.checkSeries(ctx, in); err != nil {
		return nil, err
	}
	series := fromInput(in)
	series.ID = id
	if err := s.repo.UpdateSeries(ctx, &series); err != nil {
		return nil, err
	}
	return s.repo.GetSeries(ctx, id)
}

func (s *Service) DeleteSeries(ctx context.Context, id int64) error {
	return s.repo.DeleteSeries(ctx, id)
}

// checkSeries runs the field rules, then confirms the studio exists.
func (s *Service) checkSeries(ctx context.Context, in domain.SeriesInput) error {
	verr := validateSeries(in, s.now())
	if in.StudioID != nil && *in.StudioID > 0 {
		if _, err := s.repo.GetStudio(ctx, *in.StudioID); err != nil {
			if !errors.Is(err, domain.ErrStudioNotFound) {
				return err
			}
			verr.Add("studioId", "studio does not exist")
		}
	}
	return verr.OrNil()
}

func fromInput(in domain.SeriesInput) domain.Series {
	series := domain.Series{
		Title:   strings.TrimSpace(in.Title),
		Genre:   strings.TrimSpace(in.Genre),
		Seasons: in.Seasons,
		Rating:  in.Rating,
		Year:    in.Year,
	}
	if in.Finished != nil {
		series.Finished = *in.Finished
	}
	if in.StudioID != nil {
		series.StudioID = *in.StudioID
	}
	return series
}
