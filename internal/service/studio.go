package service

import (
	"context"
	"errors"
	"strings"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

func (s *Service) ListStudios(ctx context.Context) ([]domain.Studio, error) {
	return s.repo.ListStudios(ctx)
}

// CreateStudio fails with ErrStudioExists when the name is taken, ignoring case.
func (s *Service) CreateStudio(ctx context.Context, in domain.StudioInput) (*domain.Studio, error) {
	if err := validateStudio(in).OrNil(); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}
	st := domain.Studio{Name: strings.TrimSpace(in.Name), Country: strings.TrimSpace(in.Country)}
	if err := s.repo.CreateStudio(ctx, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) UpdateStudio(ctx context.Context, id int64, in domain.StudioInput) (*domain.Studio, error) {
	if err := validateStudio(in).OrNil(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetStudio(ctx, id); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, id); err != nil {
		return nil, err
	}
	st := domain.Studio{ID: id, Name: strings.TrimSpace(in.Name), Country: strings.TrimSpace(in.Country)}
	if err := s.repo.UpdateStudio(ctx, &st); err != nil {
		return nil, err
	}
	return s.repo.GetStudio(ctx, id)
}

func (s *Service) DeleteStudio(ctx context.Context, id int64) error {
	return s.repo.DeleteStudio(ctx, id)
}

// ensureNameFree allows the name to belong to studio self.
func (s *Service) ensureNameFree(ctx context.Context, name string, self int64) error {
	existing, err := s.repo.FindStudioByName(ctx, strings.TrimSpace(name))
	switch {
	case errors.Is(err, domain.ErrStudioNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return domain.ErrStudioExists
	default:
		return nil
	}
}
