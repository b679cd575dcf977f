package service

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
	"github.com/actuallystonmai/series-analyzer/internal/stats"
)

// Statistics groups every stored series by attribute.
func (s *Service) Statistics(ctx context.Context, attribute string) (stats.Document, error) {
	attr, err := stats.ParseAttribute(attribute)
	if err != nil {
		return stats.Document{}, err
	}
	records, err := s.repo.SearchSeries(ctx, domain.SeriesFilter{})
	if err != nil {
		return stats.Document{}, fmt.Errorf("fetch statistics records: %w", err)
	}
	table, err := stats.Aggregate(records, string(attr))
	if err != nil {
		return stats.Document{}, err
	}
	return stats.NewDocument(attr, table), nil
}
