package seeds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
	"github.com/actuallystonmai/series-analyzer/internal/loader"
	"github.com/actuallystonmai/series-analyzer/internal/logger"
)

// Store is the part of the repository seeding writes to.
type Store interface {
	FindStudioByName(ctx context.Context, name string) (*domain.Studio, error)
	CreateStudio(ctx context.Context, st *domain.Studio) error
	CreateSeries(ctx context.Context, s *domain.Series) error
}

// Setup loads every record under dir and inserts it. Studios are matched by
// name, ignoring case, and created on first sight. It returns the number of
// series inserted.
func Setup(ctx context.Context, store Store, dir string, workers int) (int, error) {
	logger.Log.Infof("[seed] loading records from %s", dir)
	records, err := loader.LoadFolder(dir, workers)
	if err != nil {
		return 0, err
	}

	studios := map[string]int64{}
	for i := range records {
		s := records[i]
		if s.Studio != nil && strings.TrimSpace(s.Studio.Name) != "" {
			id, err := studioID(ctx, store, studios, *s.Studio)
			if err != nil {
				return i, fmt.Errorf("seed studio %q: %w", s.Studio.Name, err)
			}
			s.StudioID = id
		}
		s.ID = 0
		s.Studio = nil
		if err := store.CreateSeries(ctx, &s); err != nil {
			return i, fmt.Errorf("seed series %q: %w", s.Title, err)
		}
	}

	logger.Log.Infof("[seed] inserted %d series and %d studios", len(records), len(studios))
	return len(records), nil
}

func studioID(ctx context.Context, store Store, seen map[string]int64, st domain.Studio) (int64, error) {
	key := strings.ToLower(strings.TrimSpace(st.Name))
	if id, ok := seen[key]; ok {
		return id, nil
	}

	existing, err := store.FindStudioByName(ctx, strings.TrimSpace(st.Name))
	switch {
	case err == nil:
		seen[key] = existing.ID
		return existing.ID, nil
	case !errors.Is(err, domain.ErrStudioNotFound):
		return 0, err
	}

	created := domain.Studio{Name: strings.TrimSpace(st.Name), Country: st.Country}
	if err := store.CreateStudio(ctx, &created); err != nil {
		return 0, err
	}
	seen[key] = created.ID
	return created.ID, nil
}
