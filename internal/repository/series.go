package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

const seriesSelect = `
	SELECT s.id, s.title, s.genre, s.seasons, s.rating, s.year, s.finished,
		s.studio_id, s.created_at, st.id, st.name, st.country, st.created_at
	FROM series s
	LEFT JOIN studios st ON st.id = s.studio_id`

// scanSeries reads one row of seriesSelect. The studio columns are
// nullable because of the outer join.
func scanSeries(r row) (domain.Series, error) {
	var (
		s         domain.Series
		studioRef *int64
		stID      *int64
		stName    *string
		stCountry *string
		stCreated *time.Time
	)
	if err := r.Scan(
		&s.ID, &s.Title, &s.Genre, &s.Seasons, &s.Rating, &s.Year, &s.Finished,
		&studioRef, &s.CreatedAt, &stID, &stName, &stCountry, &stCreated,
	); err != nil {
		return domain.Series{}, err
	}
	if studioRef != nil {
		s.StudioID = *studioRef
	}
	if stID != nil {
		st := &domain.Studio{ID: *stID}
		if stName != nil {
			st.Name = *stName
		}
		if stCountry != nil {
			st.Country = *stCountry
		}
		if stCreated != nil {
			st.CreatedAt = *stCreated
		}
		s.Studio = st
	}
	return s, nil
}

func (r *Repository) collectSeries(ctx context.Context, q string, args ...any) ([]domain.Series, error) {
	rs, err := r.conn.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	list := []domain.Series{}
	for rs.Next() {
		s, err := scanSeries(rs)
		if err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		list = append(list, s)
	}
	if err := rs.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// SearchSeries returns every series matching f, ordered by id.
func (r *Repository) SearchSeries(ctx context.Context, f domain.SeriesFilter) ([]domain.Series, error) {
	w := seriesWhere(f)
	list, err := r.collectSeries(ctx, seriesSelect+w.String()+" ORDER BY s.id ASC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("search series: %w", err)
	}
	return list, nil
}

func (r *Repository) ListSeriesPage(ctx context.Context, f domain.SeriesFilter, p domain.PageRequest) (*domain.SeriesPage, error) {
	p = p.Normalize()
	w := seriesWhere(f)

	var total int
	if err := r.conn.queryRow(ctx, `SELECT COUNT(*) FROM series s`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count series page: %w", err)
	}

	q := seriesSelect + w.String() + orderBy(p)
	q += " LIMIT " + w.next(p.Size)
	q += " OFFSET " + w.next(p.Offset())

	list, err := r.collectSeries(ctx, q, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list series page: %w", err)
	}
	return &domain.SeriesPage{List: list, TotalPages: domain.TotalPages(total, p.Size)}, nil
}

// TopSeries returns the n best-rated series.
func (r *Repository) TopSeries(ctx context.Context, n int) ([]domain.Series, error) {
	list, err := r.collectSeries(ctx, seriesSelect+" ORDER BY s.rating DESC, s.id ASC LIMIT $1", n)
	if err != nil {
		return nil, fmt.Errorf("top series: %w", err)
	}
	return list, nil
}

// FindSeriesByTitle returns the first series whose title contains query,
// ignoring case.
func (r *Repository) FindSeriesByTitle(ctx context.Context, query string) (*domain.Series, error) {
	q := seriesSelect + ` WHERE LOWER(s.title) LIKE $1 ESCAPE '\' ORDER BY s.id ASC LIMIT 1`
	s, err := scanSeries(r.conn.queryRow(ctx, q, likePattern(query)))
	if err != nil {
		if errors.Is(err, errNoRows) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, fmt.Errorf("find series by title: %w", err)
	}
	return &s, nil
}

func (r *Repository) GetSeries(ctx context.Context, id int64) (*domain.Series, error) {
	s, err := scanSeries(r.conn.queryRow(ctx, seriesSelect+" WHERE s.id = $1", id))
	if err != nil {
		if errors.Is(err, errNoRows) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, fmt.Errorf("get series %d: %w", id, err)
	}
	return &s, nil
}

// CreateSeries inserts s and fills its ID and CreatedAt.
func (r *Repository) CreateSeries(ctx context.Context, s *domain.Series) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	err := r.conn.queryRow(ctx, `
		INSERT INTO series (title, genre, seasons, rating, year, finished, studio_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		s.Title, s.Genre, s.Seasons, s.Rating, s.Year, s.Finished, nullableID(s.StudioID), s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert series: %w", err)
	}
	return nil
}

func (r *Repository) UpdateSeries(ctx context.Context, s *domain.Series) error {
	n, err := r.conn.exec(ctx, `
		UPDATE series
		SET title = $1, genre = $2, seasons = $3, rating = $4, year = $5, finished = $6, studio_id = $7
		WHERE id = $8`,
		s.Title, s.Genre, s.Seasons, s.Rating, s.Year, s.Finished, nullableID(s.StudioID), s.ID,
	)
	if err != nil {
		return fmt.Errorf("update series %d: %w", s.ID, err)
	}
	if n == 0 {
		return domain.ErrSeriesNotFound
	}
	return nil
}

func (r *Repository) DeleteSeries(ctx context.Context, id int64) error {
	n, err := r.conn.exec(ctx, `DELETE FROM series WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete series %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrSeriesNotFound
	}
	return nil
}

func nullableID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
