package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

const studioSelect = `SELECT id, name, country, created_at FROM studios`

func scanStudio(r row) (domain.Studio, error) {
	var st domain.Studio
	err := r.Scan(&st.ID, &st.Name, &st.Country, &st.CreatedAt)
	return st, err
}

func (r *Repository) ListStudios(ctx context.Context) ([]domain.Studio, error) {
	rs, err := r.conn.query(ctx, studioSelect+" ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("query studios: %w", err)
	}
	defer rs.Close()

	list := []domain.Studio{}
	for rs.Next() {
		st, err := scanStudio(rs)
		if err != nil {
			return nil, fmt.Errorf("scan studio: %w", err)
		}
		list = append(list, st)
	}
	if err := rs.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) GetStudio(ctx context.Context, id int64) (*domain.Studio, error) {
	return r.oneStudio(ctx, studioSelect+" WHERE id = $1", id)
}

// FindStudioByName matches the whole name, ignoring case.
func (r *Repository) FindStudioByName(ctx context.Context, name string) (*domain.Studio, error) {
	return r.oneStudio(ctx, studioSelect+" WHERE LOWER(name) = LOWER($1)", name)
}

func (r *Repository) oneStudio(ctx context.Context, q string, arg any) (*domain.Studio, error) {
	st, err := scanStudio(r.conn.queryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, errNoRows) {
			return nil, domain.ErrStudioNotFound
		}
		return nil, fmt.Errorf("get studio: %w", err)
	}
	return &st, nil
}

func (r *Repository) CreateStudio(ctx context.Context, st *domain.Studio) error {
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}
	err := r.conn.queryRow(ctx, `
		INSERT INTO studios (name, country, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		st.Name, st.Country, st.CreatedAt,
	).Scan(&st.ID)
	if err != nil {
		return fmt.Errorf("insert studio: %w", err)
	}
	return nil
}

func (r *Repository) UpdateStudio(ctx context.Context, st *domain.Studio) error {
	n, err := r.conn.exec(ctx, `UPDATE studios SET name = $1, country = $2 WHERE id = $3`,
		st.Name, st.Country, st.ID)
	if err != nil {
		return fmt.Errorf("update studio %d: %w", st.ID, err)
	}
	if n == 0 {
		return domain.ErrStudioNotFound
	}
	return nil
}

func (r *Repository) DeleteStudio(ctx context.Context, id int64) error {
	n, err := r.conn.exec(ctx, `DELETE FROM studios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete studio %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrStudioNotFound
	}
	return nil
}
