package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

// Memory is a repository over an in-process list, usually filled from a
// folder of JSON files. It mirrors the SQL repository's semantics.
type Memory struct {
	mu           sync.RWMutex
	series       []domain.Series
	studios      []domain.Studio
	nextSeriesID int64
	nextStudioID int64
}

// NewMemory takes ownership of records. Studios embedded in the records are
// deduplicated by name and given ids.
func NewMemory(records []domain.Series) *Memory {
	m := &Memory{nextSeriesID: 1, nextStudioID: 1}
	now := time.Now().UTC()
	for _, s := range records {
		if s.Studio != nil {
			st, err := m.studioByName(s.Studio.Name)
			if err != nil {
				created := *s.Studio
				created.ID = m.nextStudioID
				if created.CreatedAt.IsZero() {
					created.CreatedAt = now
				}
				m.nextStudioID++
				m.studios = append(m.studios, created)
				st = &created
			}
			s.StudioID = st.ID
		}
		s.Studio = nil
		s.ID = m.nextSeriesID
		m.nextSeriesID++
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		m.series = append(m.series, s)
	}
	return m
}

func (m *Memory) Close() {}

func (m *Memory) CountSeries(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.series), nil
}

// resolve returns a copy of s with its studio attached. Caller holds the lock.
func (m *Memory) resolve(s domain.Series) domain.Series {
	s.Studio = nil
	if s.StudioID > 0 {
		if st, err := m.studioByID(s.StudioID); err == nil {
			s.Studio = st
		} else {
			s.StudioID = 0
		}
	}
	return s
}

func matches(s domain.Series, f domain.SeriesFilter) bool {
	if f.StudioID != nil && s.StudioID != *f.StudioID {
		return false
	}
	if f.MinRating != nil && s.Rating < *f.MinRating {
		return false
	}
	if f.Year != nil && s.Year != *f.Year {
		return false
	}
	if g := strings.TrimSpace(f.Genre); g != "" && !strings.Contains(strings.ToLower(s.Genre), strings.ToLower(g)) {
		return false
	}
	return true
}

func (m *Memory) filter(f domain.SeriesFilter) []domain.Series {
	list := []domain.Series{}
	for _, s := range m.series {
		if matches(s, f) {
			list = append(list, m.resolve(s))
		}
	}
	return list
}

func (m *Memory) SearchSeries(ctx context.Context, f domain.SeriesFilter) ([]domain.Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter(f), nil
}

func (m *Memory) ListSeriesPage(ctx context.Context, f domain.SeriesFilter, p domain.PageRequest) (*domain.SeriesPage, error) {
	p = p.Normalize()
	m.mu.RLock()
	list := m.filter(f)
	m.mu.RUnlock()

	slices.SortStableFunc(list, func(a, b domain.Series) int {
		c := compareColumn(a, b, p.SortBy)
		if p.Direction == "DESC" {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(list)
	lo := min(p.Offset(), total)
	hi := min(lo+p.Size, total)
	return &domain.SeriesPage{
		List:       slices.Clip(list[lo:hi]),
		TotalPages: domain.TotalPages(total, p.Size),
	}, nil
}

func compareColumn(a, b domain.Series, column string) int {
	switch column {
	case "title":
		return cmp.Compare(a.Title, b.Title)
	case "rating":
		return cmp.Compare(a.Rating, b.Rating)
	case "year":
		return cmp.Compare(a.Year, b.Year)
	case "seasons":
		return cmp.Compare(a.Seasons, b.Seasons)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}

func (m *Memory) TopSeries(ctx context.Context, n int) ([]domain.Series, error) {
	m.mu.RLock()
	list := m.filter(domain.SeriesFilter{})
	m.mu.RUnlock()

	slices.SortStableFunc(list, func(a, b domain.Series) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n < len(list) {
		list = list[:max(n, 0)]
	}
	return list, nil
}

func (m *Memory) FindSeriesByTitle(ctx context.Context, query string) (*domain.Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(query)
	for _, s := range m.series {
		if strings.Contains(strings.ToLower(s.Title), q) {
			found := m.resolve(s)
			return &found, nil
		}
	}
	return nil, domain.ErrSeriesNotFound
}

func (m *Memory) GetSeries(ctx context.Context, id int64) (*domain.Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.seriesIndex(id)
	if i < 0 {
		return nil, domain.ErrSeriesNotFound
	}
	s := m.resolve(m.series[i])
	return &s, nil
}

func (m *Memory) seriesIndex(id int64) int {
	return slices.IndexFunc(m.series, func(s domain.Series) bool { return s.ID == id })
}

func (m *Memory) CreateSeries(ctx context.Context, s *domain.Series) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.nextSeriesID
	m.nextSeriesID++
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	stored := *s
	stored.Studio = nil
	m.series = append(m.series, stored)
	return nil
}

func (m *Memory) UpdateSeries(ctx context.Context, s *domain.Series) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.seriesIndex(s.ID)
	if i < 0 {
		return domain.ErrSeriesNotFound
	}
	stored := *s
	stored.Studio = nil
	stored.CreatedAt = m.series[i].CreatedAt
	m.series[i] = stored
	return nil
}

func (m *Memory) DeleteSeries(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.seriesIndex(id)
	if i < 0 {
		return domain.ErrSeriesNotFound
	}
	m.series = slices.Delete(m.series, i, i+1)
	return nil
}

func (m *Memory) ListStudios(ctx context.Context) ([]domain.Studio, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Studio{}, m.studios...), nil
}

func (m *Memory) GetStudio(ctx context.Context, id int64) (*domain.Studio, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.studioByID(id)
}

func (m *Memory) FindStudioByName(ctx context.Context, name string) (*domain.Studio, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.studioByName(name)
}

func (m *Memory) studioByID(id int64) (*domain.Studio, error) {
	for _, st := range m.studios {
		if st.ID == id {
			return &st, nil
		}
	}
	return nil, domain.ErrStudioNotFound
}

func (m *Memory) studioByName(name string) (*domain.Studio, error) {
	for _, st := range m.studios {
		if strings.EqualFold(st.Name, name) {
			return &st, nil
		}
	}
	return nil, domain.ErrStudioNotFound
}

func (m *Memory) CreateStudio(ctx context.Context, st *domain.Studio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st.ID = m.nextStudioID
	m.nextStudioID++
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}
	m.studios = append(m.studios, *st)
	return nil
}

func (m *Memory) UpdateStudio(ctx context.Context, st *domain.Studio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.studios {
		if m.studios[i].ID == st.ID {
			m.studios[i].Name = st.Name
			m.studios[i].Country = st.Country
			return nil
		}
	}
	return domain.ErrStudioNotFound
}

// DeleteStudio detaches the studio from its series, like ON DELETE SET NULL.
func (m *Memory) DeleteStudio(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.studios, func(st domain.Studio) bool { return st.ID == id })
	if i < 0 {
		return domain.ErrStudioNotFound
	}
	m.studios = slices.Delete(m.studios, i, i+1)
	for j := range m.series {
		if m.series[j].StudioID == id {
			m.series[j].StudioID = 0
		}
	}
	return nil
}
