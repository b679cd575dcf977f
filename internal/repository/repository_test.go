package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

type store interface {
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
	CountSeries(ctx context.Context) (int, error)
}

func openSQLite(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "series.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(repo.Close)
	return repo
}

// fill creates two studios and four series.
func fill(t *testing.T, repo store) (hbo, netflix domain.Studio) {
	t.Helper()
	ctx := context.Background()
	hbo = domain.Studio{Name: "HBO", Country: "USA"}
	netflix = domain.Studio{Name: "Netflix", Country: "USA"}
	for _, st := range []*domain.Studio{&hbo, &netflix} {
		if err := repo.CreateStudio(ctx, st); err != nil {
			t.Fatalf("CreateStudio: %v", err)
		}
	}
	series := []domain.Series{
		{Title: "The Wire", Genre: "Crime, Drama", Seasons: 5, Rating: 9.3, Year: 2002, Finished: true, StudioID: hbo.ID},
		{Title: "Dark", Genre: "Sci-Fi, Thriller", Seasons: 3, Rating: 8.7, Year: 2017, Finished: true, StudioID: netflix.ID},
		{Title: "Succession", Genre: "Drama", Seasons: 4, Rating: 8.9, Year: 2018, Finished: true, StudioID: hbo.ID},
		{Title: "Orphan", Genre: "Drama", Seasons: 1, Rating: 5.5, Year: 2018, Finished: false},
	}
	for i := range series {
		if err := repo.CreateSeries(ctx, &series[i]); err != nil {
			t.Fatalf("CreateSeries: %v", err)
		}
	}
	return hbo, netflix
}

func titles(list []domain.Series) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Title
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var backends = map[string]func(t *testing.T) store{
	"sqlite": func(t *testing.T) store { return openSQLite(t) },
	"memory": func(t *testing.T) store { return NewMemory(nil) },
}

func TestSearchSeries(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			hbo, _ := fill(t, repo)
			ctx := context.Background()

			minRating := 8.8
			year := 2018
			tests := []struct {
				name   string
				filter domain.SeriesFilter
				want   []string
			}{
				{"all", domain.SeriesFilter{}, []string{"The Wire", "Dark", "Succession", "Orphan"}},
				{"studio", domain.SeriesFilter{StudioID: &hbo.ID}, []string{"The Wire", "Succession"}},
				{"min rating", domain.SeriesFilter{MinRating: &minRating}, []string{"The Wire", "Succession"}},
				{"year and genre", domain.SeriesFilter{Year: &year, Genre: "drama"}, []string{"Succession", "Orphan"}},
				{"genre substring", domain.SeriesFilter{Genre: "SCI"}, []string{"Dark"}},
				{"like metacharacter", domain.SeriesFilter{Genre: "%"}, []string{}},
			}
			for _, tt := range tests {
				got, err := repo.SearchSeries(ctx, tt.filter)
				if err != nil {
					t.Fatalf("%s: SearchSeries: %v", tt.name, err)
				}
				if !equal(titles(got), tt.want) {
					t.Errorf("%s: got %v, want %v", tt.name, titles(got), tt.want)
				}
			}
		})
	}
}

func TestSearchSeriesAttachesStudio(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			hbo, _ := fill(t, repo)

			got, err := repo.SearchSeries(context.Background(), domain.SeriesFilter{})
			if err != nil {
				t.Fatalf("SearchSeries: %v", err)
			}
			if got[0].Studio == nil || got[0].Studio.Name != "HBO" || got[0].Studio.ID != hbo.ID {
				t.Errorf("studio = %+v, want HBO", got[0].Studio)
			}
			if got[3].Studio != nil {
				t.Errorf("orphan studio = %+v, want nil", got[3].Studio)
			}
		})
	}
}

func TestListSeriesPage(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			fill(t, repo)
			ctx := context.Background()

			page, err := repo.ListSeriesPage(ctx, domain.SeriesFilter{}, domain.PageRequest{Page: 1, Size: 3, SortBy: "rating", Direction: "desc"})
			if err != nil {
				t.Fatalf("ListSeriesPage: %v", err)
			}
			if page.TotalPages != 2 {
				t.Errorf("TotalPages = %d, want 2", page.TotalPages)
			}
			if want := []string{"The Wire", "Succession", "Dark"}; !equal(titles(page.List), want) {
				t.Errorf("page 1 = %v, want %v", titles(page.List), want)
			}

			page, err = repo.ListSeriesPage(ctx, domain.SeriesFilter{}, domain.PageRequest{Page: 2, Size: 3, SortBy: "rating", Direction: "desc"})
			if err != nil {
				t.Fatalf("ListSeriesPage: %v", err)
			}
			if want := []string{"Orphan"}; !equal(titles(page.List), want) {
				t.Errorf("page 2 = %v, want %v", titles(page.List), want)
			}

			// Unknown sort columns fall back to id.
			page, err = repo.ListSeriesPage(ctx, domain.SeriesFilter{}, domain.PageRequest{SortBy: "title; DROP TABLE series"})
			if err != nil {
				t.Fatalf("ListSeriesPage: %v", err)
			}
			if want := []string{"The Wire", "Dark", "Succession", "Orphan"}; !equal(titles(page.List), want) {
				t.Errorf("default page = %v, want %v", titles(page.List), want)
			}
		})
	}
}

func TestTopAndFindByTitle(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			fill(t, repo)
			ctx := context.Background()

			top, err := repo.TopSeries(ctx, 2)
			if err != nil {
				t.Fatalf("TopSeries: %v", err)
			}
			if want := []string{"The Wire", "Succession"}; !equal(titles(top), want) {
				t.Errorf("top = %v, want %v", titles(top), want)
			}

			found, err := repo.FindSeriesByTitle(ctx, "wIRe")
			if err != nil {
				t.Fatalf("FindSeriesByTitle: %v", err)
			}
			if found.Title != "The Wire" {
				t.Errorf("found %q, want The Wire", found.Title)
			}
			if _, err := repo.FindSeriesByTitle(ctx, "Lost"); !errors.Is(err, domain.ErrSeriesNotFound) {
				t.Errorf("err = %v, want ErrSeriesNotFound", err)
			}
		})
	}
}

func TestSeriesCRUD(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			_, netflix := fill(t, repo)
			ctx := context.Background()

			s, err := repo.FindSeriesByTitle(ctx, "Orphan")
			if err != nil {
				t.Fatalf("FindSeriesByTitle: %v", err)
			}
			s.StudioID = netflix.ID
			s.Rating = 6.1
			if err := repo.UpdateSeries(ctx, s); err != nil {
				t.Fatalf("UpdateSeries: %v", err)
			}
			got, err := repo.GetSeries(ctx, s.ID)
			if err != nil {
				t.Fatalf("GetSeries: %v", err)
			}
			if got.Rating != 6.1 || got.Studio == nil || got.Studio.Name != "Netflix" {
				t.Errorf("updated = %+v", got)
			}

			if err := repo.DeleteSeries(ctx, s.ID); err != nil {
				t.Fatalf("DeleteSeries: %v", err)
			}
			if _, err := repo.GetSeries(ctx, s.ID); !errors.Is(err, domain.ErrSeriesNotFound) {
				t.Errorf("GetSeries after delete: %v", err)
			}
			if err := repo.DeleteSeries(ctx, s.ID); !errors.Is(err, domain.ErrSeriesNotFound) {
				t.Errorf("second delete: %v", err)
			}
			if err := repo.UpdateSeries(ctx, &domain.Series{ID: 999, Title: "x"}); !errors.Is(err, domain.ErrSeriesNotFound) {
				t.Errorf("update missing: %v", err)
			}
			if n, _ := repo.CountSeries(ctx); n != 3 {
				t.Errorf("CountSeries = %d, want 3", n)
			}
		})
	}
}

func TestStudioCRUD(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			hbo, _ := fill(t, repo)
			ctx := context.Background()

			found, err := repo.FindStudioByName(ctx, "hbo")
			if err != nil {
				t.Fatalf("FindStudioByName: %v", err)
			}
			if found.ID != hbo.ID {
				t.Errorf("found id %d, want %d", found.ID, hbo.ID)
			}

			hbo.Country = "US"
			if err := repo.UpdateStudio(ctx, &hbo); err != nil {
				t.Fatalf("UpdateStudio: %v", err)
			}
			got, err := repo.GetStudio(ctx, hbo.ID)
			if err != nil {
				t.Fatalf("GetStudio: %v", err)
			}
			if got.Country != "US" {
				t.Errorf("country = %q, want US", got.Country)
			}

			if err := repo.DeleteStudio(ctx, hbo.ID); err != nil {
				t.Fatalf("DeleteStudio: %v", err)
			}
			list, err := repo.ListStudios(ctx)
			if err != nil {
				t.Fatalf("ListStudios: %v", err)
			}
			if len(list) != 1 || list[0].Name != "Netflix" {
				t.Errorf("studios = %+v", list)
			}

			// Series of a deleted studio lose their studio.
			wire, err := repo.FindSeriesByTitle(ctx, "The Wire")
			if err != nil {
				t.Fatalf("FindSeriesByTitle: %v", err)
			}
			if wire.Studio != nil {
				t.Errorf("studio = %+v, want nil", wire.Studio)
			}

			if _, err := repo.GetStudio(ctx, hbo.ID); !errors.Is(err, domain.ErrStudioNotFound) {
				t.Errorf("GetStudio after delete: %v", err)
			}
			if err := repo.DeleteStudio(ctx, hbo.ID); !errors.Is(err, domain.ErrStudioNotFound) {
				t.Errorf("second delete: %v", err)
			}
		})
	}
}

func TestNewMemoryDeduplicatesStudios(t *testing.T) {
	records := []domain.Series{
		{Title: "A", Studio: &domain.Studio{Name: "HBO", Country: "USA"}},
		{Title: "B", Studio: &domain.Studio{Name: "hbo", Country: "USA"}},
		{Title: "C"},
	}
	m := NewMemory(records)
	ctx := context.Background()

	studios, _ := m.ListStudios(ctx)
	if len(studios) != 1 {
		t.Fatalf("studios = %+v, want one", studios)
	}
	list, _ := m.SearchSeries(ctx, domain.SeriesFilter{})
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].StudioID != list[1].StudioID || list[1].Studio == nil {
		t.Errorf("series not linked to one studio: %+v %+v", list[0], list[1])
	}
	if list[2].Studio != nil {
		t.Errorf("C studio = %+v, want nil", list[2].Studio)
	}
	if list[0].ID != 1 || list[2].ID != 3 {
		t.Errorf("ids = %d..%d, want 1..3", list[0].ID, list[2].ID)
	}
}

func TestSeriesWherePlaceholders(t *testing.T) {
	id := int64(3)
	rating := 7.5
	w := seriesWhere(domain.SeriesFilter{StudioID: &id, MinRating: &rating, Genre: "drama"})
	want := ` WHERE s.studio_id = $1 AND s.rating >= $2 AND LOWER(s.genre) LIKE $3 ESCAPE '\'`
	if got := w.String(); got != want {
		t.Errorf("where = %q\nwant  %q", got, want)
	}
	if got := w.next(10); got != "$4" {
		t.Errorf("next = %q, want $4", got)
	}
	if len(w.args) != 4 {
		t.Errorf("args = %v", w.args)
	}
}
