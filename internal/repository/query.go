package repository

import (
	"strconv"
	"strings"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

// where accumulates AND-ed conditions with numbered placeholders.
type where struct {
	clauses []string
	args    []any
}

// add appends cond, replacing its single "?" with the next placeholder.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.Replace(cond, "?", w.placeholder(), 1))
}

func (w *where) placeholder() string {
	return "$" + strconv.Itoa(len(w.args))
}

// next reserves a placeholder for a trailing argument (LIMIT, OFFSET).
func (w *where) next(arg any) string {
	w.args = append(w.args, arg)
	return w.placeholder()
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func seriesWhere(f domain.SeriesFilter) *where {
	w := &where{}
	if f.StudioID != nil {
		w.add("s.studio_id = ?", *f.StudioID)
	}
	if f.MinRating != nil {
		w.add("s.rating >= ?", *f.MinRating)
	}
	if f.Year != nil {
		w.add("s.year = ?", *f.Year)
	}
	if g := strings.TrimSpace(f.Genre); g != "" {
		w.add(`LOWER(s.genre) LIKE ? ESCAPE '\'`, likePattern(g))
	}
	return w
}

// likePattern builds a case-folded substring pattern with LIKE
// metacharacters escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

func orderBy(p domain.PageRequest) string {
	return " ORDER BY s." + p.SortBy + " " + p.Direction + ", s.id ASC"
}
