package report

import (
	"encoding/json"
	"time"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

type jsonStudio struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type jsonRow struct {
	ID        int64      `json:"id,omitempty"`
	Title     string     `json:"title"`
	Genre     string     `json:"genre"`
	Seasons   int        `json:"seasons"`
	Rating    float64    `json:"rating"`
	Year      int        `json:"year"`
	Finished  bool       `json:"finished"`
	Studio    jsonStudio `json:"studio"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// renderJSON writes an indented array. Timestamps marshal as RFC 3339.
func renderJSON(records []domain.Series) ([]byte, error) {
	rows := make([]jsonRow, 0, len(records))
	for i := range records {
		s := &records[i]
		row := jsonRow{
			ID:       s.ID,
			Title:    s.Title,
			Genre:    s.Genre,
			Seasons:  s.Seasons,
			Rating:   s.Rating,
			Year:     s.Year,
			Finished: s.Finished,
			Studio:   jsonStudio{ID: s.Studio.ID, Name: s.Studio.Name, Country: s.Studio.Country},
		}
		if !s.CreatedAt.IsZero() {
			created := s.CreatedAt.UTC()
			row.CreatedAt = &created
		}
		rows = append(rows, row)
	}
	return json.MarshalIndent(rows, "", "  ")
}
