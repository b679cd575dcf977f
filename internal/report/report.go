package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

const (
	DefaultPrefix = "series-report"
	SheetName     = "Series"

	timestampLayout = "20060102-150405"
)

// ParseFormat is case-insensitive; blank or unknown values fall back to csv.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX
	case FormatJSON:
		return FormatJSON
	default:
		return FormatCSV
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv"
	}
}

// Report is a rendered payload ready for delivery.
type Report struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Renderer turns a record set into a downloadable report.
type Renderer struct {
	Prefix string
	Now    func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{Prefix: DefaultPrefix, Now: time.Now}
}

// Render encodes records in format. Every record must carry its studio.
func (r *Renderer) Render(records []domain.Series, format Format) (*Report, error) {
	if err := requireStudios(records, format); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatXLSX:
		data, err = renderXLSX(records)
	case FormatJSON:
		data, err = renderJSON(records)
	default:
		format = FormatCSV
		data = renderCSV(records)
	}
	if err != nil {
		return nil, &domain.RenderError{Format: string(format), Err: err}
	}

	return &Report{
		Data:        data,
		Filename:    r.Filename(format),
		ContentType: format.ContentType(),
	}, nil
}

// Filename follows <prefix>-<yyyyMMdd-HHmmss>.<ext>.
func (r *Renderer) Filename(format Format) string {
	prefix := r.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return fmt.Sprintf("%s-%s.%s", prefix, now().Format(timestampLayout), format)
}

func requireStudios(records []domain.Series, format Format) error {
	for i := range records {
		if records[i].Studio == nil {
			return &domain.RenderError{
				Format: string(format),
				Err:    fmt.Errorf("series %q at position %d has no studio", records[i].Title, i),
			}
		}
	}
	return nil
}

var header = []string{"Title", "Seasons", "Rating", "Year", "Finished", "Studio"}
