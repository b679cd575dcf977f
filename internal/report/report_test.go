package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func sampleSeries() []domain.Series {
	netflix := &domain.Studio{ID: 1, Name: "Netflix", Country: "US"}
	hbo := &domain.Studio{ID: 2, Name: `HBO "Max"`, Country: "US"}
	return []domain.Series{
		{ID: 1, Title: "Dark", Genre: "Drama, Sci-Fi", Seasons: 3, Rating: 8.7, Year: 2017, Finished: true, Studio: netflix,
			CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{ID: 2, Title: `The "Wire", Baltimore`, Genre: "Crime", Seasons: 5, Rating: 9.3, Year: 2002, Finished: true, Studio: hbo},
		{ID: 3, Title: "Stranger Things", Genre: "Horror", Seasons: 4, Rating: 8, Year: 2016, Finished: false, Studio: netflix},
	}
}

func newTestRenderer() *Renderer {
	return &Renderer{Prefix: DefaultPrefix, Now: func() time.Time { return fixedNow }}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"csv": FormatCSV, "XLSX": FormatXLSX, " Json ": FormatJSON, "": FormatCSV, "pdf": FormatCSV,
	}
	for in, want := range tests {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestRender_FilenameAndContentType(t *testing.T) {
	r := newTestRenderer()
	tests := []struct {
		format      Format
		filename    string
		contentType string
	}{
		{FormatCSV, "series-report-20240309-140507.csv", "text/csv"},
		{FormatXLSX, "series-report-20240309-140507.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{FormatJSON, "series-report-20240309-140507.json", "application/json"},
	}
	for _, tt := range tests {
		rep, err := r.Render(sampleSeries(), tt.format)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.format, err)
		}
		if rep.Filename != tt.filename {
			t.Errorf("%s: filename = %s, want %s", tt.format, rep.Filename, tt.filename)
		}
		if rep.ContentType != tt.contentType {
			t.Errorf("%s: content type = %s, want %s", tt.format, rep.ContentType, tt.contentType)
		}
		if len(rep.Data) == 0 {
			t.Errorf("%s: empty payload", tt.format)
		}
	}
}

func TestRenderCSV_RoundTrip(t *testing.T) {
	src := sampleSeries()
	rep, err := newTestRenderer().Render(src, FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(rep.Data)).ReadAll()
	if err != nil {
		t.Fatalf("csv does not parse: %v", err)
	}
	if diff := cmp.Diff(header, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if len(rows)-1 != len(src) {
		t.Fatalf("expected %d data rows, got %d", len(src), len(rows)-1)
	}

	for i, row := range rows[1:] {
		s := src[i]
		rating, _ := strconv.ParseFloat(row[2], 64)
		got := []any{row[0], row[1], rating, row[3], row[4], row[5]}
		want := []any{s.Title, strconv.Itoa(s.Seasons), s.Rating, strconv.Itoa(s.Year), strconv.FormatBool(s.Finished), s.Studio.Name}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("row %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestRenderCSV_QuotesTextFields(t *testing.T) {
	rep, err := newTestRenderer().Render(sampleSeries()[1:2], FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Title,Seasons,Rating,Year,Finished,Studio\n" +
		`"The ""Wire"", Baltimore",5,9.3,2002,true,"HBO ""Max"""` + "\n"
	if string(rep.Data) != want {
		t.Errorf("unexpected csv:\n%s\nwant:\n%s", rep.Data, want)
	}
}

func TestRenderJSON(t *testing.T) {
	rep, err := newTestRenderer().Render(sampleSeries(), FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(rep.Data, []byte("[\n  {")) {
		t.Errorf("expected pretty-printed array, got %s", rep.Data[:10])
	}

	var rows []map[string]any
	if err := json.Unmarshal(rep.Data, &rows); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(rows))
	}
	if rows[0]["createdAt"] != "2024-01-02T03:04:05Z" {
		t.Errorf("expected ISO-8601 createdAt, got %v", rows[0]["createdAt"])
	}
	if _, ok := rows[1]["createdAt"]; ok {
		t.Errorf("expected zero createdAt to be omitted")
	}
	studio, _ := rows[1]["studio"].(map[string]any)
	if studio["name"] != `HBO "Max"` {
		t.Errorf("unexpected studio %v", rows[1]["studio"])
	}
}

func TestRenderXLSX(t *testing.T) {
	src := sampleSeries()
	rep, err := newTestRenderer().Render(src, FormatXLSX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rep.Data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{SheetName}, f.GetSheetList()); diff != "" {
		t.Errorf("sheet list mismatch (-want +got):\n%s", diff)
	}

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != len(src)+1 {
		t.Fatalf("expected %d rows, got %d", len(src)+1, len(rows))
	}
	if diff := cmp.Diff(header, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if rows[1][0] != "Dark" || rows[1][1] != "3" || rows[1][2] != "8.7" || rows[1][3] != "2017" || rows[1][5] != "Netflix" {
		t.Errorf("unexpected first data row %v", rows[1])
	}

	width, err := f.GetColWidth(SheetName, "A")
	if err != nil {
		t.Fatalf("col width: %v", err)
	}
	if want := float64(len(`The "Wire", Baltimore`) + 2); width != want {
		t.Errorf("expected title column width %v, got %v", want, width)
	}
}

func TestRender_MissingStudio(t *testing.T) {
	records := sampleSeries()
	records[2].Studio = nil

	for _, format := range []Format{FormatCSV, FormatXLSX, FormatJSON} {
		_, err := newTestRenderer().Render(records, format)
		var re *domain.RenderError
		if !errors.As(err, &re) {
			t.Fatalf("%s: expected RenderError, got %v", format, err)
		}
		if re.Format != string(format) {
			t.Errorf("expected format %s in error, got %s", format, re.Format)
		}
	}
}

func TestRender_EmptyRecordSet(t *testing.T) {
	rep, err := newTestRenderer().Render(nil, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(rep.Data) != "[]" {
		t.Errorf("expected empty array, got %s", rep.Data)
	}
}

func TestRenderCSV_WholeRatingKeepsDecimal(t *testing.T) {
	rep, err := newTestRenderer().Render(sampleSeries()[2:3], FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Title,Seasons,Rating,Year,Finished,Studio\n" +
		`"Stranger Things",4,8.0,2016,false,"Netflix"` + "\n"
	if string(rep.Data) != want {
		t.Errorf("unexpected csv:\n%s\nwant:\n%s", rep.Data, want)
	}
	for _, tt := range []struct {
		in   float64
		want string
	}{{8, "8.0"}, {9.3, "9.3"}, {0, "0.0"}, {7.25, "7.25"}} {
		if got := formatRating(tt.in); got != tt.want {
			t.Errorf("formatRating(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
