package report

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

// renderCSV quotes every text column. encoding/csv only quotes on demand,
// so rows are written by hand.
func renderCSV(records []domain.Series) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(header, ","))
	buf.WriteByte('\n')

	for i := range records {
		s := &records[i]
		writeQuoted(&buf, s.Title)
		buf.WriteByte(',')
		buf.WriteString(strconv.Itoa(s.Seasons))
		buf.WriteByte(',')
		buf.WriteString(formatRating(s.Rating))
		buf.WriteByte(',')
		buf.WriteString(strconv.Itoa(s.Year))
		buf.WriteByte(',')
		buf.WriteString(strconv.FormatBool(s.Finished))
		buf.WriteByte(',')
		writeQuoted(&buf, s.Studio.Name)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func writeQuoted(buf *bytes.Buffer, v string) {
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(v, `"`, `""`))
	buf.WriteByte('"')
}

// formatRating keeps at least one fractional digit, so 8 is written as 8.0.
func formatRating(r float64) string {
	v := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.ContainsAny(v, ".eE") {
		v += ".0"
	}
	return v
}
