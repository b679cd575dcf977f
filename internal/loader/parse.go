package loader

import (
	"bytes"
	"encoding/json"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

var utf8BOM = []byte("\xEF\xBB\xBF")

// ParseRecords decodes one file's bytes. A leading '[' means an array of
// records, anything else a single record. Missing fields keep their zero
// value; only malformed JSON is an error. A leading UTF-8 BOM is ignored.
func ParseRecords(source string, data []byte) ([]domain.Series, error) {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\r\n")

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []domain.Series
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, &domain.ParseError{Source: source, Err: err}
		}
		if list == nil {
			list = []domain.Series{}
		}
		return list, nil
	}

	var one domain.Series
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, &domain.ParseError{Source: source, Err: err}
	}
	return []domain.Series{one}, nil
}
