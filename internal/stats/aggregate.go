package stats

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

type Attribute string

const (
	AttrTitle    Attribute = "title"
	AttrGenre    Attribute = "genre"
	AttrSeasons  Attribute = "seasons"
	AttrRating   Attribute = "rating"
	AttrYear     Attribute = "year"
	AttrFinished Attribute = "finished"
)

const unknownKey = "unknown"

// Supported lists the grouping attributes in their documented order.
var Supported = []Attribute{AttrTitle, AttrGenre, AttrSeasons, AttrRating, AttrYear, AttrFinished}

func supportedNames() []string {
	names := make([]string, len(Supported))
	for i, a := range Supported {
		names[i] = string(a)
	}
	return names
}

// ParseAttribute trims and lower-cases name and checks it against Supported.
func ParseAttribute(name string) (Attribute, error) {
	a := strings.ToLower(strings.TrimSpace(name))
	if a == "" {
		return "", &domain.InvalidAttributeError{Supported: supportedNames()}
	}
	if !slices.Contains(Supported, Attribute(a)) {
		return "", &domain.UnsupportedAttributeError{Value: name, Supported: supportedNames()}
	}
	return Attribute(a), nil
}

// Entry is one row of a FrequencyTable.
type Entry struct {
	Value string `json:"value" xml:"value"`
	Count int    `json:"count" xml:"count"`
}

// FrequencyTable is sorted by count descending, then case-insensitively by
// value. Values are unique.
type FrequencyTable []Entry

// Total is the number of (record, key) pairs counted.
func (t FrequencyTable) Total() int {
	n := 0
	for _, e := range t {
		n += e.Count
	}
	return n
}

// Aggregate counts the keys attribute extracts from every record. A nil
// record set yields an empty table.
func Aggregate(records []domain.Series, attribute string) (FrequencyTable, error) {
	attr, err := ParseAttribute(attribute)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return FrequencyTable{}, nil
	}

	counts := make(map[string]int)
	for i := range records {
		for _, key := range Keys(&records[i], attr) {
			counts[key]++
		}
	}
	return sortCounts(counts), nil
}

// Keys extracts the grouping keys of s. Every attribute yields one key
// except genre, which yields one per non-empty comma-separated part.
func Keys(s *domain.Series, attr Attribute) []string {
	switch attr {
	case AttrTitle:
		return []string{orUnknown(s.Title)}
	case AttrGenre:
		return splitGenres(s.Genre)
	case AttrSeasons:
		return []string{strconv.Itoa(s.Seasons)}
	case AttrRating:
		return []string{FormatRating(s.Rating)}
	case AttrYear:
		return []string{strconv.Itoa(s.Year)}
	case AttrFinished:
		return []string{strconv.FormatBool(s.Finished)}
	}
	return nil
}

// FormatRating renders r with one fractional digit, rounding half away
// from zero: 8.74 -> "8.7", 8.75 -> "8.8".
func FormatRating(r float64) string {
	return strconv.FormatFloat(math.Round(r*10)/10, 'f', 1, 64)
}

func splitGenres(line string) []string {
	var genres []string
	for _, part := range strings.Split(line, ",") {
		if g := strings.TrimSpace(part); g != "" {
			genres = append(genres, g)
		}
	}
	if len(genres) == 0 {
		return []string{unknownKey}
	}
	return genres
}

func orUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return unknownKey
	}
	return v
}

func sortCounts(counts map[string]int) FrequencyTable {
	table := make(FrequencyTable, 0, len(counts))
	for k, c := range counts {
		table = append(table, Entry{Value: k, Count: c})
	}
	slices.SortFunc(table, compareEntries)
	return table
}

func compareEntries(a, b Entry) int {
	if a.Count != b.Count {
		return b.Count - a.Count
	}
	if c := strings.Compare(strings.ToLower(a.Value), strings.ToLower(b.Value)); c != 0 {
		return c
	}
	// "Drama" and "drama" are distinct keys; keep the order total.
	return strings.Compare(a.Value, b.Value)
}
