package domain

// SeriesInput is the create/update payload for a series.
type SeriesInput struct {
	Title    string  `json:"title"`
	Genre    string  `json:"genre"`
	Seasons  int     `json:"seasons"`
	Rating   float64 `json:"rating"`
	Year     int     `json:"year"`
	Finished *bool   `json:"finished"`
	StudioID *int64  `json:"studioId"`
}

type StudioInput struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ImportItem is one element of an uploaded JSON array. The studio is
// referenced by name.
type ImportItem struct {
	Title    string       `json:"title"`
	Genre    string       `json:"genre"`
	Seasons  int          `json:"seasons"`
	Rating   float64      `json:"rating"`
	Year     int          `json:"year"`
	Finished *bool        `json:"finished"`
	Studio   *StudioInput `json:"studio"`
}

const (
	ImportReasonValidation = "validation"
	ImportReasonImport     = "import"

	MaxImportErrors = 20
)

type ImportError struct {
	Index   int      `json:"index"`
	Reason  string   `json:"reason"`
	Details []string `json:"details"`
}

type ImportResult struct {
	Success int           `json:"success"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors"`
}
