package service

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

var (
	titlePattern  = regexp.MustCompile(`^[\p{L}0-9 .:'-]+$`)
	genrePattern  = regexp.MustCompile(`^[\p{L}0-9 .:',-]+$`)
	studioPattern = regexp.MustCompile(`^[\p{L}0-9 .,'-]+$`)
	hasLetter     = regexp.MustCompile(`\p{L}`)
)

const (
	minYear        = 1900
	maxYear        = 2100
	minOngoingYear = 1950
)

// validateSeries checks every field rule and returns all violations at once.
// The studio reference is checked separately since it needs the store.
func validateSeries(in domain.SeriesInput, now time.Time) *domain.ValidationError {
	verr := &domain.ValidationError{}

	checkText(verr, "title", in.Title, titlePattern)
	checkText(verr, "genre", in.Genre, genrePattern)

	if in.Seasons < 1 {
		verr.Add("seasons", "must be at least 1")
	} else if in.Seasons > 100 {
		verr.Add("seasons", "cannot exceed 100")
	}

	switch {
	case in.Rating < 0:
		verr.Add("rating", "must be >= 0")
	case in.Rating > 10:
		verr.Add("rating", "must be <= 10")
	case !oneDecimal(in.Rating):
		verr.Add("rating", "must have max 1 decimal place")
	}

	if in.Year < minYear {
		verr.Add("year", "must not be before 1900")
	} else if in.Year > maxYear {
		verr.Add("year", "is too far in future")
	}

	if in.Finished == nil {
		verr.Add("finished", "must be provided")
	} else if *in.Finished && in.Year > now.Year() {
		verr.Add("year", "finished series cannot be in the future")
	} else if !*in.Finished && in.Year < minOngoingYear {
		verr.Add("finished", "ongoing series cannot start before 1950")
	}

	if in.StudioID == nil {
		verr.Add("studioId", "is required")
	} else if *in.StudioID <= 0 {
		verr.Add("studioId", "must be positive")
	}
	return verr
}

func validateStudio(in domain.StudioInput) *domain.ValidationError {
	verr := &domain.ValidationError{}
	for _, f := range []struct{ name, value string }{{"name", in.Name}, {"country", in.Country}} {
		v := strings.TrimSpace(f.value)
		switch {
		case v == "":
			verr.Add(f.name, "is required")
		case utf8.RuneCountInString(v) < 2 || utf8.RuneCountInString(v) > 255:
			verr.Add(f.name, "must be between 2 and 255 characters")
		case !studioPattern.MatchString(v) || !hasLetter.MatchString(v):
			verr.Add(f.name, "must contain letters and may include numbers, spaces, dots or hyphens")
		}
	}
	return verr
}

func checkText(verr *domain.ValidationError, field, value string, pattern *regexp.Regexp) {
	n := utf8.RuneCountInString(value)
	if n < 2 || n > 255 {
		verr.Add(field, "must be between 2 and 255 characters")
		return
	}
	if !pattern.MatchString(value) {
		verr.Add(field, "contains invalid characters")
	}
}

func oneDecimal(r float64) bool {
	scaled := r * 10
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
