package domain

import "time"

type Studio struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// Series is one catalog entry. Genre holds a comma-separated list of sub-genres.
type Series struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Genre     string    `json:"genre"`
	Seasons   int       `json:"seasons"`
	Rating    float64   `json:"rating"`
	Year      int       `json:"year"`
	Finished  bool      `json:"finished"`
	StudioID  int64     `json:"studio_id,omitempty"`
	Studio    *Studio   `json:"studio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SeriesFilter constrains a record query. Nil fields impose no constraint;
// set fields combine with logical AND.
type SeriesFilter struct {
	StudioID  *int64   `json:"studioId,omitempty"`
	MinRating *float64 `json:"minRating,omitempty"`
	Year      *int     `json:"year,omitempty"`
	Genre     string   `json:"genre,omitempty"`
}

// PageRequest is a 1-based page of a sorted listing.
type PageRequest struct {
	Page      int    `json:"page"`
	Size      int    `json:"size"`
	SortBy    string `json:"sortBy"`
	Direction string `json:"direction"`
}

type SeriesPage struct {
	List       []Series `json:"list"`
	TotalPages int      `json:"totalPages"`
}

var sortColumns = map[string]bool{
	"id":      true,
	"title":   true,
	"rating":  true,
	"year":    true,
	"seasons": true,
}

// Normalize fills defaults and clamps unknown sort options.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = 10
	}
	if !sortColumns[p.SortBy] {
		p.SortBy = "id"
	}
	if p.Direction != "DESC" && p.Direction != "desc" {
		p.Direction = "ASC"
	} else {
		p.Direction = "DESC"
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// TotalPages returns the number of pages needed for total rows.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
