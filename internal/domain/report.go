package domain

import "time"

// ReportRequest selects the record set and delivery mode of a report.
type ReportRequest struct {
	SeriesFilter
	Format string `json:"format,omitempty"`
	Async  bool   `json:"async,omitempty"`
}

// ReportJob is a rendered report stored for later download. It is never
// mutated after creation.
type ReportJob struct {
	ID          string    `json:"id"`
	Data        []byte    `json:"data"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobHandle is returned for asynchronous report requests.
type JobHandle struct {
	JobID       string `json:"jobId"`
	DownloadURL string `json:"downloadUrl"`
}
