package handler

import "github.com/actuallystonmai/series-analyzer/internal/domain"

type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// ListRequest is the body of POST /series/_list.
type ListRequest struct {
	domain.SeriesFilter
	domain.PageRequest
}
