package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrJobNotFound    = errors.New("report job not found")
	ErrSeriesNotFound = errors.New("series not found")
	ErrStudioNotFound = errors.New("studio not found")
	ErrStudioExists   = errors.New("studio with this name already exists")
)

// ParseError reports malformed JSON in a single source file.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadError is a folder-level failure. Err is the first ParseError in file
// order, or the directory listing error.
type LoadError struct {
	Dir string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load folder %s: %v", e.Dir, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// InvalidAttributeError means the grouping attribute was blank.
type InvalidAttributeError struct {
	Supported []string
}

func (e *InvalidAttributeError) Error() string {
	return "attribute is empty. Supported: " + strings.Join(e.Supported, ", ")
}

// UnsupportedAttributeError means the grouping attribute is outside the closed set.
type UnsupportedAttributeError struct {
	Value     string
	Supported []string
}

func (e *UnsupportedAttributeError) Error() string {
	return fmt.Sprintf("unsupported attribute: %s. Supported: %s", e.Value, strings.Join(e.Supported, ", "))
}

type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s report: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a violation on field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns e when it holds violations.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// BadRequestError wraps caller mistakes that have no richer type.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

type Kind string

const (
	KindBadInput Kind = "bad_input"
	KindNotFound Kind = "not_found"
	KindConflict Kind = "conflict"
	KindInternal Kind = "internal"
)

// KindOf classifies err for boundary layers.
func KindOf(err error) Kind {
	var (
		invalid     *InvalidAttributeError
		unsupported *UnsupportedAttributeError
		validation  *ValidationError
		badRequest  *BadRequestError
		render      *RenderError
	)
	switch {
	case errors.Is(err, ErrJobNotFound), errors.Is(err, ErrSeriesNotFound), errors.Is(err, ErrStudioNotFound):
		return KindNotFound
	case errors.Is(err, ErrStudioExists):
		return KindConflict
	case errors.As(err, &render):
		return KindInternal
	case errors.As(err, &invalid), errors.As(err, &unsupported),
		errors.As(err, &validation), errors.As(err, &badRequest):
		return KindBadInput
	default:
		return KindInternal
	}
}
