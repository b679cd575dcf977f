package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
	"github.com/actuallystonmai/series-analyzer/internal/logger"
	"github.com/actuallystonmai/series-analyzer/internal/report"
	"github.com/sirupsen/logrus"
)

// ReportResult holds either the rendered report (sync) or a job handle (async).
type ReportResult struct {
	Report *report.Report
	Handle *domain.JobHandle
}

// GenerateReport renders the filtered record set. In async mode the report
// is still rendered before returning; it is stored under a fresh job id
// instead of being returned.
func (s *Service) GenerateReport(ctx context.Context, req domain.ReportRequest) (*ReportResult, error) {
	format := report.ParseFormat(req.Format)

	records, err := s.repo.SearchSeries(ctx, req.SeriesFilter)
	if err != nil {
		return nil, fmt.Errorf("fetch report records: %w", err)
	}

	rep, err := s.renderer.Render(records, format)
	if err != nil {
		return nil, err
	}

	if !req.Async {
		return &ReportResult{Report: rep}, nil
	}

	id := s.newID()
	job := domain.ReportJob{
		ID:          id,
		Data:        rep.Data,
		Filename:    rep.Filename,
		ContentType: rep.ContentType,
		CreatedAt:   s.now(),
	}
	if err := s.jobs.Put(ctx, job); err != nil {
		return nil, fmt.Errorf("store report job: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"job_id":  id,
		"format":  format,
		"records": len(records),
		"bytes":   len(rep.Data),
	}).Info("report job stored")

	return &ReportResult{Handle: &domain.JobHandle{
		JobID:       id,
		DownloadURL: s.downloadURL(id),
	}}, nil
}

func (s *Service) downloadURL(id string) string {
	return strings.TrimRight(s.basePath, "/") + "/" + id
}

// DownloadReport returns a stored job. Jobs stay available after download.
func (s *Service) DownloadReport(ctx context.Context, jobID string) (*report.Report, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &report.Report{
		Data:        job.Data,
		Filename:    job.Filename,
		ContentType: job.ContentType,
	}, nil
}
