// Package jobstore keeps rendered reports addressable by job id until they
// are downloaded. Nothing is persisted across restarts.
package jobstore

import (
	"context"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

// Store holds report jobs. Get returns domain.ErrJobNotFound for unknown or
// expired ids and never removes a job on read.
type Store interface {
	Put(ctx context.Context, job domain.ReportJob) error
	Get(ctx context.Context, id string) (*domain.ReportJob, error)
}
