package jobstore

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

// MemoryStore keeps jobs in process memory. With a zero TTL jobs are kept
// for the lifetime of the process and the store grows without bound.
type MemoryStore struct {
	jobs sync.Map // id -> *domain.ReportJob
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, job domain.ReportJob) error {
	job.Data = bytes.Clone(job.Data)
	if job.CreatedAt.IsZero() {
		job.CreatedAt = s.now()
	}
	s.jobs.Store(job.ID, &job)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.ReportJob, error) {
	v, ok := s.jobs.Load(id)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	job := v.(*domain.ReportJob)
	if s.expired(job) {
		s.jobs.CompareAndDelete(id, v)
		return nil, domain.ErrJobNotFound
	}
	cp := *job
	return &cp, nil
}

// Sweep drops expired jobs and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	removed := 0
	s.jobs.Range(func(k, v any) bool {
		if s.expired(v.(*domain.ReportJob)) && s.jobs.CompareAndDelete(k, v) {
			removed++
		}
		return true
	})
	return removed
}

// Len counts stored jobs, expired ones included until swept.
func (s *MemoryStore) Len() int {
	n := 0
	s.jobs.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (s *MemoryStore) expired(job *domain.ReportJob) bool {
	return s.ttl > 0 && s.now().Sub(job.CreatedAt) > s.ttl
}
