package jobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

// RedisStore shares jobs between service instances. A zero TTL stores keys
// without expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func buildKey(id string) string {
	return fmt.Sprintf("report:job:%s", id)
}

func (s *RedisStore) Put(ctx context.Context, job domain.ReportJob) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	val, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal report job %s: %w", job.ID, err)
	}
	if err := s.client.Set(ctx, buildKey(job.ID), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("store report job %s: %w", job.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.ReportJob, error) {
	val, err := s.client.Get(ctx, buildKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report job %s: %w", id, err)
	}

	var job domain.ReportJob
	if err := json.Unmarshal(val, &job); err != nil {
		return nil, fmt.Errorf("unmarshal report job %s: %w", id, err)
	}
	return &job, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
