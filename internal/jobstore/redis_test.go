package jobstore

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, 0)

	payload := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff}
	job := domain.ReportJob{ID: "abc", Data: payload, Filename: "r.xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}
	if err := s.Put(ctx, job); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("report:job:abc") {
		t.Fatalf("expected key report:job:abc")
	}
	if mr.TTL("report:job:abc") != 0 {
		t.Errorf("expected no expiry without ttl")
	}

	for i := 0; i < 2; i++ {
		got, err := s.Get(ctx, "abc")
		if err != nil {
			t.Fatalf("get #%d: %v", i, err)
		}
		if !bytes.Equal(got.Data, payload) || got.Filename != "r.xlsx" {
			t.Errorf("get #%d: unexpected job %+v", i, got)
		}
	}
}

func TestRedisStore_NotFoundAndExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}

	if err := s.Put(ctx, domain.ReportJob{ID: "short", Data: []byte("x")}); err != nil {
		t.Fatalf("put: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := s.Get(ctx, "short"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected expired job, got %v", err)
	}
}
