package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/actuallystonmai/series-analyzer/internal/config"
	"github.com/actuallystonmai/series-analyzer/internal/handler"
	"github.com/actuallystonmai/series-analyzer/internal/jobstore"
	"github.com/actuallystonmai/series-analyzer/internal/logger"
	"github.com/actuallystonmai/series-analyzer/internal/report"
	"github.com/actuallystonmai/series-analyzer/internal/repository"
	"github.com/actuallystonmai/series-analyzer/internal/router"
	"github.com/actuallystonmai/series-analyzer/internal/service"
	"github.com/actuallystonmai/series-analyzer/seeds"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type store interface {
	service.Repository
	seeds.Store
	CountSeries(ctx context.Context) (int, error)
	Close()
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("failed to load config %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		logger.Log.Fatalf("failed to init logger %v", err)
	}

	ctx := context.Background()

	// ------------ Record store ---------------
	repo, err := openStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("failed to open %s store: %v", cfg.Store, err)
	}
	defer repo.Close()

	// ------------ Setup Seed Data ---------------
	if cfg.Seed {
		if err := checkSeed(ctx, repo, cfg); err != nil {
			logger.Log.Fatalf("failed to seed %v", err)
		}
	}

	// ------------ Job store ---------------
	jobs, err := openJobStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("failed to open job store: %v", err)
	}
	if cfg.JobTTL == 0 {
		logger.Log.Warn("JOB_TTL is 0, report jobs are kept until restart")
	} else if mem, ok := jobs.(*jobstore.MemoryStore); ok {
		go sweepJobs(mem, cfg.JobTTL)
	}

	// ---------------- Server --------------------
	svc := service.NewService(repo, jobs, report.NewRenderer(), service.Options{
		ReportBasePath: cfg.ReportBasePath,
	})
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router.Setup(handler.NewHandler(svc), cfg.RequestTimeout),
	}

	go func() {
		logger.Log.Infof("server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("shutdown: %v", err)
	}
	logger.Log.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse database config: %w", err)
		}
		poolConfig.MaxConns = int32(cfg.DBPoolSize)
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := waitForDB(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Log.Info("connected to PostgreSQL")

		// for migrate-down using CLI command
		if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
			if err := migrate(ctx, pool, cfg.MigrationsDir, "down"); err != nil {
				logger.Log.Fatalf("failed to migrate down %v", err)
			}
			pool.Close()
			os.Exit(0)
		}
		if err := migrate(ctx, pool, cfg.MigrationsDir, "up"); err != nil {
			pool.Close()
			return nil, err
		}
		return repository.NewRepository(pool), nil

	case config.StoreSQLite:
		repo, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Log.Infof("opened SQLite database %s", cfg.SQLitePath)
		return repo, nil

	default:
		return repository.NewMemory(nil), nil
	}
}

func openJobStore(ctx context.Context, cfg *config.Config) (jobstore.Store, error) {
	if cfg.JobStore != config.JobStoreRedis {
		return jobstore.NewMemoryStore(cfg.JobTTL), nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rs := jobstore.NewRedisStore(redis.NewClient(opts), cfg.JobTTL)
	if err := rs.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Log.Info("connected to Redis")
	return rs, nil
}

// sweepJobs drops expired jobs that were never read again.
func sweepJobs(mem *jobstore.MemoryStore, ttl time.Duration) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for range ticker.C {
		if n := mem.Sweep(); n > 0 {
			logger.Log.Debugf("swept %d expired report jobs", n)
		}
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logger.Log.Infof("waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

// migrate runs migrations/create_tables.<direction>.sql.
func migrate(ctx context.Context, pool *pgxpool.Pool, dir, direction string) error {
	path := filepath.Join(dir, "create_tables."+direction+".sql")
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logger.Log.Infof("migrations %s applied successfully", direction)
	return nil
}

func checkSeed(ctx context.Context, repo store, cfg *config.Config) error {
	count, err := repo.CountSeries(ctx)
	if err != nil {
		return fmt.Errorf("check series count: %w", err)
	}
	if count > 0 {
		logger.Log.Infof("database already seeded (%d series), skipping", count)
		return nil
	}
	if _, err := os.Stat(cfg.DataDir); errors.Is(err, os.ErrNotExist) {
		logger.Log.Warnf("[seed] data dir %s does not exist, skipping", cfg.DataDir)
		return nil
	}
	_, err = seeds.Setup(ctx, repo, cfg.DataDir, cfg.LoaderWorkers)
	return err
}
