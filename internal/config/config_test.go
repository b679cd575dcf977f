package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "STORE", "DATABASE_URL", "DB_POOL_SIZE", "SQLITE_PATH",
		"MIGRATIONS_DIR", "DATA_DIR", "LOADER_WORKERS", "SEED", "JOB_STORE", "REDIS_URL",
		"JOB_TTL", "REPORT_BASE_PATH", "REQUEST_TIMEOUT", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":8080" || cfg.Store != StoreMemory || cfg.LoaderWorkers != 4 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.JobTTL != 0 {
		t.Errorf("JobTTL = %s, want 0", cfg.JobTTL)
	}
	if cfg.ReportBasePath != "/api/v1/series/_report" {
		t.Errorf("ReportBasePath = %q", cfg.ReportBasePath)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: 9000\nstore: sqlite\njob_ttl: 15m\nloader_workers: 2\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOADER_WORKERS", "6")
	t.Setenv("SEED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 || cfg.Store != StoreSQLite {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.JobTTL != 15*time.Minute {
		t.Errorf("JobTTL = %s, want 15m", cfg.JobTTL)
	}
	if cfg.LoaderWorkers != 6 {
		t.Errorf("LoaderWorkers = %d, env should win", cfg.LoaderWorkers)
	}
	if cfg.Seed {
		t.Error("Seed = true, want false")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"STORE", "mongo", "unknown store"},
		{"JOB_STORE", "disk", "unknown job store"},
		{"LOADER_WORKERS", "0", "loader workers"},
		{"JOB_TTL", "-1m", "job ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
