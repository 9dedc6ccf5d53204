package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":8080" || cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.RateLimit.Capacity != 30 || cfg.RateLimit.Refill != time.Minute {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}
	if cfg.Engine.DefaultCurrentSalary != 35000 || cfg.Engine.DefaultLocation != "National Average" || cfg.Engine.DefaultTimeHorizonYears != 20 {
		t.Errorf("unexpected engine defaults %+v", cfg.Engine)
	}
	if cfg.Cache.RedisAddr != "" || cfg.Postgres.DSN != "" {
		t.Errorf("expected no external stores by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CAREER_ROI_SERVER_ADDR", ":9090")
	t.Setenv("CAREER_ROI_CACHE_TTL", "5m")
	t.Setenv("CAREER_ROI_ENGINE_DEFAULT_TIME_HORIZON_YEARS", "30")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("expected 5m ttl, got %s", cfg.Cache.TTL)
	}
	if cfg.Engine.DefaultTimeHorizonYears != 30 {
		t.Errorf("expected horizon 30, got %d", cfg.Engine.DefaultTimeHorizonYears)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("expected OPENAI_API_KEY fallback, got %q", cfg.OpenAI.APIKey)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "config.yaml")
	doc := []byte("server:\n  addr: \":7070\"\nrate_limit:\n  capacity: 3\ncatalog:\n  path: /etc/career-roi/catalog.yaml\n")
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":7070" || cfg.RateLimit.Capacity != 3 || cfg.Catalog.Path != "/etc/career-roi/catalog.yaml" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CAREER_ROI_LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("CAREER_ROI_LOG_LEVEL") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level from .env, got %s", cfg.Log.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("capacity", func(t *testing.T) {
		t.Setenv("CAREER_ROI_RATE_LIMIT_CAPACITY", "0")
		if _, err := Load(""); err == nil {
			t.Error("expected error for zero capacity")
		}
	})
	t.Run("horizon", func(t *testing.T) {
		t.Setenv("CAREER_ROI_ENGINE_DEFAULT_TIME_HORIZON_YEARS", "41")
		if _, err := Load(""); err == nil {
			t.Error("expected error for horizon beyond 40")
		}
	})
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load("does-not-exist.yaml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
