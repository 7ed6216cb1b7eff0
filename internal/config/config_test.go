package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != "8080" {
		t.Errorf("ListenPort = %q", cfg.ListenPort)
	}
	if cfg.MaxPerRun != 50 {
		t.Errorf("MaxPerRun = %d", cfg.MaxPerRun)
	}
	if cfg.RunTimeout != 2*time.Minute {
		t.Errorf("RunTimeout = %v", cfg.RunTimeout)
	}
	if cfg.EnableHeadless {
		t.Error("EnableHeadless should default to false")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_PER_RUN", "25")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("ENABLE_HEADLESS", "true")

	cfg := Load()
	if cfg.ListenPort != "9090" {
		t.Errorf("ListenPort = %q", cfg.ListenPort)
	}
	if cfg.MaxPerRun != 25 {
		t.Errorf("MaxPerRun = %d", cfg.MaxPerRun)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.FetchTimeout)
	}
	if !cfg.EnableHeadless {
		t.Error("EnableHeadless = false")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_PER_RUN", "lots")
	t.Setenv("RUN_TIMEOUT", "soon")

	cfg := Load()
	if cfg.MaxPerRun != 50 {
		t.Errorf("MaxPerRun = %d, want fallback 50", cfg.MaxPerRun)
	}
	if cfg.RunTimeout != 2*time.Minute {
		t.Errorf("RunTimeout = %v, want fallback", cfg.RunTimeout)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "app",
		PostgresPassword: "secret",
		PostgresDB:       "events",
		PostgresSSLMode:  "disable",
	}
	want := "postgres://app:secret@db:5432/events?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestRetention(t *testing.T) {
	cfg := &Config{RetentionDays: 7}
	if got := cfg.Retention(); got != 7*24*time.Hour {
		t.Errorf("Retention = %v", got)
	}
}
