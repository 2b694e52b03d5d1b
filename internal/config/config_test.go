package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromSeedsDefaults(t *testing.T) {
	t.Setenv("LIFEGOALS_LMS_ENDPOINT", "")
	t.Setenv("LIFEGOALS_LOG_PATH", "")
	t.Setenv("LIFEGOALS_CATALOG", "")
	dir := t.TempDir()
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("default config.yaml not written: %v", err)
	}
	if cfg.File.LMS.Endpoint == "" {
		t.Fatalf("default endpoint missing")
	}
	if got := cfg.SessionBudget(); got != 5*time.Minute {
		t.Fatalf("session budget = %v, want 5m", got)
	}
	if got := cfg.QuestionTimeout(); got != 30*time.Second {
		t.Fatalf("question timeout = %v, want 30s", got)
	}
	if cfg.File.Quiz.CountdownFrom != 3 {
		t.Fatalf("countdown = %d, want 3", cfg.File.Quiz.CountdownFrom)
	}
	if cfg.LogPath != filepath.Join(dir, "logs", "session.log") {
		t.Fatalf("log path = %s", cfg.LogPath)
	}
}

func TestLoadFromAppliesEnvOverrides(t *testing.T) {
	t.Setenv("LIFEGOALS_LMS_ENDPOINT", "https://staging.example.in/lead")
	t.Setenv("LIFEGOALS_LOG_PATH", "/tmp/quiz.log")
	t.Setenv("LIFEGOALS_CATALOG", "/tmp/catalog.yaml")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File.LMS.Endpoint != "https://staging.example.in/lead" {
		t.Fatalf("endpoint override not applied: %s", cfg.File.LMS.Endpoint)
	}
	if cfg.LogPath != "/tmp/quiz.log" {
		t.Fatalf("log path override not applied: %s", cfg.LogPath)
	}
	if cfg.CatalogPath != "/tmp/catalog.yaml" {
		t.Fatalf("catalog override not applied: %s", cfg.CatalogPath)
	}
}

func TestLoadFromReusesExistingConfig(t *testing.T) {
	t.Setenv("LIFEGOALS_LMS_ENDPOINT", "")
	t.Setenv("LIFEGOALS_LOG_PATH", "")
	dir := t.TempDir()
	doc := `version: 1
lms:
  endpoint: https://prod.example.in/lead
  timeout_seconds: 3
quiz:
  session_minutes: 2
  question_seconds: 15
  countdown_from: 5
helpline: "1800"
`
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File.LMS.Endpoint != "https://prod.example.in/lead" {
		t.Fatalf("existing config overwritten: %s", cfg.File.LMS.Endpoint)
	}
	if cfg.SessionBudget() != 2*time.Minute || cfg.QuestionTimeout() != 15*time.Second {
		t.Fatalf("timings not honored: %v / %v", cfg.SessionBudget(), cfg.QuestionTimeout())
	}
	if cfg.LMSTimeout() != 3*time.Second {
		t.Fatalf("lms timeout = %v, want 3s", cfg.LMSTimeout())
	}
}
