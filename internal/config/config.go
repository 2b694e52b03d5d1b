// internal/config/config.go
//
// Runtime configuration for the quiz. A yaml file under the user's
// ~/.lifegoals directory carries the deploy-time settings (LMS endpoint,
// timing knobs, helpline); environment variables override the fields that
// operators most often need to change per environment.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// HomeDir is the name of the dot-directory we keep under $HOME.
const HomeDir = ".lifegoals"

const configFileName = "config.yaml"

const defaultConfigYAML = `# lifegoals quiz configuration
version: 1

lms:
  # Lead Management System intake endpoint. Every lead and booking is
  # POSTed here; override per environment with LIFEGOALS_LMS_ENDPOINT.
  endpoint: https://lms.example.in/api/lead
  timeout_seconds: 10

quiz:
  session_minutes: 5
  question_seconds: 30
  countdown_from: 3

helpline: "+91 1800 209 9999"
`

// LMSConfig configures the lead submission client.
type LMSConfig struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// QuizConfig carries the three timing knobs of the game.
type QuizConfig struct {
	SessionMinutes  int `yaml:"session_minutes"`
	QuestionSeconds int `yaml:"question_seconds"`
	CountdownFrom   int `yaml:"countdown_from"`
}

// FileConfig models config.yaml.
type FileConfig struct {
	Version  int        `yaml:"version"`
	LMS      LMSConfig  `yaml:"lms"`
	Quiz     QuizConfig `yaml:"quiz"`
	Helpline string     `yaml:"helpline"`
}

// envOverrides are applied on top of the file config.
type envOverrides struct {
	Endpoint    string `env:"LIFEGOALS_LMS_ENDPOINT"`
	LogPath     string `env:"LIFEGOALS_LOG_PATH"`
	CatalogPath string `env:"LIFEGOALS_CATALOG"`
}

// Config is the resolved runtime configuration.
type Config struct {
	// Dir is the ~/.lifegoals directory holding config and logs.
	Dir string

	File FileConfig

	// LogPath is where the session logbook writes.
	LogPath string

	// CatalogPath overrides the embedded goal/question catalog when set.
	CatalogPath string
}

// Load resolves configuration from ~/.lifegoals/config.yaml (written with
// defaults on first run) and the environment.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("config: resolve home dir: %w", err)
	}
	return LoadFrom(filepath.Join(home, HomeDir))
}

// LoadFrom resolves configuration rooted at dir. Split out of Load so tests
// can point at a temp directory.
func LoadFrom(dir string) (*Config, error) {
	if err := initDir(dir); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var file FileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	applyDefaults(&file)

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	cfg := &Config{
		Dir:         dir,
		File:        file,
		LogPath:     filepath.Join(dir, "logs", "session.log"),
		CatalogPath: overrides.CatalogPath,
	}
	if overrides.Endpoint != "" {
		cfg.File.LMS.Endpoint = overrides.Endpoint
	}
	if overrides.LogPath != "" {
		cfg.LogPath = overrides.LogPath
	}
	return cfg, nil
}

// initDir creates the dot-directory layout and seeds config.yaml with the
// default document when missing.
func initDir(dir string) error {
	for _, sub := range []string{dir, filepath.Join(dir, "logs")} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", sub, err)
		}
	}
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("config: write default %s: %w", path, err)
	}
	return nil
}

func applyDefaults(file *FileConfig) {
	if file.LMS.TimeoutSeconds <= 0 {
		file.LMS.TimeoutSeconds = 10
	}
	if file.Quiz.SessionMinutes <= 0 {
		file.Quiz.SessionMinutes = 5
	}
	if file.Quiz.QuestionSeconds <= 0 {
		file.Quiz.QuestionSeconds = 30
	}
	if file.Quiz.CountdownFrom <= 0 {
		file.Quiz.CountdownFrom = 3
	}
}

// SessionBudget is the overall time allowed for the assessment.
func (c *Config) SessionBudget() time.Duration {
	return time.Duration(c.File.Quiz.SessionMinutes) * time.Minute
}

// QuestionTimeout is the per-question answer window.
func (c *Config) QuestionTimeout() time.Duration {
	return time.Duration(c.File.Quiz.QuestionSeconds) * time.Second
}

// LMSTimeout bounds a single submission round trip.
func (c *Config) LMSTimeout() time.Duration {
	return time.Duration(c.File.LMS.TimeoutSeconds) * time.Second
}
