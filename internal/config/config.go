// Package config loads ytdigest settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// ErrMissingAPIKey is returned by Validate when no YouTube Data API key is set.
var ErrMissingAPIKey = errors.New("YouTube API key not configured: set YTDIGEST_API_KEY")

type Config struct {
	// YouTube Data API
	APIKey string `json:"-"`
	APIURL string `json:"api_url"`

	// Dislike estimates
	DislikeAPIURL  string        `json:"dislike_api_url"`
	DislikeTimeout time.Duration `json:"dislike_timeout"`

	// Transcripts
	YTDLPPath   string `json:"ytdlp_path"`
	SubLanguage string `json:"sub_language"`
	WorkDir     string `json:"work_dir"`

	// Pipeline
	CommentLimit int           `json:"comment_limit"`
	Pace         time.Duration `json:"pace"`

	// Logging
	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"`

	ConfigDir string `json:"config_dir"`
}

// Load reads configuration from environment variables. A .env file in the
// config directory and then one in the working directory are read first;
// variables already set in the environment win.
func Load() *Config {
	loadDotEnv(filepath.Join(configDir(), ".env"), ".env")

	return &Config{
		APIKey: getEnv("YTDIGEST_API_KEY", ""),
		APIURL: strings.TrimRight(getEnv("YTDIGEST_API_URL", "https://www.googleapis.com"), "/"),

		DislikeAPIURL:  strings.TrimRight(getEnv("YTDIGEST_DISLIKE_API_URL", "https://returnyoutubedislikeapi.com"), "/"),
		DislikeTimeout: getEnvAsDuration("YTDIGEST_DISLIKE_TIMEOUT", 5*time.Second),

		YTDLPPath:   getEnv("YTDIGEST_YTDLP_PATH", "yt-dlp"),
		SubLanguage: getEnv("YTDIGEST_SUB_LANG", "id"),
		WorkDir:     getEnv("YTDIGEST_WORK_DIR", os.TempDir()),

		CommentLimit: getEnvAsInt("YTDIGEST_COMMENT_LIMIT", 20),
		Pace:         getEnvAsDuration("YTDIGEST_PACE", 200*time.Millisecond),

		LogFile:  getEnv("YTDIGEST_LOG_FILE", ""),
		LogLevel: getEnv("YTDIGEST_LOG_LEVEL", "warn"),

		ConfigDir: configDir(),
	}
}

// Validate reports settings that would make a report run fail.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.CommentLimit <= 0 {
		return errors.Errorf("comment limit must be positive, got %d", c.CommentLimit)
	}
	if c.DislikeTimeout <= 0 {
		return errors.Errorf("dislike timeout must be positive, got %s", c.DislikeTimeout)
	}
	if c.Pace < 0 {
		return errors.Errorf("pace must not be negative, got %s", c.Pace)
	}
	return nil
}

// configDir returns the configuration directory path.
func configDir() string {
	if dir := os.Getenv("YTDIGEST_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ytdigest")
}

func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			// Load never overrides variables that are already set.
			_ = godotenv.Load(p)
		}
	}
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return duration
		}
	}
	return defaultValue
}
