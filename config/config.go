package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectDir string `json:"project_dir"`
	DataDir    string `json:"data_dir"`
	CacheDir   string `json:"cache_dir"`
	ReportsDir string `json:"reports_dir"`

	// SociaVault API configuration
	APIBaseURL       string `json:"api_base_url"`
	SociaVaultAPIKey string `json:"-"`

	RequestTimeout time.Duration `json:"request_timeout"`
	MaxRetries     int           `json:"max_retries"`
	RetryBaseDelay time.Duration `json:"retry_base_delay"`
	SourceDelay    time.Duration `json:"source_delay"`

	CacheEnabled bool          `json:"cache_enabled"`
	CacheTTL     time.Duration `json:"cache_ttl"`

	Debug bool `json:"debug"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir: currentDir,
		DataDir:    filepath.Join(currentDir, "data"),
		CacheDir:   filepath.Join(currentDir, "data", "cache"),
		ReportsDir: filepath.Join(currentDir, "data", "reports"),

		APIBaseURL: "https://api.sociavault.com/v1",

		RequestTimeout: 30 * time.Second,
		MaxRetries:     3,
		RetryBaseDelay: 2 * time.Second,
		SourceDelay:    500 * time.Millisecond,

		CacheEnabled: true,
		CacheTTL:     1 * time.Hour,

		Debug: false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("CACHE_DIR"); val != "" {
		c.CacheDir = val
	}
	if val := os.Getenv("REPORTS_DIR"); val != "" {
		c.ReportsDir = val
	}

	if val := os.Getenv("SOCIAVAULT_BASE_URL"); val != "" {
		c.APIBaseURL = val
	}
	if val := os.Getenv("SOCIAVAULT_API_KEY"); val != "" {
		c.SociaVaultAPIKey = val
	}

	if val := os.Getenv("MAX_RETRIES"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxRetries = v
		}
	}
	if val := os.Getenv("REQUEST_TIMEOUT_SECONDS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.RequestTimeout = time.Duration(v) * time.Second
		}
	}

	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if cache, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = cache
		}
	}

	if val := os.Getenv("TICKERSOCIAL_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

// Validate reports missing required settings. The API key check runs before
// any network call is attempted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SociaVaultAPIKey) == "" {
		return fmt.Errorf("SOCIAVAULT_API_KEY environment variable not set")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be >= 0, got %d", c.MaxRetries)
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataDir, c.CacheDir, c.ReportsDir}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}
