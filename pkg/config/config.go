package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Weibo harvester
type Config struct {
	// Feed endpoint settings
	Weibo WeiboConfig `yaml:"weibo" json:"weibo"`

	// Collection time window
	Window WindowConfig `yaml:"window" json:"window"`

	// Pagination settings
	Collection CollectionConfig `yaml:"collection" json:"collection"`

	// Browser capture settings
	Capture CaptureConfig `yaml:"capture" json:"capture"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Retry policy for page fetches
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// WeiboConfig holds feed endpoint configuration
type WeiboConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`
	ContainerID    string        `yaml:"container_id" json:"container_id"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// WindowConfig holds the collection time window boundaries, in days
// before the collection date. Posts newer than RecentDays are still
// accumulating engagement and are skipped; posts older than
// RecentDays+AccentDays terminate the collection.
type WindowConfig struct {
	RecentDays int    `yaml:"recent_days" json:"recent_days"`
	AccentDays int    `yaml:"accent_days" json:"accent_days"`
	Timezone   string `yaml:"timezone" json:"timezone"`
}

// CollectionConfig holds pagination settings
type CollectionConfig struct {
	Limit     int           `yaml:"limit" json:"limit"`
	PageDelay time.Duration `yaml:"page_delay" json:"page_delay"`
}

// CaptureConfig holds browser capture settings
type CaptureConfig struct {
	Enabled           bool          `yaml:"enabled" json:"enabled"`
	Headless          bool          `yaml:"headless" json:"headless"`
	SettleDelay       time.Duration `yaml:"settle_delay" json:"settle_delay"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
	WindowWidth       int           `yaml:"window_width" json:"window_width"`
	WindowHeight      int           `yaml:"window_height" json:"window_height"`
}

// OutputConfig holds output directory and report naming configuration
type OutputConfig struct {
	Directory    string `yaml:"directory" json:"directory"`
	ReportSuffix string `yaml:"report_suffix" json:"report_suffix"`
}

// RetryConfig holds the bounded retry policy for page fetches.
// MaxAttempts of 1 means fail on the first error.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// RunDirectory returns the directory a run writes into. When no
// directory is configured the original dated naming is used.
func (o *OutputConfig) RunDirectory(now time.Time) string {
	if o.Directory != "" {
		return o.Directory
	}
	return fmt.Sprintf("%d年%d月%d日收集weibo", now.Year(), int(now.Month()), now.Day())
}

// ReportPath returns the full path of the spreadsheet report for a run
func (o *OutputConfig) ReportPath(now time.Time) string {
	name := fmt.Sprintf("%d-%d-%d%s.xlsx", now.Year(), int(now.Month()), now.Day(), o.ReportSuffix)
	return filepath.Join(o.RunDirectory(now), name)
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Weibo: WeiboConfig{
			BaseURL:        "https://m.weibo.cn/api/container/getIndex",
			ContainerID:    "1076037243323531",
			UserAgent:      "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
			RequestTimeout: 30 * time.Second,
		},
		Window: WindowConfig{
			RecentDays: 3,
			AccentDays: 7,
			Timezone:   "Asia/Shanghai",
		},
		Collection: CollectionConfig{
			Limit:     50,
			PageDelay: time.Second,
		},
		Capture: CaptureConfig{
			Enabled:           true,
			Headless:          true,
			SettleDelay:       3 * time.Second,
			NavigationTimeout: 30 * time.Second,
			WindowWidth:       1280,
			WindowHeight:      800,
		},
		Output: OutputConfig{
			Directory:    "",
			ReportSuffix: "ウェイボー集計",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			BaseDelay:   2 * time.Second,
			MaxDelay:    30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if outputDir := os.Getenv("WBHARVEST_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}
	if containerID := os.Getenv("WBHARVEST_CONTAINER_ID"); containerID != "" {
		c.Weibo.ContainerID = containerID
	}

	if recent := os.Getenv("WBHARVEST_RECENT_DAYS"); recent != "" {
		var val int
		if _, err := fmt.Sscanf(recent, "%d", &val); err == nil && val >= 0 {
			c.Window.RecentDays = val
		}
	}
	if accent := os.Getenv("WBHARVEST_ACCENT_DAYS"); accent != "" {
		var val int
		if _, err := fmt.Sscanf(accent, "%d", &val); err == nil && val >= 0 {
			c.Window.AccentDays = val
		}
	}
	if limit := os.Getenv("WBHARVEST_LIMIT"); limit != "" {
		var val int
		if _, err := fmt.Sscanf(limit, "%d", &val); err == nil && val > 0 {
			c.Collection.Limit = val
		}
	}

	if captures := os.Getenv("WBHARVEST_CAPTURES"); captures != "" {
		c.Capture.Enabled = strings.ToLower(captures) == "true"
	}

	if logLevel := os.Getenv("WBHARVEST_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".wbharvest.yaml",
		".wbharvest.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "wbharvest", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".wbharvest.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Weibo.BaseURL == "" {
		errs = append(errs, errors.New("feed base URL is required"))
	}
	if c.Weibo.ContainerID == "" {
		errs = append(errs, errors.New("feed container ID is required"))
	}
	if c.Weibo.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Window.RecentDays < 0 {
		errs = append(errs, errors.New("recent days cannot be negative"))
	}
	if c.Window.AccentDays < 0 {
		errs = append(errs, errors.New("accent days cannot be negative"))
	}
	if _, err := time.LoadLocation(c.Window.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone: %w", err))
	}

	if c.Collection.Limit <= 0 {
		errs = append(errs, errors.New("collection limit must be positive"))
	}
	if c.Collection.PageDelay < 0 {
		errs = append(errs, errors.New("page delay cannot be negative"))
	}

	if c.Capture.SettleDelay < 0 {
		errs = append(errs, errors.New("settle delay cannot be negative"))
	}
	if c.Capture.NavigationTimeout <= 0 {
		errs = append(errs, errors.New("navigation timeout must be positive"))
	}
	if c.Capture.WindowWidth <= 0 || c.Capture.WindowHeight <= 0 {
		errs = append(errs, errors.New("browser window dimensions must be positive"))
	}

	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("retry max attempts must be at least 1"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Location returns the reference timezone for boundary comparisons.
// Validate must have passed for this to be safe.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Window.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if recent, ok := flags["recent-days"].(int); ok && recent >= 0 {
		c.Window.RecentDays = recent
	}
	if accent, ok := flags["accent-days"].(int); ok && accent >= 0 {
		c.Window.AccentDays = accent
	}
	if limit, ok := flags["limit"].(int); ok && limit > 0 {
		c.Collection.Limit = limit
	}
	if captures, ok := flags["captures"].(bool); ok {
		c.Capture.Enabled = captures
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".wbharvest.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
