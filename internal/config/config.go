package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2note/internal/lint"
	"github.com/alnah/go-md2note/internal/pipeline"
	"github.com/alnah/go-md2note/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 1024 // Directories and binaries
	MaxURLLength      = 2048 // Browser limit
	MaxRevisionLength = 200  // "HEAD~1", "origin/main", a full SHA
	MaxDurationLength = 20   // "30s", "2m30s"
	MaxWorkers        = 32
)

// Defaults applied before a config file is decoded.
const (
	DefaultArticlesDir    = "articles"
	DefaultDiffBase       = "HEAD~1"
	DefaultPublishBaseURL = "https://note.com"
	DefaultPublishTimeout = "30s"
)

// Config holds all configuration for converting and publishing articles.
type Config struct {
	Articles ArticlesConfig `yaml:"articles"`
	Convert  ConvertConfig  `yaml:"convert"`
	Lint     LintConfig     `yaml:"lint"`
	Publish  PublishConfig  `yaml:"publish"`
}

// ArticlesConfig locates the article sources.
type ArticlesConfig struct {
	Dir      string `yaml:"dir"`      // Directory scanned by "changed" and "publish --changed"
	DiffBase string `yaml:"diffBase"` // Revision compared against HEAD
}

// ConvertConfig defines conversion options.
type ConvertConfig struct {
	RawHTML   string `yaml:"rawHTML"`   // "keep", "sanitize" or "drop"
	BaseURL   string `yaml:"baseURL"`   // Base for relative image and link targets (empty = leave as is)
	OutputDir string `yaml:"outputDir"` // Default output directory (empty = next to source)
	Workers   int    `yaml:"workers"`   // Batch workers (0 = auto)
}

// LintConfig defines linter options.
type LintConfig struct {
	Disable []string `yaml:"disable"` // Rule IDs to skip
}

// PublishConfig defines browser and site options for publishing.
type PublishConfig struct {
	BaseURL    string `yaml:"baseURL"`
	Timeout    string `yaml:"timeout"`    // Go duration per browser step
	Headful    bool   `yaml:"headful"`    // Show the browser window
	BrowserBin string `yaml:"browserBin"` // Pre-installed Chrome (empty = rod download)
	NoSandbox  bool   `yaml:"noSandbox"`  // Required in most CI containers
}

// TimeoutDuration returns the parsed publish timeout, or zero when unset.
// Call Validate first; an invalid value also yields zero.
func (p PublishConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field lengths and value domains.
// Returns the first validation error encountered.
func (c *Config) Validate() error {
	lengths := []struct {
		name  string
		value string
		max   int
	}{
		{"articles.dir", c.Articles.Dir, MaxPathLength},
		{"articles.diffBase", c.Articles.DiffBase, MaxRevisionLength},
		{"convert.baseURL", c.Convert.BaseURL, MaxURLLength},
		{"convert.outputDir", c.Convert.OutputDir, MaxPathLength},
		{"publish.baseURL", c.Publish.BaseURL, MaxURLLength},
		{"publish.timeout", c.Publish.Timeout, MaxDurationLength},
		{"publish.browserBin", c.Publish.BrowserBin, MaxPathLength},
	}
	for _, f := range lengths {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Convert.RawHTML != "" {
		if _, err := pipeline.ParseRawHTMLMode(c.Convert.RawHTML); err != nil {
			return fmt.Errorf("%w: convert.rawHTML: %w", ErrInvalidValue, err)
		}
	}
	if c.Convert.Workers < 0 || c.Convert.Workers > MaxWorkers {
		return fmt.Errorf("%w: convert.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Convert.Workers)
	}
	if c.Convert.BaseURL != "" {
		if err := validateAbsoluteURL("convert.baseURL", c.Convert.BaseURL); err != nil {
			return err
		}
	}

	if err := lint.ValidateRuleIDs(c.Lint.Disable); err != nil {
		return fmt.Errorf("%w: lint.disable: %w", ErrInvalidValue, err)
	}

	if c.Publish.BaseURL != "" {
		if err := validateAbsoluteURL("publish.baseURL", c.Publish.BaseURL); err != nil {
			return err
		}
	}
	if c.Publish.Timeout != "" {
		d, err := time.ParseDuration(c.Publish.Timeout)
		if err != nil {
			return fmt.Errorf("%w: publish.timeout: %v", ErrInvalidValue, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: publish.timeout must be positive, got %s", ErrInvalidValue, c.Publish.Timeout)
		}
	}

	return nil
}

// validateFieldLength returns an error if value exceeds maxLength.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s is %d characters (max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateAbsoluteURL requires an http or https URL with a host.
func validateAbsoluteURL(fieldName, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, fieldName, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL, got %q", ErrInvalidValue, fieldName, raw)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Articles: ArticlesConfig{
			Dir:      DefaultArticlesDir,
			DiffBase: DefaultDiffBase,
		},
		Convert: ConvertConfig{
			RawHTML: string(pipeline.RawHTMLKeep),
		},
		Publish: PublishConfig{
			BaseURL: DefaultPublishBaseURL,
			Timeout: DefaultPublishTimeout,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it searches for nameOrPath.yaml in standard locations.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files a config name resolves to, in lookup order:
// name.yaml and name.yml in the current directory, then in the user config
// directory (~/.config/go-md2note/ on Linux).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2note", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
