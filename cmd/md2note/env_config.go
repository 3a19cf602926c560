package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-md2note/internal/config"
	"github.com/alnah/go-md2note/internal/publish"
)

// Environment variable names.
const (
	envPrefix = "MD2NOTE_"

	envConfigPath  = "MD2NOTE_CONFIG"
	envRawHTML     = "MD2NOTE_RAW_HTML"
	envBaseURL     = "MD2NOTE_BASE_URL"
	envArticlesDir = "MD2NOTE_ARTICLES_DIR"
	envDiffBase    = "MD2NOTE_DIFF_BASE"
	envOutputDir   = "MD2NOTE_OUTPUT_DIR"
	envWorkers     = "MD2NOTE_WORKERS"
	envTimeout     = "MD2NOTE_TIMEOUT"
	envHeadful     = "MD2NOTE_HEADFUL"

	envBrowserBin = "ROD_BROWSER_BIN"
	envNoSandbox  = "ROD_NO_SANDBOX"

	envNoteCookie   = "NOTE_COOKIE"
	envNoteEmail    = "NOTE_EMAIL"
	envNotePassword = "NOTE_PASSWORD"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // MD2NOTE_CONFIG: config file name or path
	RawHTML    string // MD2NOTE_RAW_HTML: keep, sanitize, drop
	BaseURL    string // MD2NOTE_BASE_URL: base for relative targets

	// Tier 2 - Articles and output
	ArticlesDir string // MD2NOTE_ARTICLES_DIR: article directory
	DiffBase    string // MD2NOTE_DIFF_BASE: revision compared against HEAD
	OutputDir   string // MD2NOTE_OUTPUT_DIR: default output directory
	Workers     int    // MD2NOTE_WORKERS: parallel workers

	// Tier 3 - Browser
	Timeout    string // MD2NOTE_TIMEOUT: per-step browser timeout
	Headful    bool   // MD2NOTE_HEADFUL: show the browser window
	BrowserBin string // ROD_BROWSER_BIN: custom Chrome binary
	NoSandbox  bool   // ROD_NO_SANDBOX: disable the Chrome sandbox

	// Secrets, never read from the config file
	Auth publish.AuthConfig // NOTE_COOKIE, NOTE_EMAIL, NOTE_PASSWORD
}

// knownEnvVars lists valid MD2NOTE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfigPath:  true,
	envRawHTML:     true,
	envBaseURL:     true,
	envArticlesDir: true,
	envDiffBase:    true,
	envOutputDir:   true,
	envWorkers:     true,
	envTimeout:     true,
	envHeadful:     true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv(envConfigPath),
		RawHTML:     getenv(envRawHTML),
		BaseURL:     getenv(envBaseURL),
		ArticlesDir: getenv(envArticlesDir),
		DiffBase:    getenv(envDiffBase),
		OutputDir:   getenv(envOutputDir),
		Timeout:     getenv(envTimeout),
		BrowserBin:  getenv(envBrowserBin),
		NoSandbox:   getenv(envNoSandbox) == "1",
		Auth: publish.AuthConfig{
			Cookie:   getenv(envNoteCookie),
			Email:    getenv(envNoteEmail),
			Password: getenv(envNotePassword),
		},
	}

	if workers := getenv(envWorkers); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if headful := getenv(envHeadful); headful != "" {
		if b, err := strconv.ParseBool(headful); err == nil {
			cfg.Headful = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2NOTE_* variables.
// Helps catch typos like MD2NOTE_RAWHTML instead of MD2NOTE_RAW_HTML.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A set variable overrides the config file value.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.RawHTML != "" {
		cfg.Convert.RawHTML = env.RawHTML
	}
	if env.BaseURL != "" {
		cfg.Convert.BaseURL = env.BaseURL
	}

	// Tier 2
	if env.ArticlesDir != "" {
		cfg.Articles.Dir = env.ArticlesDir
	}
	if env.DiffBase != "" {
		cfg.Articles.DiffBase = env.DiffBase
	}
	if env.OutputDir != "" {
		cfg.Convert.OutputDir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Convert.Workers = env.Workers
	}

	// Tier 3
	if env.Timeout != "" {
		cfg.Publish.Timeout = env.Timeout
	}
	if env.Headful {
		cfg.Publish.Headful = true
	}
	if env.BrowserBin != "" {
		cfg.Publish.BrowserBin = env.BrowserBin
	}
	if env.NoSandbox {
		cfg.Publish.NoSandbox = true
	}
}
