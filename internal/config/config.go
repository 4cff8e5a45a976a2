// Package config handles TOML-based configuration loading and validation.
// TOML is parsed as data only. A .env file and XVIEW_* environment variables
// can override the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"xview/internal/extract"
)

// Environment variables that override the config file.
const (
	EnvProxy   = "XVIEW_PROXY"
	EnvTimeout = "XVIEW_TIMEOUT"
	EnvDebug   = "XVIEW_DEBUG"
)

// Config holds all application configuration.
type Config struct {
	Base        string  `toml:"base"`
	Proxy       string  `toml:"proxy"`
	Timeout     int     `toml:"timeout"`    // seconds
	RateLimit   float64 `toml:"rate_limit"` // requests per second
	BlurLevel   int     `toml:"blur_level"`
	Quality     string  `toml:"quality"`
	DownloadDir string  `toml:"download_dir"`
	Debug       bool    `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Base:        "https://secure.xview.tv/",
		Proxy:       "",
		Timeout:     30,
		RateLimit:   2.0,
		BlurLevel:   0,
		Quality:     extract.QualityBest,
		DownloadDir: "~/Downloads/xview",
		Debug:       false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "xview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "xview"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, applies .env and environment overrides and
// validates the result. A missing config file yields the defaults.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := ConfigPath(); err == nil {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Variables already set in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvProxy)); v != "" {
		c.Proxy = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		c.Timeout = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvDebug)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate checks config values are within acceptable bounds and
// normalizes the base URL to end with a slash.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Base)
	if c.Base == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base must be an http(s) URL, got %q", c.Base)
	}
	if !strings.HasSuffix(c.Base, "/") {
		c.Base += "/"
	}

	if c.Proxy != "" {
		p, err := url.Parse(c.Proxy)
		if err != nil {
			return fmt.Errorf("parsing proxy: %w", err)
		}
		switch p.Scheme {
		case "http", "https", "socks5":
		default:
			return fmt.Errorf("unsupported proxy scheme %q (valid: http, https, socks5)", p.Scheme)
		}
		if p.Host == "" {
			return fmt.Errorf("proxy %q has no host", c.Proxy)
		}
	}

	if c.Timeout < 1 || c.Timeout > 600 {
		return fmt.Errorf("timeout %d out of range (1-600 seconds)", c.Timeout)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %g", c.RateLimit)
	}
	if c.BlurLevel < 0 || c.BlurLevel > 100 {
		return fmt.Errorf("blur_level %d out of range (0-100)", c.BlurLevel)
	}
	if !extract.ValidQuality(c.Quality) {
		return fmt.Errorf("unsupported quality %q (valid: best, worst, half, or a resolution like 720)", c.Quality)
	}
	return nil
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}
