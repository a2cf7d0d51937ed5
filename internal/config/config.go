package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/scanbar"
)

// Config holds the full application configuration for the CLI and server.
type Config struct {
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
	Verbose  bool          `mapstructure:"verbose" yaml:"verbose"`
	Scanner  ScannerConfig `mapstructure:"scanner" yaml:"scanner"`
	Output   OutputConfig  `mapstructure:"output" yaml:"output"`
	Server   ServerConfig  `mapstructure:"server" yaml:"server"`
}

// ScannerConfig configures the scan operation.
type ScannerConfig struct {
	// Symbologies restricts scanning to the named symbologies ("qrcode",
	// "code128", ...). Empty means all.
	Symbologies []string `mapstructure:"symbologies" yaml:"symbologies"`
	// Options holds raw configuration strings like "qrcode.min-len=4".
	Options   []string `mapstructure:"options" yaml:"options"`
	TryHarder bool     `mapstructure:"try_harder" yaml:"try_harder"`
	Cache     bool     `mapstructure:"cache" yaml:"cache"`
}

// OutputConfig configures CLI result output.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// ServerConfig configures the HTTP scan server.
type ServerConfig struct {
	Host               string `mapstructure:"host" yaml:"host"`
	Port               int    `mapstructure:"port" yaml:"port"`
	CORSOrigin         string `mapstructure:"cors_origin" yaml:"cors_origin"`
	MaxUploadMB        int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	TimeoutSec         int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	RateLimitPerMinute int    `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		Scanner:  ScannerConfig{},
		Output:   OutputConfig{Format: "text"},
		Server: ServerConfig{
			Host:               "localhost",
			Port:               8080,
			CORSOrigin:         "*",
			MaxUploadMB:        50,
			TimeoutSec:         30,
			RateLimitPerMinute: 0, // disabled
		},
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	switch c.Output.Format {
	case "text", "json", "csv", "xml":
	default:
		return fmt.Errorf("invalid output format %q (must be text, json, csv or xml)", c.Output.Format)
	}

	for _, name := range c.Scanner.Symbologies {
		if _, err := scanbar.ParseSymbology(name); err != nil {
			return fmt.Errorf("scanner config: %w", err)
		}
	}
	for _, opt := range c.Scanner.Options {
		if _, _, _, err := scanbar.ParseConfig(opt); err != nil {
			return fmt.Errorf("scanner config: %w", err)
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size %dMB", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid server timeout %ds", c.Server.TimeoutSec)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("invalid rate limit %d/min", c.Server.RateLimitPerMinute)
	}
	return nil
}

// BuildScanner constructs a scanbar.Scanner from the scanner section.
func (c *Config) BuildScanner() (*scanbar.Scanner, error) {
	b := scanbar.NewScannerBuilder().
		WithTryHarder(c.Scanner.TryHarder).
		WithCache(c.Scanner.Cache)

	if len(c.Scanner.Symbologies) > 0 {
		b.WithConfig(scanbar.SymbologyNone, scanbar.ConfigEnable, 0)
		for _, name := range c.Scanner.Symbologies {
			sym, err := scanbar.ParseSymbology(name)
			if err != nil {
				return nil, err
			}
			b.WithConfig(sym, scanbar.ConfigEnable, 1)
		}
	}
	for _, opt := range c.Scanner.Options {
		b.WithConfigString(opt)
	}
	return b.Build()
}

// YAML renders the configuration as a YAML document, as written by
// "scanbar config init".
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
