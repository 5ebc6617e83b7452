// Package config provides configuration types and defaults for skillforge.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides (SKILLFORGE_API_BASE_URL, ...).
const EnvPrefix = "SKILLFORGE"

// Tracing exporters.
const (
	ExporterFile = "file"
	ExporterOTLP = "otlp"
)

// Config holds all configuration options for skillforge.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// APIConfig describes how to reach the SkillForge HTTP API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// Analytics enables the best-effort analytics write after a workflow is created.
	Analytics bool `mapstructure:"analytics" yaml:"analytics"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	AutoRefresh         bool          `mapstructure:"auto_refresh" yaml:"auto_refresh"`
	AutoRefreshInterval time.Duration `mapstructure:"auto_refresh_interval" yaml:"auto_refresh_interval"`
	ShowStatusBar       bool          `mapstructure:"show_status_bar" yaml:"show_status_bar"`
	// Actions are user-defined shell commands bound to a key in the workflow list.
	Actions map[string]ActionConfig `mapstructure:"actions" yaml:"actions,omitempty"`
}

// ActionConfig is a user-defined command run against the selected workflow.
// Command is a text/template rendered with the workflow's ID, Name, Priority
// and Status, then run with sh -c.
type ActionConfig struct {
	Key         string `mapstructure:"key" yaml:"key"`
	Command     string `mapstructure:"command" yaml:"command"`
	Description string `mapstructure:"description" yaml:"description"`
}

// reservedKeys are bound by the workflow list and cannot be used by actions.
var reservedKeys = map[string]bool{
	"j": true, "k": true, "n": true, "d": true, "y": true, "r": true, "q": true,
	"enter": true, "esc": true, "tab": true, "up": true, "down": true,
	"1": true, "2": true, "3": true, "ctrl+c": true,
}

// NormalizeKey lowercases a key name and folds spelling variants
// ("Ctrl-X", "ctrl+X") to the form bubbletea reports ("ctrl+x").
func NormalizeKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, "-", "+")
	switch k {
	case "return":
		return "enter"
	case "escape":
		return "esc"
	case "space":
		return " "
	}
	return k
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset" yaml:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode" yaml:"mode"`

	// Colors overrides individual color tokens ("text.primary", "status.error", ...).
	Colors map[string]string `mapstructure:"colors" yaml:"colors,omitempty"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Exporter string `mapstructure:"exporter" yaml:"exporter"`
	FilePath string `mapstructure:"file_path" yaml:"file_path"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

// Dir returns the per-user configuration directory (~/.config/skillforge).
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "skillforge")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "skillforge")
}

// DefaultConfigPath returns the path of the user config file.
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			Timeout:   60 * time.Second,
			Analytics: true,
		},
		UI: UIConfig{
			AutoRefresh:         true,
			AutoRefreshInterval: 30 * time.Second,
			ShowStatusBar:       true,
		},
		Log: LogConfig{
			Path: filepath.Join(Dir(), "debug.log"),
		},
		Tracing: TracingConfig{
			Exporter: ExporterFile,
			FilePath: filepath.Join(Dir(), "traces.jsonl"),
			Endpoint: "localhost:4317",
		},
	}
}

// SetDefaults registers every default value on v so that env overrides and
// Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.analytics", d.API.Analytics)
	v.SetDefault("ui.auto_refresh", d.UI.AutoRefresh)
	v.SetDefault("ui.auto_refresh_interval", d.UI.AutoRefreshInterval)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("theme.preset", d.Theme.Preset)
	v.SetDefault("theme.mode", d.Theme.Mode)
	v.SetDefault("log.enabled", d.Log.Enabled)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
}

// NewViper returns a viper instance with defaults and SKILLFORGE_* env
// overrides wired. A .env file in the working directory is loaded first;
// variables already set in the environment win.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (if non-empty) into a fresh viper
// instance and returns the validated Config alongside it.
func Load(path string) (Config, *viper.Viper, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	cfg, err := Decode(v)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, v, nil
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url %q: must be an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.UI.AutoRefresh && c.UI.AutoRefreshInterval < time.Second {
		return fmt.Errorf("ui.auto_refresh_interval must be at least 1s, got %s", c.UI.AutoRefreshInterval)
	}
	for name, action := range c.UI.Actions {
		key := NormalizeKey(action.Key)
		if key == "" {
			return fmt.Errorf("ui.actions.%s: key is required", name)
		}
		if reservedKeys[key] {
			return fmt.Errorf("ui.actions.%s: key %q is already bound", name, action.Key)
		}
		if strings.TrimSpace(action.Command) == "" {
			return fmt.Errorf("ui.actions.%s: command is required", name)
		}
	}
	switch c.Theme.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.mode %q: must be light, dark or empty", c.Theme.Mode)
	}
	if c.Tracing.Enabled {
		switch c.Tracing.Exporter {
		case ExporterFile:
			if c.Tracing.FilePath == "" {
				return errors.New("tracing.file_path is required for the file exporter")
			}
		case ExporterOTLP:
			if c.Tracing.Endpoint == "" {
				return errors.New("tracing.endpoint is required for the otlp exporter")
			}
		default:
			return fmt.Errorf("tracing.exporter %q: must be %s or %s", c.Tracing.Exporter, ExporterFile, ExporterOTLP)
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# SkillForge Configuration

# SkillForge API server
api:
  base_url: http://localhost:8000
  timeout: 60s
  # Record analytics for each created workflow (best effort, never blocks)
  analytics: true

# UI settings
ui:
  auto_refresh: true           # Periodically reload the workflow list
  auto_refresh_interval: 30s
  show_status_bar: true
  # Shell commands bound to keys in the workflow list. The command is a Go
  # template with .ID, .Name, .Priority and .Status of the selected workflow.
  # actions:
  #   open:
  #     key: o
  #     command: open "http://localhost:8000/workflows/{{.ID}}"
  #     description: Open in browser

# Theme configuration
theme:
  # Available presets:
  #   default        - Default skillforge theme
  #   dracula        - Dark theme with vibrant colors
  #   nord           - Arctic, north-bluish palette
  #   high-contrast  - High contrast for accessibility
  preset: default
  #
  # Force light or dark mode (default: detect from terminal)
  # mode: dark
  #
  # Override specific colors:
  # colors:
  #   text.primary: "#FFFFFF"
  #   status.error: "#FF0000"

# Debug log (the terminal UI owns stdout)
log:
  enabled: false
  # path: ~/.config/skillforge/debug.log

# OpenTelemetry tracing of API calls
tracing:
  enabled: false
  exporter: file               # file | otlp
  # file_path: ~/.config/skillforge/traces.jsonl
  # endpoint: localhost:4317   # otlp gRPC collector

# Every key can be overridden from the environment, e.g.
#   SKILLFORGE_API_BASE_URL=https://skillforge.example.com
# A .env file in the working directory is loaded automatically.
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
