package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadConfigFromYAML writes configYAML to a temp file and loads it.
func loadConfigFromYAML(t *testing.T, configYAML string) Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0600))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.API.Analytics)
	assert.True(t, cfg.UI.AutoRefresh)
	assert.Equal(t, 30*time.Second, cfg.UI.AutoRefreshInterval)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, ExporterFile, cfg.Tracing.Exporter)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, v, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, Defaults().API, cfg.API)
	assert.Equal(t, Defaults().UI, cfg.UI)
}

func TestLoad_FromYAML(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
api:
  base_url: https://skillforge.example.com/
  timeout: 5s
  analytics: false
ui:
  auto_refresh: false
theme:
  preset: nord
  mode: dark
`)

	assert.Equal(t, "https://skillforge.example.com", cfg.API.BaseURL, "trailing slash trimmed")
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.API.Analytics)
	assert.False(t, cfg.UI.AutoRefresh)
	assert.Equal(t, "nord", cfg.Theme.Preset)
	assert.Equal(t, "dark", cfg.Theme.Mode)
	// Untouched keys keep defaults
	assert.True(t, cfg.UI.ShowStatusBar)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SKILLFORGE_API_BASE_URL", "http://10.0.0.5:9000")
	t.Setenv("SKILLFORGE_API_TIMEOUT", "15s")

	cfg, _, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:9000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: ftp://example.com\n"), 0600))

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url is required"},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api" }, "must be an http(s) URL"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout must be positive"},
		{"refresh too fast", func(c *Config) { c.UI.AutoRefreshInterval = 10 * time.Millisecond }, "auto_refresh_interval"},
		{"refresh disabled ignores interval", func(c *Config) {
			c.UI.AutoRefresh = false
			c.UI.AutoRefreshInterval = 0
		}, ""},
		{"bad theme mode", func(c *Config) { c.Theme.Mode = "sepia" }, "theme.mode"},
		{"unknown exporter", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "zipkin"
		}, "tracing.exporter"},
		{"otlp without endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = ExporterOTLP
			c.Tracing.Endpoint = ""
		}, "tracing.endpoint"},
		{"file exporter without path", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.FilePath = ""
		}, "tracing.file_path"},
		{"disabled tracing ignores exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultConfigTemplate_LoadsCleanly(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())

	assert.Equal(t, Defaults().API, cfg.API)
	assert.Equal(t, Defaults().UI, cfg.UI)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestLoad_Actions(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
ui:
  actions:
    open:
      key: o
      command: open "http://localhost:8000/workflows/{{.ID}}"
      description: Open in browser
`)

	require.Len(t, cfg.UI.Actions, 1)
	action := cfg.UI.Actions["open"]
	assert.Equal(t, "o", action.Key)
	assert.Equal(t, "Open in browser", action.Description)
	assert.Contains(t, action.Command, "{{.ID}}")
}

func TestValidate_Actions(t *testing.T) {
	tests := []struct {
		name    string
		action  ActionConfig
		wantErr string
	}{
		{name: "valid", action: ActionConfig{Key: "o", Command: "echo {{.ID}}"}},
		{name: "missing key", action: ActionConfig{Command: "echo"}, wantErr: "key is required"},
		{name: "reserved key", action: ActionConfig{Key: "d", Command: "echo"}, wantErr: "already bound"},
		{name: "reserved key other spelling", action: ActionConfig{Key: "Ctrl-C", Command: "echo"}, wantErr: "already bound"},
		{name: "missing command", action: ActionConfig{Key: "o", Command: "  "}, wantErr: "command is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.UI.Actions = map[string]ActionConfig{"a": tt.action}

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"o":       "o",
		"Ctrl-X":  "ctrl+x",
		"ctrl+X":  "ctrl+x",
		" Enter ": "enter",
		"Return":  "enter",
		"escape":  "esc",
		"space":   " ",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, NormalizeKey(in))
		})
	}
}
