// Package cmd implements the skillforge command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/skillforge/internal/api"
	"github.com/zjrosen/skillforge/internal/config"
	"github.com/zjrosen/skillforge/internal/insights"
	"github.com/zjrosen/skillforge/internal/log"
	"github.com/zjrosen/skillforge/internal/mode/dashboard"
	"github.com/zjrosen/skillforge/internal/tracing"
	"github.com/zjrosen/skillforge/internal/ui/shared/chatpanel"
	"github.com/zjrosen/skillforge/internal/ui/styles"
	"github.com/zjrosen/skillforge/internal/workflows"
)

var (
	version = "dev"

	cfgFile string
	apiURL  string
	debug   bool

	cfg            config.Config
	cfgViper       *viper.Viper
	tracingCleanup tracing.Shutdown
)

var rootCmd = &cobra.Command{
	Use:   "skillforge",
	Short: "Terminal client for the SkillForge AI API",
	Long: `SkillForge manages AI workflows and talks to the SkillForge agents from
the terminal. Run without arguments to open the dashboard.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown(cmd.Context())
	},
	RunE: runDashboard,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version reported by --version and in exported spans.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default ~/.config/skillforge/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "",
		"SkillForge API base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug logs to log.path")
}

// localConfigFile is a per-project config in the working directory.
const localConfigFile = ".skillforge.yaml"

// configPath returns the explicit --config path, else the first existing file
// of ./.skillforge.yaml and the user config. Empty means defaults only.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	for _, path := range []string{localConfigFile, config.DefaultConfigPath()} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, v, err := config.Load(configPath())
	if err != nil {
		return err
	}
	if apiURL != "" {
		v.Set("api.base_url", apiURL)
		if loaded, err = config.Decode(v); err != nil {
			return err
		}
	}
	cfg, cfgViper = loaded, v

	if debug || cfg.Log.Enabled {
		if err := log.Init(cfg.Log.Path, debug); err != nil {
			return fmt.Errorf("initializing log: %w", err)
		}
	}
	log.Info(log.CatConfig, "Config loaded", "file", v.ConfigFileUsed(), "api", cfg.API.BaseURL)

	shutdown, err := tracing.Setup(cmd.Context(), cfg.Tracing, version)
	if err != nil {
		return err
	}
	tracingCleanup = shutdown
	return nil
}

func teardown(ctx context.Context) error {
	if tracingCleanup != nil {
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tracingCleanup(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
		tracingCleanup = nil
	}
	return log.Close()
}

func newClient() *api.Client {
	return api.New(cfg.API.BaseURL, cfg.API.Timeout)
}

func newStore(client *api.Client) *workflows.Store {
	var opts []workflows.Option
	if cfg.API.Analytics {
		opts = append(opts, workflows.WithAnalytics(client))
	}
	return workflows.New(client, opts...)
}

// commandContext bounds a one-shot CLI operation by the configured timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, cfg.API.Timeout)
}

func runDashboard(_ *cobra.Command, _ []string) error {
	if err := styles.ApplyTheme(cfg.Theme); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	client := newClient()
	store := newStore(client)
	defer store.Close()

	zones := zone.New()
	model := dashboard.New(dashboard.Config{
		Store:    store,
		Insights: insights.NewService(client),
		Chat: chatpanel.Config{
			Client:  client,
			Timeout: cfg.API.Timeout,
		},
		UI:      cfg.UI,
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Zones:   zones,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	watchConfig(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// watchConfig forwards theme edits in the config file to the running
// program. Other settings take effect on the next start.
func watchConfig(p *tea.Program) {
	if cfgViper == nil || cfgViper.ConfigFileUsed() == "" {
		return
	}
	cfgViper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		updated, err := config.Decode(cfgViper)
		if err != nil {
			log.ErrorErr(log.CatConfig, "Ignoring invalid config change", err, "file", e.Name)
			return
		}
		log.Info(log.CatConfig, "Config changed", "file", e.Name)
		p.Send(dashboard.ThemeChangedMsg{Theme: updated.Theme})
	})
	cfgViper.WatchConfig()
}
