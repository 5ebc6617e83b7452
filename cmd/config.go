package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after defaults, the config file, SKILLFORGE_*
environment variables and flags have been applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if used := cfgViper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", used)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
