// Package cmd implements the cvsite command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/cv-site/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cvsite",
	Short: "Interactive CV site",
	Long: `cvsite serves a multilingual CV page built from the CV backend API.
Visitors can switch language and theme, filter the experience timeline
and open entry details without a client-side framework.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "cvsite.yml", "config file path")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// pageTemplate reads the configured page template or returns nil so the
// built-in one is used.
func pageTemplate(cfg *config.Config) ([]byte, error) {
	if cfg.TemplatePath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("reading page template: %w", err)
	}
	return data, nil
}
