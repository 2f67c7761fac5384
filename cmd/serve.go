package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/cv-site/internal/api"
	"github.com/Zachkp/cv-site/internal/config"
	"github.com/Zachkp/cv-site/internal/i18n"
	"github.com/Zachkp/cv-site/internal/prefs"
	"github.com/Zachkp/cv-site/internal/server"
	"github.com/Zachkp/cv-site/internal/site"
)

// Preferences untouched for this long are removed.
const prefsRetention = 365 * 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the CV over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store := prefs.Open(cfg.DatabasePath)
		defer store.Close()
		go prunePreferences(store)

		s, err := buildSite(cfg)
		if err != nil {
			return err
		}

		// The page is served with its loading overlay until the first
		// timeline fetch completes.
		go func() {
			s.Bootstrap(ctx)
			s.Run(ctx, cfg.RefreshInterval)
		}()

		srv := server.New(server.Config{StaticDir: cfg.StaticDir, ImagesDir: cfg.ImagesDir}, s, store)
		return srv.Run(ctx, ":"+cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func buildSite(cfg *config.Config) (*site.Site, error) {
	page, err := pageTemplate(cfg)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	catalogs := i18n.NewManager(i18n.NewLoader(cfg.TranslationsPath, client), cfg.DefaultLanguage)
	return site.New(site.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		Languages:       cfg.Languages,
		HeaderOffset:    cfg.HeaderOffset,
		Page:            page,
	}, client, catalogs), nil
}

func prunePreferences(store *prefs.Store) {
	if _, err := store.Prune(prefsRetention); err != nil {
		log.Printf("Error pruning preferences: %v", err)
	}
}
