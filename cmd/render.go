package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/cv-site/internal/prefs"
	"github.com/Zachkp/cv-site/internal/site"
	"github.com/Zachkp/cv-site/internal/ui"
)

var (
	renderLang   string
	renderTheme  string
	renderFilter string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch the CV once and write the rendered page",
	Long: `Render fetches every collection from the CV backend, localizes the page
and writes the resulting HTML to a file or stdout. Useful for static
hosting or for checking a translation catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if renderLang != "" && !cfg.Supports(renderLang) {
			return fmt.Errorf("unsupported language %q", renderLang)
		}
		if renderTheme != string(ui.ThemeLight) && renderTheme != string(ui.ThemeDark) {
			return fmt.Errorf("unknown theme %q", renderTheme)
		}

		s, err := buildSite(cfg)
		if err != nil {
			return err
		}
		s.Bootstrap(cmd.Context())

		p := prefs.NewMemory().Scope("render")
		p.Set(prefs.KeyTheme, renderTheme)
		if renderLang != "" {
			if _, err := s.ChangeLanguage(cmd.Context(), p, renderLang); err != nil {
				return err
			}
		}

		var w io.Writer = os.Stdout
		if renderOut != "" {
			f, err := os.Create(renderOut)
			if err != nil {
				return fmt.Errorf("creating output: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := s.RenderPage(cmd.Context(), p, w, site.PageOptions{Filter: renderFilter}); err != nil {
			return fmt.Errorf("rendering page: %w", err)
		}
		if renderOut != "" {
			log.Printf("Page written to %s", renderOut)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderLang, "lang", "", "page language (default from config)")
	renderCmd.Flags().StringVar(&renderTheme, "theme", string(ui.ThemeLight), "light or dark")
	renderCmd.Flags().StringVar(&renderFilter, "filter", "all", "timeline filter: all, work or education")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}
