package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Port             string        `koanf:"port" yaml:"port"`
	APIBaseURL       string        `koanf:"api_base_url" yaml:"api_base_url"`
	TranslationsPath string        `koanf:"translations_path" yaml:"translations_path"`
	DefaultLanguage  string        `koanf:"default_language" yaml:"default_language"`
	Languages        []string      `koanf:"languages" yaml:"languages"`
	DatabasePath     string        `koanf:"database_path" yaml:"database_path"`
	TemplatePath     string        `koanf:"template_path" yaml:"template_path"`
	StaticDir        string        `koanf:"static_dir" yaml:"static_dir"`
	ImagesDir        string        `koanf:"images_dir" yaml:"images_dir"`
	HTTPTimeout      time.Duration `koanf:"http_timeout" yaml:"http_timeout"`
	RefreshInterval  time.Duration `koanf:"refresh_interval" yaml:"refresh_interval"`
	HeaderOffset     int           `koanf:"header_offset" yaml:"header_offset"`
}

// Default returns the configuration used when neither a file nor the
// environment says otherwise.
func Default() *Config {
	return &Config{
		Port:             "8080",
		APIBaseURL:       "https://cv-backend-ttra.onrender.com",
		TranslationsPath: "translations",
		DefaultLanguage:  "en",
		Languages:        []string{"en", "es", "fr"},
		DatabasePath:     "cv.db",
		StaticDir:        "static",
		ImagesDir:        "images",
		HTTPTimeout:      30 * time.Second,
		RefreshInterval:  10 * time.Minute,
		HeaderOffset:     80,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CV_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// CV_API_BASE_URL -> api_base_url. Lists are comma separated.
	if err := k.Load(env.ProviderWithValue("CV_", ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, "CV_"))
		if key == "languages" {
			return key, strings.Split(value, ",")
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Hosting platforms inject PORT.
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CV_PORT") == "" {
		if err := k.Set("port", port); err != nil {
			return nil, fmt.Errorf("setting port: %w", err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Languages = trimList(cfg.Languages)

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.DefaultLanguage == "" {
		return fmt.Errorf("default_language is required")
	}
	if !c.Supports(c.DefaultLanguage) {
		return fmt.Errorf("default_language %q is not listed in languages", c.DefaultLanguage)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must be non-negative")
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval must be non-negative")
	}
	return nil
}

// Supports reports whether lang is one of the configured languages.
func (c *Config) Supports(lang string) bool {
	for _, l := range c.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
