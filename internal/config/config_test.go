package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultLanguage != "en" {
		t.Errorf("expected default language %q, got %q", "en", cfg.DefaultLanguage)
	}
	if cfg.HeaderOffset != 80 {
		t.Errorf("expected header offset 80, got %d", cfg.HeaderOffset)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.yml")

	original := Default()
	original.APIBaseURL = "http://localhost:9000"
	original.Languages = []string{"en", "de"}
	original.HTTPTimeout = 5 * time.Second

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.APIBaseURL != original.APIBaseURL {
		t.Errorf("api_base_url: got %q, want %q", loaded.APIBaseURL, original.APIBaseURL)
	}
	if loaded.HTTPTimeout != original.HTTPTimeout {
		t.Errorf("http_timeout: got %v, want %v", loaded.HTTPTimeout, original.HTTPTimeout)
	}
	if len(loaded.Languages) != 2 || loaded.Languages[1] != "de" {
		t.Errorf("languages: got %v", loaded.Languages)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("expected default language, got %q", cfg.DefaultLanguage)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CV_API_BASE_URL", "http://api.test")
	t.Setenv("CV_LANGUAGES", "en,es")
	t.Setenv("CV_HTTP_TIMEOUT", "2s")
	t.Setenv("CV_PORT", "9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIBaseURL != "http://api.test" {
		t.Errorf("api_base_url: got %q", cfg.APIBaseURL)
	}
	if len(cfg.Languages) != 2 || cfg.Languages[1] != "es" {
		t.Errorf("languages: got %v", cfg.Languages)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Errorf("http_timeout: got %v", cfg.HTTPTimeout)
	}
	if cfg.Port != "9999" {
		t.Errorf("port: got %q", cfg.Port)
	}
}

func TestLanguagesAreTrimmed(t *testing.T) {
	t.Setenv("CV_LANGUAGES", "en, fr ,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Languages) != 2 || cfg.Languages[0] != "en" || cfg.Languages[1] != "fr" {
		t.Errorf("languages: got %q", cfg.Languages)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if !cfg.Supports("fr") {
		t.Error("fr should be supported")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DefaultLanguage = "it"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unlisted default language")
	}

	cfg = Default()
	cfg.APIBaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty api_base_url")
	}
}
