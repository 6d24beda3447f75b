package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}
	if cfg.CacheDir == "" || cfg.LogFile == "" {
		t.Fatalf("CacheDir/LogFile not defaulted: %#v", cfg)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	content := `
api_base_url = "http://localhost:1337/api/"
media_base_url = "http://localhost:9000"
bearer_token = "secret"
page_size = 12
cache_dir = "` + tmp + `/cache"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:1337/api" {
		t.Fatalf("APIBaseURL = %q, want trailing slash stripped", cfg.APIBaseURL)
	}
	if cfg.BearerToken != "secret" {
		t.Fatalf("BearerToken = %q, want secret", cfg.BearerToken)
	}
	if cfg.PageSize != 12 {
		t.Fatalf("PageSize = %d, want 12", cfg.PageSize)
	}
	if cfg.CacheDir != filepath.Join(tmp, "cache") {
		t.Fatalf("CacheDir = %q, want %q", cfg.CacheDir, filepath.Join(tmp, "cache"))
	}
}

func TestLoad_BlankFieldsFallBack(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("api_base_url = \"  \"\npage_size = 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want default", cfg.PageSize)
	}
}

func TestLoad_InvalidTOMLIsAnError(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load returned nil error for invalid TOML")
	}
}
