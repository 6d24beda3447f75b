package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything Ladle needs to reach the recipe service
// and to find its local files.
type Config struct {
	APIBaseURL   string
	MediaBaseURL string
	BearerToken  string
	PageSize     int
	CacheDir     string
	LogFile      string
}

const (
	defaultConfigPath   = "~/.config/ladle/config.toml"
	defaultAPIBaseURL   = "https://front-school-strapi.ktsdev.ru/api"
	defaultMediaBaseURL = "https://front-school.minio.ktsdev.ru"
	defaultPageSize     = 9
	defaultCacheDir     = "~/.local/share/ladle"
	defaultLogFile      = "~/.local/share/ladle/ladle.log"
)

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL   string `toml:"api_base_url"`
		MediaBaseURL string `toml:"media_base_url"`
		BearerToken  string `toml:"bearer_token"`
		PageSize     int    `toml:"page_size"`
		CacheDir     string `toml:"cache_dir"`
		LogFile      string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.MediaBaseURL); v != "" {
		cfg.MediaBaseURL = strings.TrimRight(v, "/")
	}
	cfg.BearerToken = strings.TrimSpace(raw.BearerToken)
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if v := strings.TrimSpace(raw.CacheDir); v != "" {
		cfg.CacheDir = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = v
	}

	cfg.CacheDir = mustExpand(cfg.CacheDir)
	cfg.LogFile = mustExpand(cfg.LogFile)

	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBaseURL:   defaultAPIBaseURL,
		MediaBaseURL: defaultMediaBaseURL,
		PageSize:     defaultPageSize,
		CacheDir:     mustExpand(defaultCacheDir),
		LogFile:      mustExpand(defaultLogFile),
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
