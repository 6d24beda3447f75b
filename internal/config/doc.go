// Package config handles loading and parsing the Ladle configuration file.
//
// # Overview
//
// This package reads Ladle's TOML configuration to discover the recipe
// API endpoint, the media host for recipe images, the bearer token, and
// the locations of local files (snapshot cache, log file).
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/ladle/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
// Example config.toml:
//
//	api_base_url = "https://front-school-strapi.ktsdev.ru/api"
//	media_base_url = "https://front-school.minio.ktsdev.ru"
//	bearer_token = "..."
//	page_size = 9
//	cache_dir = "~/.local/share/ladle"
//	log_file = "~/.local/share/ladle/ladle.log"
//
// All fields are optional. Tilde expansion is performed automatically
// for cache_dir and log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors
// (except os.ErrNotExist, which triggers defaults), and TOML parsing
// errors. A missing config file is NOT an error; defaults let Ladle
// work out of the box.
//
// The config package is read-only and stateless. It loads configuration
// once at startup and returns an immutable Config struct.
package config
