// Package app provides the orchestration layer for the Ladle application.
//
// # Overview
//
// This package wires together configuration, the Strapi API client, the
// durable snapshot cache, the optimistic stores, and the UI to create the
// complete Ladle TUI experience. It serves as the composition root where
// all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/ladle/config.toml
//  2. Load user preferences (theme) from ~/.config/ladle/prefs.toml
//  3. Open the structured log file
//  4. Initialize the HTTP client for the Strapi recipe API
//  5. Create the snapshot cache and the five stores (cart, favourites,
//     listing, detail, random), restoring cart and favourites snapshots
//  6. Hydrate the listing from a deep-link query when one was given
//  7. Launch the one-shot background warmup (favourites + categories)
//  8. Start the TUI and block until the user exits or the context cancels
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration or preferences files present but unreadable
//   - Log file cannot be opened
//   - API base URL invalid
//   - Malformed deep-link query
//
// Recoverable errors (logged, the app keeps running):
//   - Warmup fetch failures; cached or empty state stands
//   - Any remote call made by the stores after startup
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: path to config.toml (default: ~/.config/ladle/config.toml)
//   - PrefsPath: path to prefs.toml (default: ~/.config/ladle/prefs.toml)
//   - Query: URL query string to restore a listing state, e.g. from a
//     shared "link:" line ("search=soup&categories=2&page=3")
package app
