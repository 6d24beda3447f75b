// Package cache persists collection snapshots as JSON files, one file
// per reserved key, so the stores can survive restarts.
//
// The contract is deliberately forgiving: a missing file reports
// "absent", a corrupt file reports an error, and callers are expected
// to treat both as an empty snapshot. Nothing in this package panics
// past its boundary.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores one JSON document per key under a directory.
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir. The directory is created lazily on
// the first Save.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Load reads the snapshot stored under key into dest. It returns false
// when no snapshot exists. A corrupt snapshot returns an error; callers
// treat it as absent.
func (c *Cache) Load(key string, dest any) (bool, error) {
	path, err := c.path(key)
	if err != nil {
		return false, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read snapshot %q: %w", key, err)
	}

	if err := json.Unmarshal(bytes, dest); err != nil {
		return false, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return true, nil
}

// Save writes v as the snapshot for key. The write goes through a temp
// file and a rename so a crash mid-write never leaves a truncated
// snapshot behind.
func (c *Cache) Save(key string, v any) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	bytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write snapshot %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit snapshot %q: %w", key, err)
	}
	return nil
}

func (c *Cache) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("snapshot key is empty")
	}
	if c.dir == "" {
		return "", fmt.Errorf("cache dir is empty")
	}
	return filepath.Join(c.dir, key+".json"), nil
}
