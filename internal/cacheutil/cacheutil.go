// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/staranto/leadq/internal/log"
)

// Cache stores fetched record documents on disk, one file per key. Keys are
// hashed into file names beneath a namespace directory.
type Cache struct {
	base string
}

// Dir resolves the base cache directory.
// Precedence:
//  1. LEADQ_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/leadq
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("LEADQ_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "leadq"), true
	}
	return "", false
}

// Enabled returns true unless LEADQ_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("LEADQ_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// New returns the cache rooted at Dir. It returns (nil, false) when caching
// is disabled or no directory can be resolved. A nil *Cache is usable and
// never hits.
func New() (*Cache, bool) {
	if !Enabled() {
		log.Debug("cache disabled")
		return nil, false
	}
	base, ok := Dir()
	if !ok {
		return nil, false
	}
	return Open(base), true
}

// Open returns a cache rooted at base. The directory is created lazily.
func Open(base string) *Cache {
	return &Cache{base: base}
}

// Base returns the cache root.
func (c *Cache) Base() string {
	if c == nil {
		return ""
	}
	return c.base
}

// Path returns where the entry for key in namespace lives.
func (c *Cache) Path(namespace, key string) string {
	return filepath.Join(c.base, namespace, encodeKey(key))
}

// Get returns the cached data for key.
func (c *Cache) Get(namespace, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := os.ReadFile(c.Path(namespace, key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).Warnf("failed to read cache entry %s", key)
		}
		return nil, false
	}
	log.Debugf("cache hit: key=%s", key)
	return b, true
}

// Put stores data for key, replacing any earlier entry. The file is written
// beside its final name and renamed into place so readers never see a
// partial entry.
func (c *Cache) Put(namespace, key string, data []byte) error {
	if c == nil {
		return nil
	}
	dir := filepath.Join(c.base, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".put-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path(namespace, key)); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("cache write: key=%s", key)
	return nil
}

// Purge removes entries older than maxAge and returns how many went. A
// non-positive maxAge disables purging.
func (c *Cache) Purge(maxAge time.Duration) (int, error) {
	if c == nil || maxAge <= 0 {
		log.Debug("cache cleaning disabled")
		return 0, nil
	}

	removed := 0
	err := filepath.WalkDir(c.base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr
		}
		if time.Since(info.ModTime()) <= maxAge {
			return nil
		}

		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		removed++
		log.Debugf("removed cache file %s", path)
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to purge cache: %w", err)
	}
	return removed, nil
}

// encodeKey returns the hex sha256 of input.
func encodeKey(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
