// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir_WithLEADQ_CACHE_DIR verifies Dir() respects LEADQ_CACHE_DIR with
// highest priority.
func TestDir_WithLEADQ_CACHE_DIR(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("LEADQ_CACHE_DIR", customDir)

	result, ok := Dir()

	assert.True(t, ok)
	assert.Equal(t, customDir, result)
}

// TestDir_WithoutLEADQ_CACHE_DIR verifies Dir() falls back to
// os.UserCacheDir/leadq when the env var is empty.
func TestDir_WithoutLEADQ_CACHE_DIR(t *testing.T) {
	t.Setenv("LEADQ_CACHE_DIR", "")

	result, ok := Dir()

	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "leadq", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: true},
		{value: "1", want: true},
		{value: "true", want: true},
		{value: "0", want: false},
		{value: "false", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("LEADQ_CACHE", tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEADQ_CACHE_DIR", dir)

	t.Setenv("LEADQ_CACHE", "0")
	c, ok := New()
	assert.False(t, ok)
	assert.Nil(t, c)

	t.Setenv("LEADQ_CACHE", "")
	c, ok = New()
	require.True(t, ok)
	assert.Equal(t, dir, c.Base())
}

func TestNilCache(t *testing.T) {
	var c *Cache

	_, ok := c.Get("s3", "k")
	assert.False(t, ok)
	assert.NoError(t, c.Put("s3", "k", []byte("x")))
	n, err := c.Purge(time.Hour)
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, c.Base())
}

func TestPutGet(t *testing.T) {
	c := Open(t.TempDir())

	_, ok := c.Get("s3", "bucket/key")
	assert.False(t, ok)

	data := []byte(`[{"name":"Acme Co"}]` + "\n")
	require.NoError(t, c.Put("s3", "bucket/key", data))

	got, ok := c.Get("s3", "bucket/key")
	require.True(t, ok)
	assert.Equal(t, data, got)

	// Entries are namespaced.
	_, ok = c.Get("other", "bucket/key")
	assert.False(t, ok)

	info, err := os.Stat(c.Path("s3", "bucket/key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, c.Put("s3", "bucket/key", []byte("[]")))
	got, ok = c.Get("s3", "bucket/key")
	require.True(t, ok)
	assert.Equal(t, []byte("[]"), got)

	entries, err := os.ReadDir(filepath.Join(c.Base(), "s3"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestPurge(t *testing.T) {
	c := Open(t.TempDir())

	require.NoError(t, c.Put("s3", "old", []byte("old")))
	require.NoError(t, c.Put("nested/deeper", "older", []byte("older")))
	require.NoError(t, c.Put("s3", "new", []byte("new")))

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(c.Path("s3", "old"), past, past))
	require.NoError(t, os.Chtimes(c.Path("nested/deeper", "older"), past, past))

	n, err := c.Purge(0)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = c.Purge(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok := c.Get("s3", "old")
	assert.False(t, ok)
	_, ok = c.Get("nested/deeper", "older")
	assert.False(t, ok)
	_, ok = c.Get("s3", "new")
	assert.True(t, ok)
}

func TestPurgeMissingBase(t *testing.T) {
	c := Open(filepath.Join(t.TempDir(), "absent"))
	n, err := c.Purge(time.Hour)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("bucket/key@etag")
	assert.Equal(t, a, encodeKey("bucket/key@etag"))
	assert.NotEqual(t, a, encodeKey("bucket/key@other"))
	assert.Len(t, a, 64)
	assert.Regexp(t, `^[0-9a-f]+$`, a)
}
