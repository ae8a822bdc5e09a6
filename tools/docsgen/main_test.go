// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/leadq/internal/command"
)

func TestGenerate(t *testing.T) {
	app, err := command.InitApp(context.Background(), []string{"leadq"})
	require.NoError(t, err)

	dir := t.TempDir()
	files, err := generate(dir, app, "1.2.3")
	require.NoError(t, err)
	assert.Len(t, files, 2*len(app.Commands))

	page, err := os.ReadFile(filepath.Join(dir, "commands", "query.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "# leadq query")
	assert.Contains(t, string(page), "`--filter, -f`")
	assert.Contains(t, string(page), "budget:gte:10000")
	assert.Contains(t, string(page), "leadq 1.2.3")

	tldr, err := os.ReadFile(filepath.Join(dir, "tldr", "leadq-fields.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "`leadq fields -e quotes -t`")
}

func TestDescribe(t *testing.T) {
	app, err := command.InitApp(context.Background(), []string{"leadq"})
	require.NoError(t, err)

	sub := describe(app.Command("query"))
	assert.Equal(t, "query", sub.ID)
	require.NotEmpty(t, sub.Flags)

	byID := map[string]Flag{}
	for _, f := range sub.Flags {
		byID[f.ID] = f
	}
	assert.Equal(t, "--output, -o", byID["output"].Syntax)
	assert.Equal(t, "text", byID["output"].Default)
	assert.Empty(t, byID["titles"].Default)
}
