// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package directory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	dir := NewStatic(
		Entity{ID: "e1", Name: "Dana"},
		Entity{ID: "e2", Name: "Fox"},
		Entity{ID: "e1", Name: "Dana Scully"},
	)

	assert.Equal(t, 2, dir.Len())

	e, ok := dir.Lookup("e1")
	require.True(t, ok)
	assert.Equal(t, "Dana Scully", e.Name)

	_, ok = dir.Lookup("e9")
	assert.False(t, ok)

	e, ok = dir.FindByName("  fox ")
	require.True(t, ok)
	assert.Equal(t, "e2", e.ID)

	_, ok = dir.FindByName("Walter")
	assert.False(t, ok)

	ents := dir.Entities()
	ents[0].Name = "mutated"
	e, _ = dir.Lookup("e1")
	assert.Equal(t, "Dana Scully", e.Name)
}

func TestNilStatic(t *testing.T) {
	var dir *Static
	_, ok := dir.Lookup("e1")
	assert.False(t, ok)
	_, ok = dir.FindByName("Dana")
	assert.False(t, ok)
	assert.Zero(t, dir.Len())
	assert.Nil(t, dir.Entities())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		parent  string
		want    []Entity
		wantErr bool
	}{
		{
			name: "top level list",
			doc:  `[{"id":"e1","name":"Dana"},{"id":"e2","name":"Fox"}]`,
			want: []Entity{{ID: "e1", Name: "Dana"}, {ID: "e2", Name: "Fox"}},
		},
		{
			name:   "nested list",
			doc:    `{"items":[{"id":"e1","fullName":"Dana"}]}`,
			parent: "items",
			want:   []Entity{{ID: "e1", Name: "Dana"}},
		},
		{
			name:    "not a list",
			doc:     `{"id":"e1"}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			doc:     `[{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := Parse([]byte(tt.doc), tt.parent)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dir.Entities())
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir, err := LoadFile(filepath.Join("testdata", "employees.json"), "data.employees")
	require.NoError(t, err)

	assert.Equal(t, []Entity{
		{ID: "e1", Name: "Dana Scully"},
		{ID: "e2", Name: "Fox Mulder"},
		{ID: "e3", Name: "Walter Skinner"},
	}, dir.Entities())

	_, err = LoadFile(filepath.Join("testdata", "missing.json"), "")
	assert.Error(t, err)
}
