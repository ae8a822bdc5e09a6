// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package fields

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		descs   []Descriptor
		wantErr error
	}{
		{
			name: "valid",
			descs: []Descriptor{
				{Key: "name", Type: String},
				{Key: "status", Type: Enum, Options: []string{"New"}},
			},
		},
		{
			name:    "empty key",
			descs:   []Descriptor{{Key: " ", Type: String}},
			wantErr: ErrEmptyKey,
		},
		{
			name:    "undeclared type",
			descs:   []Descriptor{{Key: "name"}},
			wantErr: ErrUnknownType,
		},
		{
			name:    "out of range type",
			descs:   []Descriptor{{Key: "name", Type: Type(42)}},
			wantErr: ErrUnknownType,
		},
		{
			name:    "enum without options",
			descs:   []Descriptor{{Key: "status", Type: Enum}},
			wantErr: ErrMissingOptions,
		},
		{
			name:    "options on number",
			descs:   []Descriptor{{Key: "budget", Type: Number, Options: []string{"1"}}},
			wantErr: ErrUnexpectedOptions,
		},
		{
			name: "duplicate key",
			descs: []Descriptor{
				{Key: "name", Type: String},
				{Key: "name", Type: Reference},
			},
			wantErr: ErrDuplicateField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := New("test", tt.descs...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var cfgErr *ConfigurationError
				assert.True(t, errors.As(err, &cfgErr))
				assert.Nil(t, reg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.descs), reg.Len())
		})
	}
}

func TestRegistryAccessors(t *testing.T) {
	reg := Leads()

	assert.Equal(t, "leads", reg.Name())
	assert.Equal(t, []string{
		"name", "company", "email", "phone", "budget", "status", "source", "createdAt", "assignedTo",
	}, reg.Keys())

	d, ok := reg.Lookup("budget")
	require.True(t, ok)
	assert.Equal(t, Number, d.Type)
	assert.Equal(t, "Budget", d.Title())

	_, ok = reg.Lookup("nope")
	assert.False(t, ok)

	var searchable []string
	for _, d := range reg.Searchable() {
		searchable = append(searchable, d.Key)
	}
	assert.Equal(t, []string{"name", "company", "email", "assignedTo"}, searchable)

	// All hands out a copy.
	all := reg.All()
	all[0].Key = "mutated"
	d, ok = reg.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, "name", d.Key)
}

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"customers", "leads", "quotes"}, BuiltinNames())

	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			reg, err := Builtin(name)
			require.NoError(t, err)
			assert.Equal(t, name, reg.Name())
			assert.Positive(t, reg.Len())
		})
	}

	_, err := Builtin("invoices")
	assert.Error(t, err)
}

func TestRecordPath(t *testing.T) {
	reg := Quotes()
	owner, ok := reg.Lookup("owner")
	require.True(t, ok)
	assert.Equal(t, "owner.name", owner.RecordPath())

	client, ok := reg.Lookup("client")
	require.True(t, ok)
	assert.Equal(t, "client", client.RecordPath())
}

func TestLoadFile(t *testing.T) {
	reg, err := LoadFile(filepath.Join("testdata", "registry.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "deals", reg.Name())
	assert.Equal(t, []string{"title", "value", "stage", "closeDate", "owner"}, reg.Keys())

	stage, ok := reg.Lookup("stage")
	require.True(t, ok)
	assert.Equal(t, Enum, stage.Type)
	assert.Equal(t, []string{"Open", "Won", "Lost"}, stage.Options)

	owner, ok := reg.Lookup("owner")
	require.True(t, ok)
	assert.Equal(t, Reference, owner.Type)
	assert.Equal(t, "owner.name", owner.RecordPath())

	_, err = LoadFile(filepath.Join("testdata", "bad_type.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("name: empty\n"))
	assert.Error(t, err)
}

func TestTypeText(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			assert.True(t, typ.Valid())

			parsed, err := ParseType(typ.String())
			require.NoError(t, err)
			assert.Equal(t, typ, parsed)
		})
	}

	var zero Type
	assert.False(t, zero.Valid())
	assert.Equal(t, "undeclared", zero.String())

	_, err := ParseType("money")
	assert.ErrorIs(t, err, ErrUnknownType)

	parsed, err := ParseType(" Number ")
	require.NoError(t, err)
	assert.Equal(t, Number, parsed)
}

func TestDescriptorEncoding(t *testing.T) {
	d := Descriptor{Key: "status", Type: Enum, Options: []string{"New"}}

	j, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"status","type":"enum","options":["New"]}`, string(j))

	y, err := yaml.Marshal(d)
	require.NoError(t, err)

	var back Descriptor
	require.NoError(t, yaml.Unmarshal(y, &back))
	assert.Equal(t, d, back)
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Field: "budget", Type: Number, Operator: "contains", Err: ErrIllegalOperator}
	assert.Equal(t,
		`configuration error (field "budget", type number, operator "contains"): operator not legal for field type`,
		err.Error())

	bare := &ConfigurationError{Err: ErrUnknownType}
	assert.Equal(t, "configuration error: undeclared field type", bare.Error())
}
