// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package coerce

import (
	"embed"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/staranto/leadq/internal/fields"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testCoerceCase is a single case shared by the Text and Record tables.
type testCoerceCase struct {
	Name  string      `yaml:"name"`
	Type  fields.Type `yaml:"type"`
	Raw   interface{} `yaml:"raw"`
	Valid bool        `yaml:"valid"`
	Str   string      `yaml:"str"`
	Num   float64     `yaml:"num"`
	Date  string      `yaml:"date"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func checkComparable(t *testing.T, tt testCoerceCase, got Comparable) {
	t.Helper()

	assert.Equal(t, tt.Type, got.Type)
	require.Equal(t, tt.Valid, got.Valid)
	if !tt.Valid {
		if tt.Type == fields.Number {
			assert.True(t, math.IsNaN(got.Num))
		}
		return
	}

	switch tt.Type {
	case fields.Number:
		assert.Equal(t, tt.Num, got.Num)
	case fields.Date:
		want, err := time.Parse(time.RFC3339, tt.Date)
		require.NoError(t, err)
		assert.True(t, want.Equal(got.Time), "want %s, got %s", want, got.Time)
	default:
		assert.Equal(t, tt.Str, got.Str)
	}
}

func TestText(t *testing.T) {
	var tests []testCoerceCase
	require.NoError(t, loadTestData("coerce_text.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			raw, ok := tt.Raw.(string)
			require.True(t, ok, "raw must be a string for Text cases")
			checkComparable(t, tt, Text(tt.Type, raw))
		})
	}
}

func TestRecord(t *testing.T) {
	var tests []testCoerceCase
	require.NoError(t, loadTestData("coerce_record.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			checkComparable(t, tt, Record(tt.Type, tt.Raw))
		})
	}
}

func TestUndeclaredTypeNeverValid(t *testing.T) {
	assert.False(t, Text(fields.Type(0), "x").Valid)
	assert.False(t, Record(fields.Type(77), "x").Valid)
}

func TestRecordTimeValue(t *testing.T) {
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	got := Record(fields.Date, ts)
	require.True(t, got.Valid)
	assert.True(t, ts.Equal(got.Time))
}

func TestOptions(t *testing.T) {
	got := Options([]string{"New", " Qualified ", "new"})
	require.True(t, got.Valid)
	assert.Equal(t, fields.Enum, got.Type)
	assert.Len(t, got.Set, 2)
	assert.Contains(t, got.Set, "new")
	assert.Contains(t, got.Set, "qualified")

	empty := Options(nil)
	assert.True(t, empty.Valid)
	assert.Empty(t, empty.Set)
}

func TestName(t *testing.T) {
	got := Name("Dana")
	require.True(t, got.Valid)
	assert.Equal(t, "dana", got.Str)

	assert.False(t, Name("").Valid)
	assert.False(t, Name("   ").Valid)
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "string", value: "Acme Co", want: "Acme Co"},
		{name: "integer float", value: 15000.0, want: "15000"},
		{name: "fraction", value: 12.25, want: "12.25"},
		{name: "int", value: 7, want: "7"},
		{name: "json number", value: json.Number("99"), want: "99"},
		{name: "bool", value: true, want: "true"},
		{name: "named object", value: map[string]any{"id": "e1", "name": "Dana"}, want: "Dana"},
		{name: "anonymous object", value: map[string]any{"id": "e1"}, want: `{"id":"e1"}`},
		{name: "list", value: []any{"a", "b"}, want: `["a","b"]`},
		{name: "time", value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), want: "2024-01-02T03:04:05Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.value))
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   float64
		wantOk bool
	}{
		{name: "float64", value: 1.5, want: 1.5, wantOk: true},
		{name: "float32", value: float32(2), want: 2, wantOk: true},
		{name: "int", value: 3, want: 3, wantOk: true},
		{name: "int64", value: int64(4), want: 4, wantOk: true},
		{name: "uint8", value: uint8(5), want: 5, wantOk: true},
		{name: "json number", value: json.Number("6.5"), want: 6.5, wantOk: true},
		{name: "bad json number", value: json.Number("x"), wantOk: false},
		{name: "string", value: "7", wantOk: false},
		{name: "nil", value: nil, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.value)
			assert.Equal(t, tt.wantOk, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
