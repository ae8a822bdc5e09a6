// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/staranto/leadq/internal/directory"
	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/operators"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testPredicateCase represents a single test case for TestTest.
type testPredicateCase struct {
	Name    string            `yaml:"name"`
	Entity  string            `yaml:"entity"`
	Field   string            `yaml:"field"`
	Op      string            `yaml:"op"`
	Value   string            `yaml:"value"`
	Value2  *string           `yaml:"value2"`
	Options *[]string         `yaml:"options"`
	Ref     *directory.Entity `yaml:"ref"`
	Unset   bool              `yaml:"unset"`
	Record  Record            `yaml:"record"`
	Want    bool              `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// clause builds the clause a test case describes without going through
// Builder, so malformed clauses can be expressed too.
func (tc testPredicateCase) clause(t *testing.T) Clause {
	t.Helper()

	entity := tc.Entity
	if entity == "" {
		entity = "leads"
	}
	reg, err := fields.Builtin(entity)
	require.NoError(t, err)

	d, ok := reg.Lookup(tc.Field)
	require.True(t, ok, "unknown field %q", tc.Field)

	c := Clause{Field: d, Operator: operators.Operator(tc.Op)}
	switch {
	case tc.Unset:
	case tc.Options != nil:
		c.Value = Options(*tc.Options...)
	case tc.Ref != nil:
		c.Value = Ref(*tc.Ref)
	default:
		c.Value = Text(tc.Value)
	}
	if tc.Value2 != nil {
		c.Value2 = Text(*tc.Value2)
	}
	return c
}

func TestTest(t *testing.T) {
	var tests []testPredicateCase
	require.NoError(t, loadTestData("predicate_cases.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, Test(tt.clause(t), tt.Record))
		})
	}
}

func TestInert(t *testing.T) {
	budget, _ := fields.Leads().Lookup("budget")

	tests := []struct {
		name   string
		clause Clause
		want   bool
	}{
		{name: "zero clause", clause: Clause{}, want: true},
		{name: "no field", clause: Clause{Operator: operators.Gt, Value: Text("1")}, want: true},
		{name: "no operator", clause: Clause{Field: budget, Value: Text("1")}, want: true},
		{name: "no value", clause: Clause{Field: budget, Operator: operators.Gt}, want: true},
		{name: "empty text is set", clause: Clause{Field: budget, Operator: operators.Gt, Value: Text("")}, want: false},
		{name: "between missing bound", clause: Clause{Field: budget, Operator: operators.Between, Value: Text("1")}, want: true},
		{
			name:   "between complete",
			clause: Clause{Field: budget, Operator: operators.Between, Value: Text("1"), Value2: Text("2")},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.clause.Inert())
		})
	}
}

func TestValidate(t *testing.T) {
	reg := fields.Leads()
	budget, _ := reg.Lookup("budget")
	status, _ := reg.Lookup("status")
	assigned, _ := reg.Lookup("assignedTo")
	foreign := &fields.Descriptor{Key: "amount", Type: fields.Number}
	retyped := &fields.Descriptor{Key: "budget", Type: fields.String}
	undeclared := &fields.Descriptor{Key: "budget"}

	tests := []struct {
		name    string
		clause  Clause
		wantErr error
	}{
		{name: "empty clause", clause: Clause{}},
		{name: "field only", clause: Clause{Field: budget}},
		{name: "legal", clause: Clause{Field: budget, Operator: operators.Gte, Value: Text("10")}},
		{name: "legal without value", clause: Clause{Field: status, Operator: operators.In}},
		{name: "reference value", clause: Clause{Field: assigned, Operator: operators.Eq, Value: Ref(directory.Entity{ID: "e1", Name: "Dana"})}},
		{
			name:    "illegal operator",
			clause:  Clause{Field: budget, Operator: operators.Contains, Value: Text("1")},
			wantErr: fields.ErrIllegalOperator,
		},
		{
			name:    "illegal operator without value still fails",
			clause:  Clause{Field: status, Operator: operators.Gt},
			wantErr: fields.ErrIllegalOperator,
		},
		{
			name:    "unknown operator",
			clause:  Clause{Field: budget, Operator: operators.Operator("like")},
			wantErr: fields.ErrUnknownOperator,
		},
		{
			name:    "field not in registry",
			clause:  Clause{Field: foreign, Operator: operators.Eq},
			wantErr: fields.ErrUnknownField,
		},
		{
			name:    "field type disagrees with registry",
			clause:  Clause{Field: retyped, Operator: operators.Eq},
			wantErr: fields.ErrUnknownField,
		},
		{
			name:    "undeclared type",
			clause:  Clause{Field: undeclared, Operator: operators.Eq},
			wantErr: fields.ErrUnknownType,
		},
		{
			name:    "set value on single operator",
			clause:  Clause{Field: status, Operator: operators.Eq, Value: Options("New")},
			wantErr: fields.ErrValueShape,
		},
		{
			name:    "text value on in",
			clause:  Clause{Field: status, Operator: operators.In, Value: Text("New")},
			wantErr: fields.ErrValueShape,
		},
		{
			name:    "text value on reference",
			clause:  Clause{Field: assigned, Operator: operators.Eq, Value: Text("Dana")},
			wantErr: fields.ErrValueShape,
		},
		{
			name:    "second value without between",
			clause:  Clause{Field: budget, Operator: operators.Gt, Value: Text("1"), Value2: Text("2")},
			wantErr: fields.ErrValueShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.clause, reg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			var cfgErr *fields.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.NotEmpty(t, cfgErr.Field)
		})
	}
}

func TestValidateWithoutRegistry(t *testing.T) {
	foreign := &fields.Descriptor{Key: "amount", Type: fields.Number}
	assert.NoError(t, Validate(Clause{Field: foreign, Operator: operators.Gt, Value: Text("1")}, nil))
}

func TestValueRaw(t *testing.T) {
	assert.Equal(t, "", Value{}.Raw())
	assert.False(t, Value{}.IsSet())
	assert.Equal(t, "abc", Text("abc").Raw())
	assert.Equal(t, "New|Won", Options("New", "Won").Raw())
	assert.Equal(t, "Dana", Ref(directory.Entity{ID: "e1", Name: "Dana"}).Raw())
	assert.Equal(t, "set", SetValue.String())
}

func TestClauseString(t *testing.T) {
	budget, _ := fields.Leads().Lookup("budget")
	c := Clause{Field: budget, Operator: operators.Between, Value: Text("1"), Value2: Text("5")}
	assert.Equal(t, "budget between 1..5", c.String())
	assert.Equal(t, "<unset>", Clause{}.String())
}
