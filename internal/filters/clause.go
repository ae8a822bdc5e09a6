// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/operators"
)

// Record is one item of the collection being filtered. Filtering never
// mutates it.
type Record = map[string]any

// Clause is one field, operator and value condition. Value2 is only used by
// between.
type Clause struct {
	Field    *fields.Descriptor `json:"field,omitempty" yaml:"field,omitempty"`
	Operator operators.Operator `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    Value              `json:"value" yaml:"value"`
	Value2   Value              `json:"value2" yaml:"value2"`
}

// Set is the full filter: clauses ANDed together plus an optional free-text
// query.
type Set struct {
	Clauses []Clause `json:"clauses,omitempty" yaml:"clauses,omitempty"`
	Query   string   `json:"query,omitempty" yaml:"query,omitempty"`
}

// Empty reports whether the set has no clauses and no query.
func (s Set) Empty() bool {
	return len(s.Clauses) == 0 && strings.TrimSpace(s.Query) == ""
}

// Inert reports whether the clause is still missing a part and so matches
// every record.
func (c Clause) Inert() bool {
	if c.Field == nil || c.Operator == "" || !c.Value.IsSet() {
		return true
	}
	return c.Operator == operators.Between && !c.Value2.IsSet()
}

func (c Clause) String() string {
	if c.Field == nil {
		return "<unset>"
	}
	s := c.Field.Key + " " + c.Operator.Symbol() + " " + c.Value.Raw()
	if c.Operator == operators.Between {
		s += ".." + c.Value2.Raw()
	}
	return s
}

// Validate checks that c can be evaluated: the field belongs to reg, the
// operator is legal for its type and the values have the shape the operator
// needs. Missing parts are allowed since they only make the clause inert.
// Problems are reported as a *fields.ConfigurationError. A nil reg skips the
// membership check.
func Validate(c Clause, reg *fields.Registry) error {
	if c.Field == nil {
		return nil
	}
	d := c.Field

	if !d.Type.Valid() {
		return &fields.ConfigurationError{Field: d.Key, Type: d.Type, Err: fields.ErrUnknownType}
	}

	if reg != nil {
		known, ok := reg.Lookup(d.Key)
		if !ok {
			return &fields.ConfigurationError{Field: d.Key, Err: fmt.Errorf("%w in %s", fields.ErrUnknownField, reg.Name())}
		}
		if known.Type != d.Type {
			return &fields.ConfigurationError{
				Field: d.Key, Type: d.Type,
				Err: fmt.Errorf("%w: registry declares %s", fields.ErrUnknownField, known.Type),
			}
		}
	}

	if c.Operator == "" {
		return nil
	}
	if !c.Operator.Known() {
		return &fields.ConfigurationError{Field: d.Key, Operator: string(c.Operator), Err: fields.ErrUnknownOperator}
	}
	if err := operators.Legal(d.Type, c.Operator); err != nil {
		var cfgErr *fields.ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Field = d.Key
		}
		return err
	}

	if err := checkShape(c); err != nil {
		return &fields.ConfigurationError{Field: d.Key, Type: d.Type, Operator: string(c.Operator), Err: err}
	}
	return nil
}

// checkShape verifies that set values are of the kind the operator and field
// type compare against.
func checkShape(c Clause) error {
	want := TextValue
	switch {
	case c.Operator.Arity() == operators.Multi:
		want = SetValue
	case c.Field.Type == fields.Reference:
		want = RefValue
	}

	if c.Value.IsSet() && c.Value.Kind != want {
		return fmt.Errorf("%w: value is %s, want %s", fields.ErrValueShape, c.Value.Kind, want)
	}

	if c.Value2.IsSet() {
		if c.Operator != operators.Between {
			return fmt.Errorf("%w: second value only applies to between", fields.ErrValueShape)
		}
		if c.Value2.Kind != TextValue {
			return fmt.Errorf("%w: second value is %s, want %s", fields.ErrValueShape, c.Value2.Kind, TextValue)
		}
	}
	return nil
}
