// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"slices"
	"strings"

	"github.com/staranto/leadq/internal/directory"
)

// ValueKind tags which member of a Value is meaningful.
type ValueKind int

const (
	// Unset marks a value nobody has entered yet. Clauses with an unset value
	// are inert.
	Unset ValueKind = iota
	// TextValue is raw text from a form control or the command line.
	TextValue
	// SetValue is the option list of an in/notin clause.
	SetValue
	// RefValue is an entity picked for a reference field.
	RefValue
)

func (k ValueKind) String() string {
	switch k {
	case TextValue:
		return "text"
	case SetValue:
		return "set"
	case RefValue:
		return "ref"
	default:
		return "unset"
	}
}

// Value is a clause operand. The empty string is a set TextValue, distinct
// from Unset.
type Value struct {
	Kind ValueKind        `json:"kind" yaml:"kind"`
	Text string           `json:"text,omitempty" yaml:"text,omitempty"`
	Set  []string         `json:"set,omitempty" yaml:"set,omitempty"`
	Ref  directory.Entity `json:"ref,omitzero" yaml:"ref,omitempty"`
}

// Text returns a TextValue.
func Text(s string) Value {
	return Value{Kind: TextValue, Text: s}
}

// Options returns a SetValue holding a copy of opts.
func Options(opts ...string) Value {
	return Value{Kind: SetValue, Set: slices.Clone(opts)}
}

// Ref returns a RefValue for e. An entity with no name never matches.
func Ref(e directory.Entity) Value {
	return Value{Kind: RefValue, Ref: e}
}

// IsSet reports whether the value has been entered.
func (v Value) IsSet() bool {
	return v.Kind != Unset
}

// Raw returns the value as the user would have typed it, before coercion.
// References render as their display name.
func (v Value) Raw() string {
	switch v.Kind {
	case TextValue:
		return v.Text
	case SetValue:
		return strings.Join(v.Set, "|")
	case RefValue:
		return v.Ref.Name
	default:
		return ""
	}
}

func (v Value) clone() Value {
	v.Set = slices.Clone(v.Set)
	return v
}
