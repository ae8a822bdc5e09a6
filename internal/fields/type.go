// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type is the semantic type of a filterable field. It decides which operators
// are legal and how values are coerced. The zero value is undeclared.
type Type int

const (
	String Type = iota + 1
	Number
	Date
	Enum
	Reference
)

var typeNames = map[Type]string{
	String:    "string",
	Number:    "number",
	Date:      "date",
	Enum:      "enum",
	Reference: "reference",
}

// Types returns every declared type in declaration order.
func Types() []Type {
	return []Type{String, Number, Date, Enum, Reference}
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "undeclared"
}

// ParseType maps a type name ("string", "number", ...) to its Type.
func ParseType(s string) (Type, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == want {
			return t, nil
		}
	}
	return 0, &ConfigurationError{Err: fmt.Errorf("%w: %q", ErrUnknownType, s)}
}

// MarshalText renders the type name; used by encoding/json.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a type name; used by encoding/json.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML renders the type name.
func (t Type) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML parses a type name from a scalar node.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}
