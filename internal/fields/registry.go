// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/staranto/leadq/internal/log"
)

// Descriptor identifies one filterable attribute of a record.
type Descriptor struct {
	// Key names the field in clauses, sort specs and output columns.
	Key string `yaml:"key" json:"key"`
	// Label is the human title used for column headers.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
	Type  Type   `yaml:"type" json:"type"`
	// Options lists the legal values of an enum field. Empty for other types.
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
	// Searchable puts the field in the fixed free-text search set.
	Searchable bool `yaml:"searchable,omitempty" json:"searchable,omitempty"`
	// Path is the dotted record path holding the value. Defaults to Key.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// RecordPath returns where the field's raw value lives in a record.
func (d Descriptor) RecordPath() string {
	if d.Path != "" {
		return d.Path
	}
	return d.Key
}

// Title returns the label, falling back to the key.
func (d Descriptor) Title() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Key
}

// Registry is the read-only, ordered set of filterable fields for one kind of
// record. It is built once at startup and never changes afterwards.
type Registry struct {
	name  string
	descs []Descriptor
	index map[string]int
}

// New validates descs and returns a Registry holding them in order. Any
// problem is reported as a *ConfigurationError.
func New(name string, descs ...Descriptor) (*Registry, error) {
	reg := &Registry{
		name:  name,
		descs: make([]Descriptor, 0, len(descs)),
		index: make(map[string]int, len(descs)),
	}

	for _, d := range descs {
		if err := validate(d); err != nil {
			return nil, err
		}
		if _, dup := reg.index[d.Key]; dup {
			return nil, &ConfigurationError{Field: d.Key, Err: ErrDuplicateField}
		}
		d.Options = append([]string(nil), d.Options...)
		reg.index[d.Key] = len(reg.descs)
		reg.descs = append(reg.descs, d)
	}

	log.Debugf("registry built: name=%s, fields=%d", name, len(reg.descs))
	return reg, nil
}

// MustNew is New for static registries declared in code. It panics on a
// configuration error.
func MustNew(name string, descs ...Descriptor) *Registry {
	reg, err := New(name, descs...)
	if err != nil {
		panic(err)
	}
	return reg
}

func validate(d Descriptor) error {
	if strings.TrimSpace(d.Key) == "" {
		return &ConfigurationError{Err: ErrEmptyKey}
	}

	switch d.Type {
	case Enum:
		if len(d.Options) == 0 {
			return &ConfigurationError{Field: d.Key, Type: d.Type, Err: ErrMissingOptions}
		}
	case String, Number, Date, Reference:
		if len(d.Options) != 0 {
			return &ConfigurationError{Field: d.Key, Type: d.Type, Err: ErrUnexpectedOptions}
		}
	default:
		return &ConfigurationError{Field: d.Key, Err: ErrUnknownType}
	}

	return nil
}

// Name returns the registry name, e.g. "leads".
func (r *Registry) Name() string {
	return r.name
}

// Len returns the number of fields.
func (r *Registry) Len() int {
	return len(r.descs)
}

// All returns a copy of the descriptors in declaration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.descs))
	copy(out, r.descs)
	return out
}

// Keys returns the field keys in declaration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.descs))
	for i, d := range r.descs {
		keys[i] = d.Key
	}
	return keys
}

// Lookup returns a copy of the descriptor for key.
func (r *Registry) Lookup(key string) (*Descriptor, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	d := r.descs[i]
	return &d, true
}

// Searchable returns the fields that take part in free-text search.
func (r *Registry) Searchable() []Descriptor {
	var out []Descriptor
	for _, d := range r.descs {
		if d.Searchable {
			out = append(out, d)
		}
	}
	return out
}

// registryFile is the on-disk YAML shape of a registry.
type registryFile struct {
	Name   string       `yaml:"name"`
	Fields []Descriptor `yaml:"fields"`
}

// LoadFile reads a registry declared in YAML:
//
//	name: leads
//	fields:
//	  - key: name
//	    type: string
//	    searchable: true
//	  - key: status
//	    type: enum
//	    options: [New, Qualified]
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from a YAML document.
func Parse(data []byte) (*Registry, error) {
	var rf registryFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	if len(rf.Fields) == 0 {
		return nil, fmt.Errorf("registry %q declares no fields", rf.Name)
	}
	return New(rf.Name, rf.Fields...)
}
