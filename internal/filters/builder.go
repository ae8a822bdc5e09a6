// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/leadq/internal/directory"
	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/log"
	"github.com/staranto/leadq/internal/operators"
)

const (
	rangeSep  = ".."
	optionSep = "|"
)

// nameFinder is implemented by directories that can also resolve a display
// name back to an entity.
type nameFinder interface {
	FindByName(name string) (directory.Entity, bool)
}

// Builder turns textual filter input into validated clauses. Reference
// values are resolved through Directory so evaluation never does lookups of
// its own.
type Builder struct {
	Registry  *fields.Registry
	Directory directory.Directory
}

// NewBuilder returns a Builder for reg. dir may be nil, in which case
// reference values are taken as display names.
func NewBuilder(reg *fields.Registry, dir directory.Directory) *Builder {
	return &Builder{Registry: reg, Directory: dir}
}

// Build returns the clause for field key, operator op and raw values. raw2
// is the upper bound of between and ignored otherwise; an empty raw2 leaves
// the clause inert. in/notin options are separated by "|".
func (b *Builder) Build(key, op, raw, raw2 string) (Clause, error) {
	if b.Registry == nil {
		return Clause{}, &fields.ConfigurationError{Field: key, Err: fmt.Errorf("%w: no registry", fields.ErrUnknownField)}
	}

	d, ok := b.Registry.Lookup(strings.TrimSpace(key))
	if !ok {
		return Clause{}, &fields.ConfigurationError{
			Field: key,
			Err:   fmt.Errorf("%w in %s, must be one of %v", fields.ErrUnknownField, b.Registry.Name(), b.Registry.Keys()),
		}
	}

	operator, err := operators.Parse(op)
	if err != nil {
		var cfgErr *fields.ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Field = d.Key
			cfgErr.Type = d.Type
		}
		return Clause{}, err
	}

	c := Clause{Field: d, Operator: operator}
	switch {
	case operator.Arity() == operators.Multi:
		c.Value = Options(splitOptions(raw)...)
	case d.Type == fields.Reference:
		c.Value = Ref(b.resolve(raw))
	default:
		c.Value = Text(raw)
	}
	if operator == operators.Between && raw2 != "" {
		c.Value2 = Text(raw2)
	}

	if err := Validate(c, b.Registry); err != nil {
		return Clause{}, err
	}
	log.Debugf("filters: built clause %s", c)
	return c, nil
}

// ParseSpec parses a list of key:op:value expressions. Expressions are
// separated by a comma unless LEADQ_FILTER_DELIM says otherwise. Between
// bounds are written lo..hi. An expression with no value yields an inert
// clause.
func (b *Builder) ParseSpec(spec string) ([]Clause, error) {
	//nolint:prealloc
	var clauses []Clause

	if strings.TrimSpace(spec) == "" {
		return clauses, nil
	}

	delim := ","
	if d, ok := os.LookupEnv("LEADQ_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, expr := range splitExprs(spec, delim) {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}

		parts := strings.SplitN(expr, ":", 3)
		if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, &fields.ConfigurationError{Err: fmt.Errorf("%w: %q, want key:op:value", fields.ErrMalformedFilter, expr)}
		}

		if len(parts) == 2 {
			c, err := b.Build(parts[0], parts[1], "", "")
			if err != nil {
				return nil, err
			}
			c.Value, c.Value2 = Value{}, Value{}
			clauses = append(clauses, c)
			continue
		}

		raw, raw2 := parts[2], ""
		if op, err := operators.Parse(parts[1]); err == nil && op == operators.Between {
			raw, raw2, _ = strings.Cut(parts[2], rangeSep)
		}

		c, err := b.Build(parts[0], parts[1], strings.TrimSpace(raw), strings.TrimSpace(raw2))
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}

	return clauses, nil
}

// resolve maps a reference value to an entity: by id first, then by name.
// Without a directory the text is the display name. An unknown value yields
// an entity with no name, which never matches.
func (b *Builder) resolve(raw string) directory.Entity {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return directory.Entity{}
	}
	if b.Directory == nil {
		return directory.Entity{Name: raw}
	}
	if e, ok := b.Directory.Lookup(raw); ok {
		return e
	}
	if f, ok := b.Directory.(nameFinder); ok {
		if e, ok := f.FindByName(raw); ok {
			return e
		}
	}
	log.Warnf("filters: reference %q not found in directory", raw)
	return directory.Entity{ID: raw}
}

// splitExprs splits spec on delim. A delimiter preceded by a backslash is
// kept as literal text.
func splitExprs(spec, delim string) []string {
	escaped := `\` + delim
	var out []string
	var cur strings.Builder
	for spec != "" {
		switch {
		case strings.HasPrefix(spec, escaped):
			cur.WriteString(delim)
			spec = spec[len(escaped):]
		case strings.HasPrefix(spec, delim):
			out = append(out, cur.String())
			cur.Reset()
			spec = spec[len(delim):]
		default:
			cur.WriteByte(spec[0])
			spec = spec[1:]
		}
	}
	return append(out, cur.String())
}

func splitOptions(raw string) []string {
	var opts []string
	for _, o := range strings.Split(raw, optionSep) {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	return opts
}
