// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operators

import (
	"fmt"
	"slices"
	"strings"

	"github.com/staranto/leadq/internal/fields"
)

// Operator is a comparison tag legal for one or more field types.
type Operator string

const (
	Eq       Operator = "eq"
	Neq      Operator = "neq"
	Contains Operator = "contains"
	Starts   Operator = "starts"
	Ends     Operator = "ends"
	Gt       Operator = "gt"
	Lt       Operator = "lt"
	Gte      Operator = "gte"
	Lte      Operator = "lte"
	Between  Operator = "between"
	Before   Operator = "before"
	After    Operator = "after"
	In       Operator = "in"
	NotIn    Operator = "notin"
)

// Arity is how many values an operator compares against.
type Arity int

const (
	// Single compares against one value.
	Single Arity = iota
	// Range compares against an inclusive lower and upper bound.
	Range
	// Multi compares against a set of values.
	Multi
)

func (a Arity) String() string {
	switch a {
	case Range:
		return "range"
	case Multi:
		return "multi"
	default:
		return "single"
	}
}

var (
	stringOps = []Operator{Contains, Eq, Neq, Starts, Ends}
	numberOps = []Operator{Eq, Neq, Gt, Lt, Gte, Lte, Between}
	dateOps   = []Operator{Eq, Neq, Before, After, Between}
	enumOps   = []Operator{Eq, Neq, In, NotIn}
)

// symbols are the short forms shown in tables and accepted by Parse.
var symbols = map[Operator]string{
	Eq:       "==",
	Neq:      "!=",
	Contains: "contains",
	Starts:   "starts",
	Ends:     "ends",
	Gt:       ">",
	Lt:       "<",
	Gte:      ">=",
	Lte:      "<=",
	Between:  "between",
	Before:   "before",
	After:    "after",
	In:       "in",
	NotIn:    "not in",
}

// aliases are extra spellings accepted by Parse.
var aliases = map[string]Operator{
	"=":          Eq,
	"ne":         Neq,
	"not_in":     NotIn,
	"startswith": Starts,
	"endswith":   Ends,
}

// All returns every known operator.
func All() []Operator {
	return []Operator{Eq, Neq, Contains, Starts, Ends, Gt, Lt, Gte, Lte, Between, Before, After, In, NotIn}
}

// For returns the operators legal for t, in display order. Reference fields
// share the string operators because they compare display names. An
// undeclared type is a *fields.ConfigurationError.
func For(t fields.Type) ([]Operator, error) {
	var ops []Operator
	switch t {
	case fields.String, fields.Reference:
		ops = stringOps
	case fields.Number:
		ops = numberOps
	case fields.Date:
		ops = dateOps
	case fields.Enum:
		ops = enumOps
	default:
		return nil, &fields.ConfigurationError{Type: t, Err: fields.ErrUnknownType}
	}
	return slices.Clone(ops), nil
}

// Legal returns nil when op may be used on a field of type t.
func Legal(t fields.Type, op Operator) error {
	ops, err := For(t)
	if err != nil {
		return err
	}
	if !slices.Contains(ops, op) {
		return &fields.ConfigurationError{Type: t, Operator: string(op), Err: fields.ErrIllegalOperator}
	}
	return nil
}

// Parse accepts an operator name, its symbol or an alias.
func Parse(s string) (Operator, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, op := range All() {
		if string(op) == want || symbols[op] == want {
			return op, nil
		}
	}
	if op, ok := aliases[want]; ok {
		return op, nil
	}
	return "", &fields.ConfigurationError{Operator: s, Err: fields.ErrUnknownOperator}
}

// Known reports whether op is one of the declared operators.
func (op Operator) Known() bool {
	_, ok := symbols[op]
	return ok
}

// Arity returns how many values op compares against.
func (op Operator) Arity() Arity {
	switch op {
	case Between:
		return Range
	case In, NotIn:
		return Multi
	default:
		return Single
	}
}

// Symbol returns the display form of op.
func (op Operator) Symbol() string {
	if s, ok := symbols[op]; ok {
		return s
	}
	return string(op)
}

// CheckCatalog verifies that every declared field type maps to a non-empty
// set of known operators. Run it once at startup; a failure is a
// programming error.
func CheckCatalog() error {
	for _, t := range fields.Types() {
		ops, err := For(t)
		if err != nil {
			return err
		}
		if len(ops) == 0 {
			return &fields.ConfigurationError{Type: t, Err: fmt.Errorf("%w: no operators", fields.ErrUnknownOperator)}
		}
		for _, op := range ops {
			if !op.Known() {
				return &fields.ConfigurationError{Type: t, Operator: string(op), Err: fields.ErrUnknownOperator}
			}
		}
	}
	return nil
}
