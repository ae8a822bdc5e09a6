// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/log"
	"github.com/staranto/leadq/internal/operators"
)

// PatchKind names the clause part a Patch replaces.
type PatchKind int

const (
	EditField PatchKind = iota + 1
	EditOperator
	EditValue
	EditValue2
)

// Patch is one edit of a filter row.
type Patch struct {
	Kind     PatchKind
	Field    *fields.Descriptor
	Operator operators.Operator
	Value    Value
}

// FieldPatch selects a field.
func FieldPatch(d *fields.Descriptor) Patch {
	return Patch{Kind: EditField, Field: d}
}

// OperatorPatch selects an operator.
func OperatorPatch(op operators.Operator) Patch {
	return Patch{Kind: EditOperator, Operator: op}
}

// ValuePatch enters the first value.
func ValuePatch(v Value) Patch {
	return Patch{Kind: EditValue, Value: v}
}

// Value2Patch enters the upper bound of a between clause.
func Value2Patch(v Value) Patch {
	return Patch{Kind: EditValue2, Value: v}
}

// Edit applies patches to c in order and returns the new clause. c is not
// modified.
//
//   - Selecting a different field clears the operator and both values since
//     operator sets differ per type.
//   - Selecting an operator of a different arity clears the value. Any
//     operator other than between clears the second value.
//   - A second value is only accepted while the operator is between.
func Edit(c Clause, patches ...Patch) Clause {
	next := Clause{
		Field:    c.Field,
		Operator: c.Operator,
		Value:    c.Value.clone(),
		Value2:   c.Value2.clone(),
	}

	for _, p := range patches {
		switch p.Kind {
		case EditField:
			if sameField(next.Field, p.Field) {
				continue
			}
			next = Clause{Field: p.Field}
		case EditOperator:
			if p.Operator == next.Operator {
				continue
			}
			if p.Operator.Arity() != next.Operator.Arity() {
				next.Value = Value{}
			}
			if p.Operator != operators.Between {
				next.Value2 = Value{}
			}
			next.Operator = p.Operator
		case EditValue:
			next.Value = p.Value.clone()
		case EditValue2:
			if next.Operator != operators.Between {
				log.Tracef("filters: second value ignored for operator %q", next.Operator)
				continue
			}
			next.Value2 = p.Value.clone()
		default:
			log.Errorf("filters: unknown patch kind %d", int(p.Kind))
		}
	}

	return next
}

func sameField(a, b *fields.Descriptor) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key == b.Key && a.Type == b.Type
}
