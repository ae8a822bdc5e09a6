// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"cmp"
	"strings"

	"github.com/staranto/leadq/internal/coerce"
	"github.com/staranto/leadq/internal/driller"
	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/log"
	"github.com/staranto/leadq/internal/operators"
)

// Test reports whether rec satisfies c. Inert clauses match everything. A
// clause or record value that cannot be coerced matches nothing, whatever
// the operator.
func Test(c Clause, rec Record) bool {
	if c.Inert() {
		return true
	}
	if err := checkShape(c); err != nil {
		log.Tracef("filters: %s: %v", c, err)
		return false
	}

	got := coerce.Record(c.Field.Type, fieldValue(rec, c.Field))
	if !got.Valid {
		return false
	}

	switch c.Field.Type {
	case fields.String, fields.Reference:
		return testString(c.Operator, got, operand(c.Field.Type, c.Value))
	case fields.Number, fields.Date:
		if c.Operator == operators.Between {
			lo := operand(c.Field.Type, c.Value)
			hi := operand(c.Field.Type, c.Value2)
			if !lo.Valid || !hi.Valid {
				return false
			}
			return compare(got, lo) >= 0 && compare(got, hi) <= 0
		}
		return testOrdered(c.Field.Type, c.Operator, got, operand(c.Field.Type, c.Value))
	case fields.Enum:
		return testEnum(c.Operator, got, operand(c.Field.Type, c.Value))
	default:
		log.Errorf("filters: undeclared field type %d on %q", int(c.Field.Type), c.Field.Key)
		return false
	}
}

// fieldValue returns the raw value of d in rec, or nil when it is absent.
func fieldValue(rec Record, d *fields.Descriptor) any {
	v, ok := driller.Drill(rec, d.RecordPath())
	if !ok {
		return nil
	}
	return v
}

// operand coerces a clause value. Its shape has already been checked.
func operand(t fields.Type, v Value) coerce.Comparable {
	switch v.Kind {
	case SetValue:
		return coerce.Options(v.Set)
	case RefValue:
		return coerce.Name(v.Ref.Name)
	default:
		return coerce.Text(t, v.Text)
	}
}

func testString(op operators.Operator, got, want coerce.Comparable) bool {
	if !want.Valid {
		return false
	}
	switch op {
	case operators.Contains:
		return strings.Contains(got.Str, want.Str)
	case operators.Eq:
		return got.Str == want.Str
	case operators.Neq:
		return got.Str != want.Str
	case operators.Starts:
		return strings.HasPrefix(got.Str, want.Str)
	case operators.Ends:
		return strings.HasSuffix(got.Str, want.Str)
	default:
		log.Errorf("filters: operator %q not handled for strings", op)
		return false
	}
}

func testOrdered(t fields.Type, op operators.Operator, got, want coerce.Comparable) bool {
	if !want.Valid {
		return false
	}
	c := compare(got, want)

	switch op {
	case operators.Eq:
		return c == 0
	case operators.Neq:
		return c != 0
	}

	if t == fields.Date {
		switch op {
		case operators.Before:
			return c < 0
		case operators.After:
			return c > 0
		}
	} else {
		switch op {
		case operators.Gt:
			return c > 0
		case operators.Lt:
			return c < 0
		case operators.Gte:
			return c >= 0
		case operators.Lte:
			return c <= 0
		}
	}

	log.Errorf("filters: operator %q not handled for %s", op, t)
	return false
}

func testEnum(op operators.Operator, got, want coerce.Comparable) bool {
	if !want.Valid {
		return false
	}
	switch op {
	case operators.Eq:
		return got.Str == want.Str
	case operators.Neq:
		return got.Str != want.Str
	case operators.In:
		_, ok := want.Set[got.Str]
		return ok
	case operators.NotIn:
		_, ok := want.Set[got.Str]
		return !ok
	default:
		log.Errorf("filters: operator %q not handled for enums", op)
		return false
	}
}

// compare orders two valid comparables of the same ordered type.
func compare(a, b coerce.Comparable) int {
	if a.Type == fields.Date {
		return a.Time.Compare(b.Time)
	}
	return cmp.Compare(a.Num, b.Num)
}
