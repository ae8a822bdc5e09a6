// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"slices"
	"strings"

	"github.com/staranto/leadq/internal/coerce"
	"github.com/staranto/leadq/internal/driller"
	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/filters"
)

// sortKey is one parsed term of a sort spec.
type sortKey struct {
	path          string
	desc          *fields.Descriptor
	ascending     bool
	caseSensitive bool
}

func parseSortSpec(spec string, reg *fields.Registry) []sortKey {
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)

		k := sortKey{ascending: true}
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			k.ascending = false
		}
		if strings.HasPrefix(field, "!") {
			field = strings.TrimPrefix(field, "!")
			k.caseSensitive = true
		}
		if field == "" {
			continue
		}

		k.path = field
		if reg != nil {
			if d, ok := reg.Lookup(field); ok {
				k.desc = d
				k.path = d.RecordPath()
			}
		}
		keys = append(keys, k)
	}
	return keys
}

// SortRecords returns a stably sorted copy of recs. spec is a comma separated
// list of field keys; a leading "-" sorts descending and a leading "!" makes
// text comparison case sensitive. Numbers and dates compare by value and
// values that do not coerce sort last in either direction.
func SortRecords(recs []filters.Record, spec string, reg *fields.Registry) []filters.Record {
	sorted := slices.Clone(recs)

	keys := parseSortSpec(spec, reg)
	if len(keys) == 0 {
		return sorted
	}

	slices.SortStableFunc(sorted, func(one, two filters.Record) int {
		for _, k := range keys {
			oneValue, _ := driller.Drill(one, k.path)
			twoValue, _ := driller.Drill(two, k.path)

			if c := k.compare(oneValue, twoValue); c != 0 {
				return c
			}
		}
		return 0
	})
	return sorted
}

func (k sortKey) compare(a, b any) int {
	if k.desc != nil && (k.desc.Type == fields.Number || k.desc.Type == fields.Date) {
		ca := coerce.Record(k.desc.Type, a)
		cb := coerce.Record(k.desc.Type, b)
		switch {
		case !ca.Valid && !cb.Valid:
			return 0
		case !ca.Valid:
			return 1
		case !cb.Valid:
			return -1
		}

		var c int
		if k.desc.Type == fields.Date {
			c = ca.Time.Compare(cb.Time)
		} else {
			c = cmp.Compare(ca.Num, cb.Num)
		}
		return k.direct(c)
	}

	// Unregistered keys still compare numerically when both sides are numbers.
	if k.desc == nil {
		na, aok := coerce.ToFloat64(a)
		nb, bok := coerce.ToFloat64(b)
		if aok && bok {
			return k.direct(cmp.Compare(na, nb))
		}
	}

	// Fall back to string comparison which can also handle bools.
	sa := coerce.Display(a)
	sb := coerce.Display(b)
	if !k.caseSensitive {
		sa = strings.ToLower(sa)
		sb = strings.ToLower(sb)
	}
	return k.direct(strings.Compare(sa, sb))
}

func (k sortKey) direct(c int) int {
	if k.ascending {
		return c
	}
	return -c
}
