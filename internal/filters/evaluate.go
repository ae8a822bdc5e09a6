// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"strings"

	"github.com/staranto/leadq/internal/coerce"
	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/highlight"
	"github.com/staranto/leadq/internal/log"
	"github.com/staranto/leadq/internal/operators"
)

// Apply returns the records that satisfy every clause of set and, when a
// query is given, contain it in at least one searchable field of reg. The
// result keeps input order and holds the same record maps. An empty set
// returns records itself.
//
// Every clause is validated first. On a configuration error Apply returns no
// records and the error, so callers can tell failure from zero matches.
func Apply(records []Record, reg *fields.Registry, set Set) ([]Record, error) {
	for _, c := range set.Clauses {
		if err := Validate(c, reg); err != nil {
			log.WithError(err).Debug("filters: rejected clause")
			return nil, err
		}
	}

	if set.Empty() {
		return records, nil
	}

	m := newMatcher(reg, set)
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if m.match(rec) {
			out = append(out, rec)
		}
	}

	log.Debugf("filters: %d of %d records kept by %d clauses, query %q",
		len(out), len(records), len(set.Clauses), m.query)
	return out, nil
}

// Count returns how many records Apply would keep.
func Count(records []Record, reg *fields.Registry, set Set) (int, error) {
	out, err := Apply(records, reg, set)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

// Matches reports whether a single record passes set. It does not validate
// the clauses; use Validate or Apply for that.
func Matches(rec Record, reg *fields.Registry, set Set) bool {
	return newMatcher(reg, set).match(rec)
}

// NeedleFor decides how field is highlighted on rec. The first active clause
// on the field wins: string and reference fields mark the clause's raw text
// as a substring (anchored for starts and ends), neq and non-string types
// mark the whole value when the clause holds.
// Without such a clause a free-text query is marked as a substring. With
// neither nothing is marked.
func NeedleFor(rec Record, field *fields.Descriptor, set Set) highlight.Needle {
	if field == nil {
		return highlight.Needle{}
	}

	for _, c := range set.Clauses {
		if c.Inert() || c.Field.Key != field.Key {
			continue
		}
		switch c.Field.Type {
		case fields.String, fields.Reference:
			text := strings.TrimSpace(c.Value.Raw())
			switch c.Operator {
			case operators.Neq:
				return highlight.Needle{Whole: true, Matched: Test(c, rec)}
			case operators.Starts:
				return highlight.Needle{Text: text, Anchor: highlight.Prefix}
			case operators.Ends:
				return highlight.Needle{Text: text, Anchor: highlight.Suffix}
			default:
				return highlight.Needle{Text: text}
			}
		default:
			return highlight.Needle{Whole: true, Matched: Test(c, rec)}
		}
	}

	if q := strings.TrimSpace(set.Query); q != "" {
		return highlight.Needle{Text: q}
	}
	return highlight.Needle{}
}

// matcher holds the per-call state shared by every record of one evaluation.
type matcher struct {
	clauses    []Clause
	query      string
	searchable []fields.Descriptor
}

func newMatcher(reg *fields.Registry, set Set) matcher {
	m := matcher{
		clauses: set.Clauses,
		query:   highlight.Fold(strings.TrimSpace(set.Query)),
	}
	if m.query != "" && reg != nil {
		m.searchable = reg.Searchable()
	}
	return m
}

func (m matcher) match(rec Record) bool {
	for _, c := range m.clauses {
		if !Test(c, rec) {
			return false
		}
	}
	if m.query == "" {
		return true
	}
	for i := range m.searchable {
		text := coerce.Display(fieldValue(rec, &m.searchable[i]))
		if strings.Contains(highlight.Fold(text), m.query) {
			return true
		}
	}
	return false
}
