// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/log"
)

// Comparable is a value normalized into the domain its field type compares
// in. Only the member matching Type is meaningful. A Comparable with Valid
// false came from input that could not be normalized and never matches.
type Comparable struct {
	Type  fields.Type
	Str   string
	Num   float64
	Time  time.Time
	Set   map[string]struct{}
	Valid bool
}

// dateLayouts are tried in order when parsing date text.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// nameKeys are the keys probed, in order, for a relational object's display
// name.
var nameKeys = []string{"name", "displayName", "fullName", "label"}

func invalid(t fields.Type) Comparable {
	return Comparable{Type: t, Num: math.NaN()}
}

// Text normalizes raw form text entered for a clause on a field of type t.
// Reference fields expect the already resolved display name.
func Text(t fields.Type, raw string) Comparable {
	switch t {
	case fields.String, fields.Enum, fields.Reference:
		return Comparable{Type: t, Str: fold(raw), Valid: true}
	case fields.Number:
		return number(t, raw)
	case fields.Date:
		return date(t, raw)
	default:
		log.Errorf("coerce: undeclared field type %d", int(t))
		return invalid(t)
	}
}

// Options normalizes the option set of an in/notin clause.
func Options(raw []string) Comparable {
	set := make(map[string]struct{}, len(raw))
	for _, o := range raw {
		set[fold(o)] = struct{}{}
	}
	return Comparable{Type: fields.Enum, Set: set, Valid: true}
}

// Name normalizes a resolved reference's display name. An empty name means
// the reference could not be resolved, so the result never matches.
func Name(name string) Comparable {
	folded := fold(name)
	if folded == "" {
		log.Tracef("coerce: unresolved reference")
		return invalid(fields.Reference)
	}
	return Comparable{Type: fields.Reference, Str: folded, Valid: true}
}

// Record normalizes a raw record value for a field of type t. Missing values
// (nil) compare as the empty string for textual types and never match for
// numbers and dates.
func Record(t fields.Type, raw any) Comparable {
	switch t {
	case fields.String, fields.Enum:
		return Comparable{Type: t, Str: fold(Display(raw)), Valid: true}
	case fields.Reference:
		if m, ok := raw.(map[string]any); ok {
			name, found := nameOf(m)
			if !found {
				log.Tracef("coerce: reference object without a name: %v", m)
				return invalid(t)
			}
			return Comparable{Type: t, Str: fold(name), Valid: true}
		}
		return Comparable{Type: t, Str: fold(Display(raw)), Valid: true}
	case fields.Number:
		if n, ok := ToFloat64(raw); ok {
			if math.IsNaN(n) || math.IsInf(n, 0) {
				return invalid(t)
			}
			return Comparable{Type: t, Num: n, Valid: true}
		}
		if s, ok := raw.(string); ok {
			return number(t, s)
		}
		return invalid(t)
	case fields.Date:
		switch v := raw.(type) {
		case time.Time:
			return Comparable{Type: t, Time: v, Valid: true}
		case string:
			return date(t, v)
		}
		// Numeric dates are Unix epoch milliseconds.
		if ms, ok := ToFloat64(raw); ok && !math.IsNaN(ms) && !math.IsInf(ms, 0) {
			return Comparable{Type: t, Time: time.UnixMilli(int64(ms)).UTC(), Valid: true}
		}
		return invalid(t)
	default:
		log.Errorf("coerce: undeclared field type %d", int(t))
		return invalid(t)
	}
}

// Display renders a raw record value as the text a user would see. Relational
// objects render as their display name.
func Display(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case json.Number:
		return v.String()
	case map[string]any:
		if name, ok := nameOf(v); ok {
			return name
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}

	if n, ok := ToFloat64(raw); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	if b, err := json.Marshal(raw); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", raw)
}

// ParseDate parses date text with the accepted layouts.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToFloat64 normalizes the Go numeric kinds to float64. Returns (0, false)
// if v is not a recognized numeric type.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func number(t fields.Type, raw string) Comparable {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	// ParseFloat accepts "NaN" and "Inf"; neither is a usable bound.
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		log.Tracef("coerce: not a number: %q", raw)
		return invalid(t)
	}
	return Comparable{Type: t, Num: n, Valid: true}
}

func date(t fields.Type, raw string) Comparable {
	ts, ok := ParseDate(raw)
	if !ok {
		log.Tracef("coerce: not a date: %q", raw)
		return invalid(t)
	}
	return Comparable{Type: t, Time: ts, Valid: true}
}

func nameOf(m map[string]any) (string, bool) {
	for _, k := range nameKeys {
		if s, ok := m[k].(string); ok {
			return s, true
		}
	}
	return "", false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
