// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters evaluates type-aware filter clauses over in-memory record
// collections.
//
// A Clause names a field from a fields.Registry, an operator legal for that
// field's type and one or two values. A Set conjoins its clauses and adds an
// optional free-text query that must hit at least one searchable field.
//
// Clause Lifecycle:
//
// Clauses are edited with the pure Edit reducer. Changing the field resets
// the operator and values; changing the operator clears values whose shape
// no longer fits. A clause missing its field, operator or value is inert and
// matches every record, so half-built rows never constrain results.
//
// Errors:
//
// Malformed user values (a non-numeric number bound, an unparseable date, an
// unresolved reference) never raise errors. The clause simply matches
// nothing. Configuration mistakes (an operator that is not legal for the
// field type, a field missing from the registry) are reported by Validate and
// make Apply return no records and a *fields.ConfigurationError.
//
// Building From Text:
//
// Builder turns the command line syntax key:op:value into clauses. Clauses
// are joined with a comma (escape a literal one as `\,` or override the
// delimiter with LEADQ_FILTER_DELIM), between bounds with "..", and in/notin
// options with "|". Examples:
//
//   - "budget:gte:10000"
//   - "status:in:New|Qualified"
//   - "createdAt:between:2024-01-01..2024-03-31"
//   - "assignedTo:eq:e1"
//   - `company:contains:Acme\, Inc`
package filters
