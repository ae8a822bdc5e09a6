// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels wrapped by ConfigurationError. Test with errors.Is.
var (
	ErrUnknownType       = errors.New("undeclared field type")
	ErrUnknownOperator   = errors.New("unknown operator")
	ErrIllegalOperator   = errors.New("operator not legal for field type")
	ErrUnknownField      = errors.New("unknown field")
	ErrDuplicateField    = errors.New("duplicate field")
	ErrEmptyKey          = errors.New("empty field key")
	ErrMissingOptions    = errors.New("enum field declares no options")
	ErrUnexpectedOptions = errors.New("options declared on non-enum field")
	ErrValueShape        = errors.New("value shape does not fit operator")
	ErrMalformedFilter   = errors.New("malformed filter expression")
)

// ConfigurationError reports a programming or configuration mistake: a field
// type nobody declared, an operator that is not legal for a type, a clause
// naming a field the registry does not know. It is never produced by
// malformed user input.
type ConfigurationError struct {
	Field    string
	Operator string
	Type     Type
	Err      error
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field %q", e.Field))
	}
	if e.Type != 0 {
		parts = append(parts, "type "+e.Type.String())
	}
	if e.Operator != "" {
		parts = append(parts, fmt.Sprintf("operator %q", e.Operator))
	}

	msg := "configuration error"
	if len(parts) > 0 {
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	return msg + ": " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
