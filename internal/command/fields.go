// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/leadq/internal/config"
	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/filters"
	"github.com/staranto/leadq/internal/meta"
	"github.com/staranto/leadq/internal/operators"
)

// fieldsRegistry describes the rows of the fields listing, so the listing
// itself can be filtered, searched and sorted like any record collection.
var fieldsRegistry = func() *fields.Registry {
	typeNames := make([]string, 0, len(fields.Types()))
	for _, t := range fields.Types() {
		typeNames = append(typeNames, t.String())
	}

	return fields.MustNew("fields",
		fields.Descriptor{Key: "key", Label: "Field", Type: fields.String, Searchable: true},
		fields.Descriptor{Key: "label", Label: "Label", Type: fields.String, Searchable: true},
		fields.Descriptor{Key: "type", Label: "Type", Type: fields.Enum, Options: typeNames},
		fields.Descriptor{Key: "operators", Label: "Operators", Type: fields.String},
		fields.Descriptor{Key: "options", Label: "Options", Type: fields.String, Searchable: true},
		fields.Descriptor{Key: "searchable", Label: "Searchable", Type: fields.Enum, Options: []string{"yes", "no"}},
		fields.Descriptor{Key: "path", Label: "Path", Type: fields.String},
	)
}()

// describeFields turns each descriptor of reg into a listing row.
func describeFields(reg *fields.Registry) ([]filters.Record, error) {
	var rows []filters.Record
	for _, d := range reg.All() {
		ops, err := operators.For(d.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Key, err)
		}
		names := make([]string, len(ops))
		for i, op := range ops {
			names[i] = string(op)
		}

		searchable := "no"
		if d.Searchable {
			searchable = "yes"
		}

		rows = append(rows, filters.Record{
			"key":        d.Key,
			"label":      d.Title(),
			"type":       d.Type.String(),
			"operators":  strings.Join(names, " "),
			"options":    strings.Join(d.Options, "|"),
			"searchable": searchable,
			"path":       d.RecordPath(),
		})
	}
	return rows, nil
}

// fieldsFetch implements the FetchFn of the fields command.
func fieldsFetch(_ context.Context, cmd *cli.Command) (Dataset, error) {
	config.SetNamespace("fields")

	reg, err := ResolveRegistry(cmd)
	if err != nil {
		return Dataset{}, err
	}

	rows, err := describeFields(reg)
	if err != nil {
		return Dataset{}, err
	}

	raw, err := json.Marshal(reg.All())
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to marshal registry: %w", err)
	}

	return Dataset{
		Raw:      raw,
		Records:  rows,
		Registry: fieldsRegistry,
	}, nil
}

// fieldsCommandBuilder constructs the cli.Command for "fields".
func fieldsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&RecordCommandBuilder{
		Name:      "fields",
		Usage:     "list the filterable fields of a registry",
		UsageText: "leadq fields [options]",
		Meta:      meta,
		Fetch:     fieldsFetch,
	}).Build()
}
