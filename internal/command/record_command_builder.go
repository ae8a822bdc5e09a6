// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/leadq/internal/meta"
)

// RecordCommandBuilder assembles a leadq subcommand that emits a filtered
// record collection. query and fields share the filter, search, sort and
// output flags along with their validators; they differ only in Fetch.
type RecordCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	// Flags are the subcommand's own flags, merged with the global ones.
	Flags []cli.Flag
	// Fetch produces the records, their registry and the clause builder.
	Fetch func(context.Context, *cli.Command) (Dataset, error)
	Meta  meta.Meta
}

// Build returns the cli.Command with its flags sorted by name.
func (b *RecordCommandBuilder) Build() *cli.Command {
	flags := slices.Concat(
		b.Flags,
		[]cli.Flag{tldrFlag},
		NewGlobalFlags(b.Name, b.Meta.ConfigFile()),
	)
	slices.SortFunc(flags, func(x, y cli.Flag) int {
		return strings.Compare(x.Names()[0], y.Names()[0])
	})

	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata:  map[string]any{"meta": b.Meta},
		Flags:     flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: NewQueryActionRunner(b.Name, b.Fetch).Run,
	}
}
