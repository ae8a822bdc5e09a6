// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/filters"
	"github.com/staranto/leadq/internal/log"
	"github.com/staranto/leadq/internal/output"
)

// Dataset is what a FetchFn hands back to the runner. Builder is optional and
// carries the directory used for reference values. Raw is the unparsed
// document emitted by --output raw.
type Dataset struct {
	Raw      []byte
	Records  []filters.Record
	Registry *fields.Registry
	Builder  *filters.Builder
}

// QueryActionRunner encapsulates the common action pattern of the
// record-emitting subcommands. It handles the short-circuit checks, filter
// parsing, evaluation, sorting and output emission, with data fetching
// provided by FetchFn.
type QueryActionRunner struct {
	CommandName string
	FetchFn     func(context.Context, *cli.Command) (Dataset, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	// Step 2: Short-circuit checks.
	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}

	// Step 3: Fetch data.
	ds, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	// Step 4: Build the filter set.
	b := ds.Builder
	if b == nil {
		b = filters.NewBuilder(ds.Registry, nil)
	}
	clauses, err := b.ParseSpec(cmd.String("filter"))
	if err != nil {
		return err
	}
	set := filters.Set{Clauses: clauses, Query: cmd.String("search")}
	log.Debugf("filter set: clauses=%v, query=%q", clauses, set.Query)

	// Step 5: Evaluate.
	kept, err := filters.Apply(ds.Records, ds.Registry, set)
	if err != nil {
		return err
	}

	w := Writer(cmd)
	if cmd.Bool("count") {
		_, err := fmt.Fprintln(w, len(kept))
		return err
	}

	// Step 6: Sort + emit.
	kept = output.SortRecords(kept, cmd.String("sort"), ds.Registry)
	return qar.emit(w, cmd, ds, kept, set)
}

func (qar *QueryActionRunner) emit(w io.Writer, cmd *cli.Command, ds Dataset,
	kept []filters.Record, set filters.Set) error {

	opts := RenderOptions(cmd, w)
	if opts.Titles {
		opts.Footer = summary(len(kept), len(ds.Records), !set.Empty())
	}
	return output.Render(w, ds.Raw, kept, ds.Registry, set, opts)
}

// NewQueryActionRunner creates a QueryActionRunner with the provided
// configuration.
func NewQueryActionRunner(
	commandName string,
	fetchFn func(context.Context, *cli.Command) (Dataset, error),
) *QueryActionRunner {
	return &QueryActionRunner{
		CommandName: commandName,
		FetchFn:     fetchFn,
	}
}
