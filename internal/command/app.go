// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/leadq/internal/config"
	"github.com/staranto/leadq/internal/log"
	"github.com/staranto/leadq/internal/meta"
	"github.com/staranto/leadq/internal/operators"
)

// InitApp builds the leadq command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	if err := operators.CheckCatalog(); err != nil {
		return nil, fmt.Errorf("operator catalog: %w", err)
	}

	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the leadq
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Debugf("no config loaded: %v", err)
	}
	config.SetNamespace(ns)

	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		Namespace:   ns,
		StartingDir: sd,
	}

	return newApp(m, queryFetcher{}), nil
}

func newApp(m meta.Meta, qf queryFetcher) *cli.Command {
	app := &cli.Command{
		Name:  "leadq",
		Usage: "filter CRM record collections",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "leadq version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		queryCommandBuilder(m, qf),
		fieldsCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
