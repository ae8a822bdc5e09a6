// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/staranto/leadq/internal/aws"
	"github.com/staranto/leadq/internal/cacheutil"
	"github.com/staranto/leadq/internal/config"
	"github.com/staranto/leadq/internal/filters"
	"github.com/staranto/leadq/internal/log"
	"github.com/staranto/leadq/internal/meta"
	"github.com/staranto/leadq/internal/source"
)

// queryFetcher loads the records named by the command's SOURCE argument.
// Stdin and S3 replace os.Stdin and the SDK client in tests.
type queryFetcher struct {
	Stdin io.Reader
	S3    func(ctx context.Context) (aws.ObjectAPI, error)
}

// Fetch implements the FetchFn of the query command.
func (qf queryFetcher) Fetch(ctx context.Context, cmd *cli.Command) (Dataset, error) {
	config.SetNamespace("query")

	reg, err := ResolveRegistry(cmd)
	if err != nil {
		return Dataset{}, err
	}

	dir, err := LoadDirectory(cmd)
	if err != nil {
		return Dataset{}, err
	}

	src := cmd.Args().First()
	if src == "" {
		src = source.Stdin
	}

	cache, _ := cacheutil.New()
	loader := &source.Loader{
		Parent: cmd.String("parent"),
		Stdin:  qf.Stdin,
		Cache:  cache,
		S3:     qf.S3,
	}
	if loader.S3 == nil {
		loader.S3 = s3FromConfig
	}

	raw, err := loader.Read(ctx, src)
	if err != nil {
		return Dataset{}, err
	}
	recs, err := source.Parse(raw, loader.Parent)
	if err != nil {
		return Dataset{}, err
	}
	log.Debugf("query: %d records from %s, registry=%s", len(recs), src, reg.Name())

	return Dataset{
		Raw:      raw,
		Records:  recs,
		Registry: reg,
		Builder:  filters.NewBuilder(reg, dir),
	}, nil
}

// s3FromConfig builds an S3 client from the aws.* config keys.
func s3FromConfig(ctx context.Context) (aws.ObjectAPI, error) {
	profile, _ := config.GetString("aws.profile", "")
	region, _ := config.GetString("aws.region", "")
	endpoint, _ := config.GetString("aws.endpoint", "")
	pathStyle, _ := config.GetBool("aws.pathStyle", false)

	client, err := aws.NewS3(ctx,
		aws.WithProfile(profile),
		aws.WithRegion(region),
		aws.WithEndpoint(endpoint),
		aws.WithPathStyle(pathStyle),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// queryCommandBuilder constructs the cli.Command for "query".
func queryCommandBuilder(meta meta.Meta, fetcher queryFetcher) *cli.Command {
	return (&RecordCommandBuilder{
		Name:      "query",
		Usage:     "filter a collection of CRM records",
		UsageText: "leadq query [SOURCE] [options]",
		Flags:     NewQueryFlags("query", meta.ConfigFile()),
		Meta:      meta,
		Fetch:     fetcher.Fetch,
	}).Build()
}
