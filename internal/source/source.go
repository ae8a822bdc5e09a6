// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"

	"github.com/staranto/leadq/internal/aws"
	"github.com/staranto/leadq/internal/cacheutil"
	"github.com/staranto/leadq/internal/filters"
	"github.com/staranto/leadq/internal/log"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

// cacheNamespace is the cache subdirectory holding S3 documents.
const cacheNamespace = "s3"

// ErrNoRecords is returned when a document holds no list of records.
var ErrNoRecords = errors.New("no record list found")

// Loader reads and decodes record documents.
type Loader struct {
	// Parent is an optional gjson path to the record list in the document.
	Parent string
	// Stdin replaces os.Stdin when set.
	Stdin io.Reader
	// Cache holds S3 documents. Nil disables caching.
	Cache *cacheutil.Cache
	// S3 returns the client used for s3:// sources.
	S3 func(ctx context.Context) (aws.ObjectAPI, error)
}

// Load reads src and returns its records.
func (l *Loader) Load(ctx context.Context, src string) ([]filters.Record, error) {
	data, err := l.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	recs, err := Parse(data, l.Parent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	log.Debugf("source: %d records from %s", len(recs), src)
	return recs, nil
}

// Read returns the raw document named by src: a file path, "-" for stdin or
// s3://bucket/key.
func (l *Loader) Read(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == Stdin:
		r := l.Stdin
		if r == nil {
			r = os.Stdin
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return b, nil
	case aws.IsURI(src):
		return l.readS3(ctx, src)
	default:
		b, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read records: %w", err)
		}
		return b, nil
	}
}

func (l *Loader) readS3(ctx context.Context, uri string) ([]byte, error) {
	bucket, key, err := aws.ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if l.S3 == nil {
		return nil, fmt.Errorf("no S3 client configured for %s", uri)
	}
	api, err := l.S3(ctx)
	if err != nil {
		return nil, err
	}

	etag, err := aws.ETag(ctx, api, bucket, key)
	if err != nil {
		return nil, err
	}
	cacheKey := fmt.Sprintf("%s/%s@%s", bucket, key, etag)

	if b, ok := l.Cache.Get(cacheNamespace, cacheKey); ok {
		return b, nil
	}

	b, err := aws.Read(ctx, api, bucket, key)
	if err != nil {
		return nil, err
	}
	if err := l.Cache.Put(cacheNamespace, cacheKey, b); err != nil {
		log.WithError(err).Warnf("failed to cache %s", uri)
	}
	return b, nil
}

// Parse decodes a JSON document into records. The document is either a JSON
// value holding a list of objects (optionally beneath parent) or JSON Lines.
// Items that are not objects are skipped.
func Parse(data []byte, parent string) ([]filters.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []filters.Record{}, nil
	}

	if !gjson.ValidBytes(data) {
		return parseLines(data)
	}

	list := gjson.ParseBytes(data)
	if parent != "" {
		list = list.Get(parent)
	}
	if !list.IsArray() {
		if parent == "" {
			return nil, fmt.Errorf("%w: document is not a list, set a parent path", ErrNoRecords)
		}
		return nil, fmt.Errorf("%w at %q", ErrNoRecords, parent)
	}

	var recs []filters.Record
	list.ForEach(func(i, item gjson.Result) bool {
		if rec, ok := toRecord(item); ok {
			recs = append(recs, rec)
		} else {
			log.Warnf("source: item %d is not an object, skipping", i.Int())
		}
		return true
	})
	if recs == nil {
		recs = []filters.Record{}
	}
	return recs, nil
}

func parseLines(data []byte) ([]filters.Record, error) {
	var recs []filters.Record
	var bad error
	line := 0
	gjson.ForEachLine(string(data), func(item gjson.Result) bool {
		line++
		if !gjson.Valid(item.Raw) {
			bad = fmt.Errorf("invalid JSON on line %d", line)
			return false
		}
		if rec, ok := toRecord(item); ok {
			recs = append(recs, rec)
		} else {
			log.Warnf("source: line %d is not an object, skipping", line)
		}
		return true
	})
	if bad != nil {
		return nil, bad
	}
	if len(recs) == 0 {
		return nil, errors.New("invalid JSON document")
	}
	return recs, nil
}

func toRecord(item gjson.Result) (filters.Record, bool) {
	if !item.IsObject() {
		return nil, false
	}
	rec, ok := item.Value().(map[string]interface{})
	return rec, ok
}
