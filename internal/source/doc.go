// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source reads the record collection a query filters. Records come
// from a JSON file, standard input or an S3 object, either as a JSON array
// or as JSON Lines. S3 objects are cached on disk keyed by their ETag.
package source
