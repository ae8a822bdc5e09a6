// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output sorts filtered records and emits them as a highlighted
// table, JSON, YAML or the untouched source document.
package output
