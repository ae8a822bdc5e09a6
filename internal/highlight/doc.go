// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package highlight marks the parts of a displayed value that caused a record
// to match, either as literal substrings or as the whole value.
package highlight
