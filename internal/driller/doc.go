// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller resolves dotted field paths, such as owner.name or
// contacts[0].email, against decoded records.
package driller
