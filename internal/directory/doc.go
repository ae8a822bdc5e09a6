// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package directory supplies the entities that reference fields point at,
// so clause builders can turn an identifier into a display name without
// hidden I/O in the filter engine.
package directory
