// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for leadq's user
// configuration, a YAML document found at LEADQ_CFG_FILE or in the user's
// configuration directory:
//   - Linux: $XDG_CONFIG_HOME/leadq.yaml or $HOME/.config/leadq.yaml
//   - macOS: $HOME/Library/Application Support/leadq.yaml
//   - Windows: %AppData%/leadq.yaml
//
// Keys are dotted paths. Command flags read their defaults from the
// namespace named after the command, e.g. query.entity.
package config
