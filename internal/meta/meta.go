// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/staranto/leadq/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, and the starting working directory.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Namespace is the subcommand name used as the config keyspace.
	Namespace   string
	StartingDir string
}

// ConfigFile returns the path of the loaded config file, or "" when none was
// loaded.
func (m Meta) ConfigFile() string {
	return m.Config.Source
}
