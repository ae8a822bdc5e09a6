// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/leadq/internal/config"
	"github.com/staranto/leadq/internal/directory"
	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/log"
	"github.com/staranto/leadq/internal/meta"
	"github.com/staranto/leadq/internal/output"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr leadq <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "leadq", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// ResolveRegistry returns the registry named by --registry (a YAML file) or,
// failing that, the built-in one named by --entity.
func ResolveRegistry(cmd *cli.Command) (*fields.Registry, error) {
	if path := cmd.String("registry"); path != "" {
		reg, err := fields.LoadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debugf("registry from file: path=%s, name=%s", path, reg.Name())
		return reg, nil
	}
	return fields.Builtin(cmd.String("entity"))
}

// LoadDirectory reads the --directory file. It returns a nil Directory when
// the flag is unset. The config key directoryParent names the list within
// the file.
func LoadDirectory(cmd *cli.Command) (directory.Directory, error) {
	path := cmd.String("directory")
	if path == "" {
		return nil, nil
	}

	parent, _ := config.GetString("directoryParent", "")
	dir, err := directory.LoadFile(path, parent)
	if err != nil {
		return nil, err
	}
	log.Debugf("directory loaded: path=%s, entities=%d", path, dir.Len())
	return dir, nil
}

// RenderOptions maps the output flags of cmd onto output.Options.
func RenderOptions(cmd *cli.Command, w io.Writer) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color") && isTerminal(w),
		Ago:     cmd.Bool("ago"),
		Commas:  cmd.Bool("commas"),
		Padding: cmd.Int("padding"),
		Columns: splitList(cmd.String("attrs")),
	}
}

// Writer returns the root command's writer, defaulting to stdout.
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// isTerminal reports whether w is a terminal. Color is never written to
// pipes or files.
func isTerminal(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// summary describes how many of total records were kept.
func summary(kept, total int, filtered bool) string {
	if !filtered {
		return fmt.Sprintf("%d records", total)
	}
	return fmt.Sprintf("%d of %d records", kept, total)
}
