// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/staranto/leadq/internal/cacheutil"
	"github.com/staranto/leadq/internal/command"
	"github.com/staranto/leadq/internal/config"
	"github.com/staranto/leadq/internal/log"
	"github.com/staranto/leadq/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		if len(args) > 1 && args[1] == "query" {
			args = processQueryArgs(args)
		}
		return args
	}
}

// processQueryArgs moves an explicit "-" (stdin) source to the end of args.
// The flag parser stops at a bare "-", so any flag after it would be lost.
func processQueryArgs(args []string) []string {
	idx := slices.Index(args[2:], "-")
	if idx == -1 {
		return args
	}
	idx += 2

	out := make([]string, 0, len(args))
	out = append(out, args[:idx]...)
	out = append(out, args[idx+1:]...)
	return append(out, "-")
}

// purgeCache removes cached documents older than cache.maxAgeDays (default
// 30). Zero or less keeps everything.
func purgeCache() {
	cache, ok := cacheutil.New()
	if !ok {
		return
	}

	days, _ := config.GetInt("cache.maxAgeDays", 30)
	if days <= 0 {
		return
	}

	n, err := cache.Purge(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		log.Debugf("cache purge err: err=%v", err)
		return
	}
	if n > 0 {
		log.Debugf("cache purged: removed=%d", n)
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	purgeCache()

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the flags listed under
// "<command>.<set>" in the config file. Without an @set argument the
// "defaults" set is not applied.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	for i, a := range args[2:] {
		if !strings.HasPrefix(a, "@") {
			continue
		}
		idx := 2 + i
		entries, err := config.GetStringSlice(args[1] + "." + a[1:])
		if err != nil {
			log.Warnf("set %s: %v", a, err)
		}
		rest := slices.Delete(slices.Clone(args), idx, idx+1)
		return expandSet(rest, entries, idx)
	}
	return args
}

// expandSet inserts the whitespace separated words of entries into args at
// insertIdx.
func expandSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}
