// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/leadq/internal/fields"
)

var tldrFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "tldr",
	Usage:       "show tldr page",
	Hidden:      !pathHas("tldr"),
	HideDefault: true,
}

// NewGlobalFlags returns the flags shared by every record-emitting command.
// params[0] is the command namespace and params[1] the config file. When both
// are given, flag defaults may also come from "<ns>.<flag>" and "<flag>" keys
// in that file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	var ns, path string
	if len(params) == 2 {
		ns, path = params[0], params[1]
	}

	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "ago",
			Usage:   "show dates relative to now",
			Sources: valueSources(ns, path, "ago"),
		},
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of fields to include in text output",
			Sources: valueSources(ns, path, "attrs"),
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
			Sources: valueSources(ns, path, "color", "LEADQ_COLOR"),
		},
		&cli.BoolFlag{
			Name:    "commas",
			Usage:   "group the digits of numbers",
			Sources: valueSources(ns, path, "commas"),
		},
		&cli.StringFlag{
			Name:    "entity",
			Aliases: []string{"e"},
			Usage:   "built-in field registry (" + strings.Join(fields.BuiltinNames(), "|") + ")",
			Value:   "leads",
			Sources: valueSources(ns, path, "entity", "LEADQ_ENTITY"),
			Validator: func(value string) error {
				return FlagValidators(value, EntityValidator)
			},
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated field:operator:value clauses (escape a literal comma as \\, or set LEADQ_FILTER_DELIM)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Sources: valueSources(ns, path, "output"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "column padding for text output",
			Value:   2,
			Sources: valueSources(ns, path, "padding"),
			Validator: func(value int) error {
				return FlagValidators(value, PaddingValidator)
			},
		},
		&cli.StringFlag{
			Name:    "registry",
			Usage:   "YAML field registry file. Overrides --entity",
			Sources: valueSources(ns, path, "registry", "LEADQ_REGISTRY"),
		},
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"q"},
			Usage:   "free-text search across searchable fields",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of fields to sort the results by",
			Sources: valueSources(ns, path, "sort"),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
			Sources: valueSources(ns, path, "titles"),
		},
	}

	return
}

// NewQueryFlags returns the flags only the query command takes.
func NewQueryFlags(params ...string) []cli.Flag {
	var ns, path string
	if len(params) == 2 {
		ns, path = params[0], params[1]
	}

	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "count",
			Usage: "print only the number of matching records",
		},
		&cli.StringFlag{
			Name:    "directory",
			Aliases: []string{"d"},
			Usage:   "JSON file of {id,name} entries used to resolve reference values",
			Sources: valueSources(ns, path, "directory", "LEADQ_DIRECTORY"),
		},
		&cli.StringFlag{
			Name:    "parent",
			Usage:   "path to the record list within the source document",
			Sources: valueSources(ns, path, "parent"),
		},
	}
}

// valueSources builds a flag's source chain: the env vars first, then the
// namespaced and bare keys of the config file at path.
func valueSources(ns, path, name string, envs ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, e := range envs {
		chain.Chain = append(chain.Chain, cli.EnvVar(e))
	}
	if path == "" {
		return chain
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))

	return chain
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
