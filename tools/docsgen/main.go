// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen renders markdown and tldr pages for every leadq subcommand from the
// live command tree.
package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/staranto/leadq/internal/command"
)

//go:embed templates/*.tmpl examples.yaml
var assets embed.FS

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type Subcommand struct {
	ID          string
	Short       string
	Usage       string
	Flags       []Flag
	Examples    []Example
	Description string
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

// examplesFile is the shape of examples.yaml: per-subcommand descriptions and
// examples that the command tree does not carry.
type examplesFile map[string]struct {
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs dir>")
		os.Exit(1)
	}

	app, err := command.InitApp(context.Background(), []string{"leadq"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	files, err := generate(os.Args[1], app, getVersion())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	for _, f := range files {
		fmt.Println("Generated", f)
	}
}

// generate writes one page per output type for each subcommand of app and
// returns the written paths.
func generate(docs string, app *cli.Command, version string) ([]string, error) {
	data, err := assets.ReadFile("examples.yaml")
	if err != nil {
		return nil, err
	}
	var extras examplesFile
	if err := yaml.Unmarshal(data, &extras); err != nil {
		return nil, fmt.Errorf("failed to parse examples: %w", err)
	}

	types := []Outputs{
		{Template: "templates/leadq.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "templates/leadq.tldr.tmpl", Folder: filepath.Join(docs, "tldr"), Prefix: "leadq-", Suffix: ".md"},
	}

	var written []string
	for _, cmd := range app.Commands {
		sub := describe(cmd)
		sub.Description = extras[sub.ID].Description
		sub.Examples = extras[sub.ID].Examples

		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0o755); err != nil {
				return written, err
			}

			tmpl, err := template.ParseFS(assets, t.Template)
			if err != nil {
				return written, err
			}

			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			if err := render(path, tmpl, metadata); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	return written, nil
}

func render(path string, tmpl *template.Template, data TemplateData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return tmpl.Execute(file, data)
}

// describe collects the visible flags of cmd, sorted by name.
func describe(cmd *cli.Command) Subcommand {
	sub := Subcommand{
		ID:    cmd.Name,
		Short: cmd.Usage,
		Usage: cmd.UsageText,
	}

	for _, f := range cmd.Flags {
		if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
			continue
		}

		names := f.Names()
		syntax := make([]string, len(names))
		for i, n := range names {
			if len(n) == 1 {
				syntax[i] = "-" + n
			} else {
				syntax[i] = "--" + n
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if df, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = df.GetUsage()
			if df.TakesValue() {
				flag.Default = strings.Trim(df.GetValue(), `"`)
			}
		}
		sub.Flags = append(sub.Flags, flag)
	}

	sort.Slice(sub.Flags, func(i, j int) bool {
		return sub.Flags[i].ID < sub.Flags[j].ID
	})
	return sub
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
