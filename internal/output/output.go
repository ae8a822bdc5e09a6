// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/staranto/leadq/internal/coerce"
	"github.com/staranto/leadq/internal/config"
	"github.com/staranto/leadq/internal/driller"
	"github.com/staranto/leadq/internal/fields"
	"github.com/staranto/leadq/internal/filters"
	"github.com/staranto/leadq/internal/highlight"
	"github.com/staranto/leadq/internal/log"
)

// Formats lists the accepted values of Options.Format.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options controls how a result set is emitted.
type Options struct {
	// Format is one of Formats. Empty means text.
	Format string
	// Titles adds a header row of field labels to text output.
	Titles bool
	// Color styles the table and marks highlighted text.
	Color bool
	// Ago renders dates relative to now, e.g. "3 days ago".
	Ago bool
	// Commas groups the digits of numbers.
	Commas bool
	// Padding is the left padding of every column but the first.
	Padding int
	// Columns limits and orders the text columns by field key. Empty means
	// every registry field.
	Columns []string
	Header  string
	Footer  string
}

// Render writes recs to w in the requested format. raw is the unfiltered
// source document and is only used by the raw format.
func Render(w io.Writer, raw []byte, recs []filters.Record, reg *fields.Registry,
	set filters.Set, opts Options) error {

	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "raw":
		_, err := w.Write(raw)
		return err
	case "json":
		if recs == nil {
			recs = []filters.Record{}
		}
		b, err := json.Marshal(recs)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(recs)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "", "text":
		return TableWriter(w, recs, reg, set, opts)
	default:
		return fmt.Errorf("unknown output format: %s", opts.Format)
	}
}

// Columns resolves keys against reg. Empty keys selects every field.
func Columns(reg *fields.Registry, keys []string) ([]fields.Descriptor, error) {
	if len(keys) == 0 {
		return reg.All(), nil
	}

	cols := make([]fields.Descriptor, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		d, ok := reg.Lookup(k)
		if !ok {
			return nil, &fields.ConfigurationError{Field: k, Err: fields.ErrUnknownField}
		}
		cols = append(cols, *d)
	}
	return cols, nil
}

// TableWriter renders recs as a borderless table. Text matching the active
// filter set is marked with the match style.
func TableWriter(w io.Writer, recs []filters.Record, reg *fields.Registry,
	set filters.Set, opts Options) error {

	cols, err := Columns(reg, opts.Columns)
	if err != nil {
		return err
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
		markStyle    = lipgloss.NewStyle()
	)

	if opts.Color {
		headerColor, evenColor, oddColor, matchColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
		markStyle = markStyle.Foreground(matchColor).Bold(true).Underline(true)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	if len(recs) > 0 {
		rows := make([][]string, 0, len(recs))
		for i, rec := range recs {
			base := evenRowStyle
			if i%2 == 1 {
				base = oddRowStyle
			}
			mark := markStyle.Inherit(base)

			row := make([]string, 0, len(cols))
			for c := range cols {
				d := &cols[c]
				value, _ := driller.Drill(rec, d.RecordPath())
				segs := highlight.Markup(DisplayValue(d, value, opts), filters.NeedleFor(rec, d, set))
				row = append(row, highlight.Render(segs, base, mark))
			}
			rows = append(rows, row)
		}

		pad := opts.Padding
		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				var style lipgloss.Style
				switch {
				case row == table.HeaderRow:
					style = headerStyle
				case row%2 == 0:
					style = evenRowStyle
				default:
					style = oddRowStyle
				}

				if col > 0 {
					style = style.PaddingLeft(pad)
				}

				return style
			}).
			Headers().
			Rows(rows...)

		if opts.Titles {
			headers := make([]string, 0, len(cols))
			for _, d := range cols {
				headers = append(headers, d.Title())
			}

			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers(headers...).BorderHeader(false)
		}
		fmt.Fprintln(w, t)
	}

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}

	return nil
}

// DisplayValue renders one record value of field d as table text. Missing
// values render as "-".
func DisplayValue(d *fields.Descriptor, value any, opts Options) string {
	if value == nil {
		return "-"
	}

	switch d.Type {
	case fields.Date:
		if opts.Ago {
			if c := coerce.Record(d.Type, value); c.Valid {
				return humanize.Time(c.Time.In(time.Local))
			}
		}
	case fields.Number:
		if opts.Commas {
			if c := coerce.Record(d.Type, value); c.Valid {
				return humanize.Commaf(c.Num)
			}
		}
	}

	s := coerce.Display(value)
	if s == "" {
		return "-"
	}
	return s
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd, match color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}
		log.Tracef("color %s not configured, using default", key)

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")
	match = resolveColor(key+".match", "#c0005a", "#ff5fa2")

	return
}
