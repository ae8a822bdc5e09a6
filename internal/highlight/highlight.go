// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss/v2"
)

// Segment is a span of displayed text and whether it caused a match.
type Segment struct {
	Text    string `json:"text" yaml:"text"`
	Matched bool   `json:"matched" yaml:"matched"`
}

// Anchor pins needle text to one end of the displayed value.
type Anchor int

const (
	Anywhere Anchor = iota
	Prefix
	Suffix
)

// Needle decides how a displayed value is marked. Text is a literal,
// case-insensitive substring, optionally anchored. When Whole is set the
// entire value is marked as a unit according to Matched and Text is ignored.
// The zero Needle marks nothing.
type Needle struct {
	Text    string
	Whole   bool
	Matched bool
	Anchor  Anchor
}

// Active reports whether the needle marks anything.
func (n Needle) Active() bool {
	return n.Whole || n.Text != ""
}

// Fold is the case folding shared by free-text matching and Markup.
func Fold(s string) string {
	return strings.ToLower(s)
}

// Markup splits display into segments flagged by needle. Needle text is
// matched literally; regular expression metacharacters carry no meaning.
func Markup(display string, needle Needle) []Segment {
	if !needle.Active() {
		return []Segment{{Text: display}}
	}
	if needle.Whole {
		return []Segment{{Text: display, Matched: needle.Matched}}
	}

	folded, origin := foldIndex(display)
	spans := find(folded, Fold(needle.Text), needle.Anchor)
	if len(spans) == 0 {
		return []Segment{{Text: display}}
	}

	segs := make([]Segment, 0, 2*len(spans)+1)
	last := 0
	for _, sp := range spans {
		start, end := origin[sp[0]], origin[sp[1]]
		if start > last {
			segs = append(segs, Segment{Text: display[last:start]})
		}
		segs = append(segs, Segment{Text: display[start:end], Matched: true})
		last = end
	}
	if last < len(display) {
		segs = append(segs, Segment{Text: display[last:]})
	}
	return segs
}

// foldIndex folds s rune by rune, exactly as Fold does, and maps every byte
// offset of the folded text back to the start of its rune in s.
func foldIndex(s string) (string, []int) {
	var sb strings.Builder
	origin := make([]int, 0, len(s)+1)
	for i, r := range s {
		before := sb.Len()
		sb.WriteRune(unicode.ToLower(r))
		for range sb.Len() - before {
			origin = append(origin, i)
		}
	}
	origin = append(origin, len(s))
	return sb.String(), origin
}

// find returns the non-overlapping [start, end) spans of needle in folded.
// Anchored needles ignore surrounding whitespace.
func find(folded, needle string, anchor Anchor) [][2]int {
	if needle == "" {
		return nil
	}

	switch anchor {
	case Prefix:
		lead := len(folded) - len(strings.TrimLeftFunc(folded, unicode.IsSpace))
		if strings.HasPrefix(folded[lead:], needle) {
			return [][2]int{{lead, lead + len(needle)}}
		}
		return nil
	case Suffix:
		end := len(strings.TrimRightFunc(folded, unicode.IsSpace))
		if strings.HasSuffix(folded[:end], needle) {
			return [][2]int{{end - len(needle), end}}
		}
		return nil
	}

	var spans [][2]int
	for i := 0; i < len(folded); {
		j := strings.Index(folded[i:], needle)
		if j < 0 {
			break
		}
		spans = append(spans, [2]int{i + j, i + j + len(needle)})
		i += j + len(needle)
	}
	return spans
}

// Matched reports whether any segment is flagged.
func Matched(segs []Segment) bool {
	for _, s := range segs {
		if s.Matched {
			return true
		}
	}
	return false
}

// Plain joins the segment text back together.
func Plain(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Render styles matched segments with mark and the rest with base.
func Render(segs []Segment, base, mark lipgloss.Style) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if s.Matched {
			sb.WriteString(mark.Render(s.Text))
		} else {
			sb.WriteString(base.Render(s.Text))
		}
	}
	return sb.String()
}
