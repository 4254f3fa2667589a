// Package markdown classifies lines of task documents and tracks the
// heading hierarchy they sit under.
//
// Classification is per physical line. There is no lookahead, so fenced code
// blocks, setext headings and checklist items wrapped onto several lines are
// not recognised as such:
//
//	# Phase 1          -> Heading{Level: 1, Title: "Phase 1"}
//	- [ ] T001 Do it   -> Checklist{Done: false, Title: "T001 Do it"}
//	  continued text   -> Other
package markdown

import (
	"regexp"
	"strings"
)

// Kind is the classification of a single line.
type Kind int

const (
	KindOther Kind = iota
	KindHeading
	KindChecklist
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindChecklist:
		return "checklist"
	default:
		return "other"
	}
}

// Line is the result of [Classify]. Level is set for headings, Done for
// checklist items; Title is set for both.
type Line struct {
	Kind  Kind
	Level int
	Title string
	Done  bool
}

const headingMarker = '#'

var checkboxPattern = regexp.MustCompile(`^\s*-\s*\[([ Xx])\]\s*(.+)$`)

// Classify returns the classification of line. The line must not contain
// its terminating newline.
func Classify(line string) Line {
	if level, title, ok := heading(line); ok {
		return Line{Kind: KindHeading, Level: level, Title: title}
	}

	match := checkboxPattern.FindStringSubmatch(line)
	if match == nil {
		return Line{Kind: KindOther}
	}

	return Line{
		Kind:  KindChecklist,
		Done:  strings.EqualFold(match[1], "x"),
		Title: strings.TrimSpace(match[2]),
	}
}

// heading reports whether line opens a heading: a run of '#' at column 0
// followed by whitespace or the end of the line.
func heading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == headingMarker {
		level++
	}

	if level == 0 {
		return 0, "", false
	}

	if level < len(line) && line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}

	return level, strings.TrimSpace(line[level:]), true
}

// SplitLines splits text into physical lines. "\r\n" and lone "\r" count as
// line breaks. A trailing line break does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")

	return strings.Split(text, "\n")
}
