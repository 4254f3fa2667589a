// Package backlog discovers task documents below a projects root, parses
// their checklist items into task records and serializes the aggregate.
//
// A scan is a single sequential pass:
//
//	Walker -> per-file text -> parse (classify, headings, fields, identity) -> Backlog
//
// Statistics for the pass are collected in a [Stats] value owned by the
// caller of [Scanner.Scan].
package backlog

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/calvinalkan/taskscan/internal/markdown"
)

// Priority levels. P1 is the highest.
type Priority string

const (
	PriorityHigh   Priority = "P1"
	PriorityMedium Priority = "P2"
	PriorityLow    Priority = "P3"

	DefaultPriority = PriorityMedium
)

// Status of a checklist item.
type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

// Task is one parsed checklist item. Field order is the serialized order.
type Task struct {
	UID      string   `json:"uid" yaml:"uid"`
	Project  string   `json:"project" yaml:"project"`
	File     string   `json:"file" yaml:"file"`
	Line     int      `json:"line" yaml:"line"`
	ID       *string  `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Priority Priority `json:"priority" yaml:"priority"`
	Status   Status   `json:"status" yaml:"status"`
	Scope    Scope    `json:"scope" yaml:"scope"`
}

// Scope is the heading context of a task. Depth is the number of populated
// fields (0, 1 or 2); an empty Section at Depth 1 is a heading with no text.
type Scope struct {
	Section    string
	Subsection string
	Depth      int
}

func scopeFrom(s markdown.Scope) Scope {
	return Scope{Section: s.Section, Subsection: s.Subsection, Depth: s.Depth}
}

type sectionOnly struct {
	Section string `json:"section" yaml:"section"`
}

type sectionAndSub struct {
	Section    string `json:"section" yaml:"section"`
	Subsection string `json:"subsection" yaml:"subsection"`
}

// wire returns the value encoded for s: {} / {section} / {section, subsection}.
func (s Scope) wire() any {
	switch s.Depth {
	case 0:
		return struct{}{}
	case 1:
		return sectionOnly{Section: s.Section}
	default:
		return sectionAndSub{Section: s.Section, Subsection: s.Subsection}
	}
}

func (s Scope) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s.wire()); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (s Scope) MarshalYAML() (any, error) {
	return s.wire(), nil
}

// Backlog is the aggregate of one scan: a generation time and all tasks in
// file-discovery order.
type Backlog struct {
	GeneratedAt time.Time
	Items       []Task
}

// TimestampLayout is ISO-8601 with microseconds and a numeric zone offset.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// document is the serialized shape of a [Backlog].
type document struct {
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Items       []Task `json:"items" yaml:"items"`
}

func (b *Backlog) document() document {
	items := b.Items
	if items == nil {
		items = []Task{}
	}

	return document{
		GeneratedAt: b.GeneratedAt.Format(TimestampLayout),
		Items:       items,
	}
}
