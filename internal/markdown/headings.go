package markdown

import "strings"

// Scope is the heading context of a checklist item: the two deepest open
// headings. Depth is 0 (no heading yet), 1 (Section only) or 2.
type Scope struct {
	Section    string
	Subsection string
	Depth      int
}

// IsZero reports whether the item appeared before any heading.
func (s Scope) IsZero() bool {
	return s.Depth == 0
}

// HeadingStack holds the titles of the currently open headings, outermost
// first. The zero value is an empty stack.
type HeadingStack struct {
	titles []string
}

// Push records a heading of the given level. The stack is cut to level-1
// entries (or left as is when it is already shorter) and title is appended.
//
// Skipping levels therefore does not leave gaps: "# A" followed by "### C"
// yields [A C], and a later "## B" yields [A B].
func (h *HeadingStack) Push(level int, title string) {
	keep := level - 1
	if keep < 0 {
		keep = 0
	}

	if keep < len(h.titles) {
		h.titles = h.titles[:keep]
	}

	h.titles = append(h.titles, title)
}

// Len returns the number of open headings.
func (h *HeadingStack) Len() int {
	return len(h.titles)
}

// Titles returns a copy of the open heading titles, outermost first.
func (h *HeadingStack) Titles() []string {
	return append([]string(nil), h.titles...)
}

// Joined returns the open heading titles joined by single spaces.
func (h *HeadingStack) Joined() string {
	return strings.Join(h.titles, " ")
}

// Scope returns the scope for an item found at the current position.
func (h *HeadingStack) Scope() Scope {
	switch n := len(h.titles); n {
	case 0:
		return Scope{}
	case 1:
		return Scope{Section: h.titles[0], Depth: 1}
	default:
		return Scope{Section: h.titles[n-2], Subsection: h.titles[n-1], Depth: 2}
	}
}
