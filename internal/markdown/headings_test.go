package markdown_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/taskscan/internal/markdown"
)

type heading struct {
	level int
	title string
}

// Contract: scope reflects the stack at the point of the item and keeps only
// the two deepest levels.
func Test_HeadingStack_ReturnsScope_When_HeadingsPushed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		headings   []heading
		wantScope  markdown.Scope
		wantTitles []string
	}{
		{
			name:      "empty",
			wantScope: markdown.Scope{},
		},
		{
			name:       "single",
			headings:   []heading{{1, "A"}},
			wantScope:  markdown.Scope{Section: "A", Depth: 1},
			wantTitles: []string{"A"},
		},
		{
			name:       "two levels",
			headings:   []heading{{1, "A"}, {2, "B"}},
			wantScope:  markdown.Scope{Section: "A", Subsection: "B", Depth: 2},
			wantTitles: []string{"A", "B"},
		},
		{
			name:       "three levels keeps deepest two",
			headings:   []heading{{1, "A"}, {2, "B"}, {3, "C"}},
			wantScope:  markdown.Scope{Section: "B", Subsection: "C", Depth: 2},
			wantTitles: []string{"A", "B", "C"},
		},
		{
			name:       "sibling replaces",
			headings:   []heading{{1, "A"}, {2, "B"}, {2, "B2"}},
			wantScope:  markdown.Scope{Section: "A", Subsection: "B2", Depth: 2},
			wantTitles: []string{"A", "B2"},
		},
		{
			name:       "shallower heading closes deeper ones",
			headings:   []heading{{1, "A"}, {2, "B"}, {3, "C"}, {1, "D"}},
			wantScope:  markdown.Scope{Section: "D", Depth: 1},
			wantTitles: []string{"D"},
		},
		{
			name:       "level skip appends without gap",
			headings:   []heading{{1, "A"}, {3, "C"}},
			wantScope:  markdown.Scope{Section: "A", Subsection: "C", Depth: 2},
			wantTitles: []string{"A", "C"},
		},
		{
			name:       "level skip then fill",
			headings:   []heading{{1, "A"}, {3, "C"}, {2, "B"}},
			wantScope:  markdown.Scope{Section: "A", Subsection: "B", Depth: 2},
			wantTitles: []string{"A", "B"},
		},
		{
			name:       "document starting deep",
			headings:   []heading{{3, "Deep"}},
			wantScope:  markdown.Scope{Section: "Deep", Depth: 1},
			wantTitles: []string{"Deep"},
		},
		{
			name:       "deep skip keeps lingering level",
			headings:   []heading{{1, "A"}, {2, "B"}, {4, "D"}, {3, "C"}},
			wantScope:  markdown.Scope{Section: "B", Subsection: "C", Depth: 2},
			wantTitles: []string{"A", "B", "C"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var stack markdown.HeadingStack
			for _, h := range tc.headings {
				stack.Push(h.level, h.title)
			}

			if diff := cmp.Diff(tc.wantScope, stack.Scope()); diff != "" {
				t.Errorf("scope mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(tc.wantTitles, stack.Titles()); diff != "" {
				t.Errorf("titles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_HeadingStack_JoinsTitles_When_Joined(t *testing.T) {
	t.Parallel()

	var stack markdown.HeadingStack
	stack.Push(1, "Feature")
	stack.Push(2, "Critical P1")

	if got, want := stack.Joined(), "Feature Critical P1"; got != want {
		t.Fatalf("Joined()=%q, want=%q", got, want)
	}

	if got, want := stack.Len(), 2; got != want {
		t.Fatalf("Len()=%d, want=%d", got, want)
	}
}

func Test_HeadingStack_TitlesIsCopy_When_Mutated(t *testing.T) {
	t.Parallel()

	var stack markdown.HeadingStack
	stack.Push(1, "A")

	titles := stack.Titles()
	titles[0] = "changed"

	if got, want := stack.Scope().Section, "A"; got != want {
		t.Fatalf("section=%q, want=%q", got, want)
	}
}
