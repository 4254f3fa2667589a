package backlog

import (
	"github.com/calvinalkan/taskscan/internal/markdown"
)

// Document is the decoded text of one task file.
type Document struct {
	Org  string
	Repo string
	File string // path as reported in [Task.File]
	Text string
}

// Parse runs one forward pass over doc and returns its checklist items in
// document order. Every line matching the checkbox pattern yields a task;
// nothing in a document is an error.
//
// onDuplicate, if non-nil, is called for every item whose uid had to be
// disambiguated.
func Parse(doc Document, ids *Assigner, onDuplicate func(Task)) []Task {
	project := doc.Org + "/" + doc.Repo

	var (
		stack markdown.HeadingStack
		tasks []Task
	)

	for i, text := range markdown.SplitLines(doc.Text) {
		line := markdown.Classify(text)

		switch line.Kind {
		case markdown.KindHeading:
			stack.Push(line.Level, line.Title)

			continue
		case markdown.KindOther:
			continue
		}

		lineNum := i + 1
		id := ExtractID(line.Title)

		uid, dup := ids.Assign(TaskRef{
			Project: project,
			File:    doc.File,
			Line:    lineNum,
			ID:      id,
			Title:   line.Title,
		})

		status := StatusOpen
		if line.Done {
			status = StatusDone
		}

		task := Task{
			UID:      uid,
			Project:  project,
			File:     doc.File,
			Line:     lineNum,
			ID:       optional(id),
			Title:    line.Title,
			Priority: ResolvePriority(line.Title, stack.Joined()),
			Status:   status,
			Scope:    scopeFrom(stack.Scope()),
		}

		if dup && onDuplicate != nil {
			onDuplicate(task)
		}

		tasks = append(tasks, task)
	}

	return tasks
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
