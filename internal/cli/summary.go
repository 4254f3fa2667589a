package cli

import (
	"github.com/fatih/color"

	"github.com/calvinalkan/taskscan/internal/backlog"
)

func printSummary(o *IO, stats *backlog.Stats) {
	header := color.New(color.Bold)
	errHeader := color.New(color.FgRed, color.Bold)

	if o.color {
		header.EnableColor()
		errHeader.EnableColor()
	} else {
		header.DisableColor()
		errHeader.DisableColor()
	}

	o.Println()
	o.Println(header.Sprint("=== Scan Summary ==="))
	o.Printf("Files scanned: %d\n", stats.FilesScanned)
	o.Printf("Tasks found: %d\n", stats.TasksFound)
	o.Printf("  Open: %d\n", stats.TasksOpen)
	o.Printf("  Done: %d\n", stats.TasksDone)

	if stats.DuplicateIDs > 0 {
		o.Printf("  Duplicate ids: %d\n", stats.DuplicateIDs)
	}

	if len(stats.Errors) == 0 {
		return
	}

	o.Println()
	o.Println(errHeader.Sprintf("Errors: %d", len(stats.Errors)))

	for _, e := range stats.Errors {
		o.Printf("  - %s\n", e)
	}
}
