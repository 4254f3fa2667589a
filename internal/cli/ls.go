package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/taskscan/internal/backlog"
	"github.com/calvinalkan/taskscan/internal/config"
	"github.com/calvinalkan/taskscan/internal/fs"
	"github.com/calvinalkan/taskscan/internal/index"
)

const defaultLimit = 100

var (
	errNoIndex         = errors.New("no index configured (pass --index or set \"index\" in config)")
	errInvalidStatus   = errors.New("invalid status")
	errInvalidPriority = errors.New("invalid priority")
)

// LsCmd returns the ls command.
func LsCmd(cfg *config.Config) *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	flags.String("status", "", "Filter by status (open|done)")
	flags.String("priority", "", "Filter by priority (P1|P2|P3)")
	flags.String("project", "", "Filter by project (org/repo)")
	flags.Int("limit", defaultLimit, "Maximum tasks to show")
	flags.Int("offset", 0, "Skip first N tasks")

	return &Command{
		Flags: flags,
		Usage: "ls [flags]",
		Short: "List tasks from the index",
		Long:  "List tasks stored by the last \"scan --index\", in scan order.",

		GlobalFlags: []string{"index"},
		Exec: func(ctx context.Context, io *IO) error {
			return execLs(ctx, io, cfg, flags, fs.NewReal())
		},
	}
}

func execLs(ctx context.Context, io *IO, cfg *config.Config, flags *flag.FlagSet, fsys fs.FS) error {
	if cfg.IndexAbs == "" {
		return errNoIndex
	}

	status, _ := flags.GetString("status")
	if flags.Changed("status") && status != string(backlog.StatusOpen) && status != string(backlog.StatusDone) {
		return fmt.Errorf("%w: %q", errInvalidStatus, status)
	}

	priority, _ := flags.GetString("priority")
	priority = strings.ToUpper(priority)

	if flags.Changed("priority") {
		switch backlog.Priority(priority) {
		case backlog.PriorityHigh, backlog.PriorityMedium, backlog.PriorityLow:
		default:
			return fmt.Errorf("%w: %q", errInvalidPriority, priority)
		}
	}

	limit, _ := flags.GetInt("limit")
	if limit < 0 {
		return errors.New("--limit must be non-negative")
	}

	offset, _ := flags.GetInt("offset")
	if offset < 0 {
		return errors.New("--offset must be non-negative")
	}

	project, _ := flags.GetString("project")

	tasks, err := index.Query(ctx, fsys, cfg.IndexAbs, index.QueryOptions{
		Project:  project,
		Status:   backlog.Status(status),
		Priority: backlog.Priority(priority),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	for i := range tasks {
		io.Println(formatTaskLine(&tasks[i]))
	}

	return nil
}

func formatTaskLine(t *backlog.Task) string {
	var builder strings.Builder

	builder.WriteString(t.UID)
	builder.WriteString(" [")
	builder.WriteString(string(t.Status))
	builder.WriteString("] (")
	builder.WriteString(string(t.Priority))
	builder.WriteString(") ")
	builder.WriteString(t.Title)

	return builder.String()
}
