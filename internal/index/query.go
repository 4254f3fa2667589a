package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/calvinalkan/taskscan/internal/backlog"
	"github.com/calvinalkan/taskscan/internal/fs"
)

// QueryOptions filters [Query] results. Zero values mean no filter.
type QueryOptions struct {
	Project  string
	Status   backlog.Status
	Priority backlog.Priority
	Limit    int
	Offset   int
}

// Query returns the tasks stored at path that match opts, in the order the
// scan discovered them.
func Query(ctx context.Context, fsys fs.FS, path string, opts QueryOptions) ([]backlog.Task, error) {
	db, err := openExisting(ctx, fsys, path)
	if err != nil {
		return nil, err
	}

	defer func() { _ = db.Close() }()

	query, args := buildQuery(opts)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var tasks []backlog.Task

	for rows.Next() {
		var (
			t          backlog.Task
			taskID     sql.NullString
			section    sql.NullString
			subsection sql.NullString
			priority   string
			status     string
		)

		err := rows.Scan(&t.UID, &t.Project, &t.File, &t.Line, &taskID, &t.Title,
			&priority, &status, &section, &subsection, &t.Scope.Depth)
		if err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}

		if taskID.Valid {
			id := taskID.String
			t.ID = &id
		}

		t.Priority = backlog.Priority(priority)
		t.Status = backlog.Status(status)
		t.Scope.Section = section.String
		t.Scope.Subsection = subsection.String

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

// buildQuery constructs the SQL query and args for task listing.
func buildQuery(opts QueryOptions) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if opts.Project != "" {
		clauses = append(clauses, "project = ?")
		args = append(args, opts.Project)
	}

	if opts.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(opts.Status))
	}

	if opts.Priority != "" {
		clauses = append(clauses, "priority = ?")
		args = append(args, string(opts.Priority))
	}

	query := `
		SELECT uid, project, file, line, task_id, title, priority, status,
			section, subsection, scope_depth
		FROM tasks`

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY seq"

	switch {
	case opts.Limit > 0:
		query += " LIMIT ?"

		args = append(args, opts.Limit)
	case opts.Offset > 0:
		// SQLite requires LIMIT with OFFSET; -1 means no limit.
		query += " LIMIT -1"
	}

	if opts.Offset > 0 {
		query += " OFFSET ?"

		args = append(args, opts.Offset)
	}

	return query, args
}
