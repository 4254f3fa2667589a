package backlog

import "errors"

// Error variables for scan and output operations.
var (
	ErrProjectsRootMissing = errors.New("projects directory not found")
	ErrNoTaskFiles         = errors.New("no task files found in projects directory")
	ErrUnknownFormat       = errors.New("unknown output format")
	ErrOutputPathEmpty     = errors.New("output path is empty")
)
