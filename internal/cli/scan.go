package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/taskscan/internal/backlog"
	"github.com/calvinalkan/taskscan/internal/config"
	"github.com/calvinalkan/taskscan/internal/fs"
	"github.com/calvinalkan/taskscan/internal/index"
)

// Output failures. Both exit with [ExitWriteFailed].
var (
	ErrWriteBacklog = errors.New("write backlog")
	ErrWriteIndex   = errors.New("write index")
)

// ScanCmd returns the scan command.
func ScanCmd(cfg *config.Config, logger *log.Logger) *Command {
	return &Command{
		Flags: flag.NewFlagSet("scan", flag.ContinueOnError),
		Usage: "scan",
		Short: "Scan task files and write the backlog (default)",
		Long: `Walk the projects directory, parse every specs/**/tasks.md and
.specify/**/tasks.md checklist, and write all items to the output file.

A scan summary is printed to stdout. Files that cannot be read or decoded
are listed under Errors and skipped. With --index the backlog is also
stored in a SQLite database for "taskscan ls".`,

		GlobalFlags: []string{"projects", "output", "format", "index", "verbose"},
		Exec: func(ctx context.Context, o *IO) error {
			return execScan(ctx, o, cfg, logger, fs.NewReal())
		},
	}
}

func execScan(ctx context.Context, o *IO, cfg *config.Config, logger *log.Logger, fsys fs.FS) error {
	// Resolve the serializer first so a bad format never costs a scan.
	ser, err := backlog.SerializerFor(cfg.Format, cfg.OutputAbs)
	if err != nil {
		return err
	}

	scanner := backlog.NewScanner(backlog.ScannerOptions{
		Root:        cfg.EffectiveCwd,
		ProjectsDir: cfg.ProjectsDirAbs,
		FS:          fsys,
		Logger:      logger,
	})

	b, stats, err := scanner.Scan(ctx)

	switch {
	case errors.Is(err, backlog.ErrNoTaskFiles):
		printSummary(o, stats)
		o.Warn(err.Error())

		return nil
	case err != nil:
		return err
	}

	printSummary(o, stats)

	if err := backlog.Write(fsys, cfg.OutputAbs, b, ser); err != nil {
		logger.Error("cannot write backlog", "output", cfg.OutputAbs, "err", err)

		return fmt.Errorf("%w: %w", ErrWriteBacklog, err)
	}

	logger.Info("wrote backlog", "output", cfg.OutputAbs, "format", ser.Format(), "items", len(b.Items))

	if cfg.IndexAbs == "" {
		return nil
	}

	rows, err := index.Write(ctx, fsys, cfg.IndexAbs, b)
	if err != nil {
		logger.Error("cannot write index", "index", cfg.IndexAbs, "err", err)

		return fmt.Errorf("%w: %w", ErrWriteIndex, err)
	}

	logger.Info("wrote index", "index", cfg.IndexAbs, "rows", rows)

	return nil
}
