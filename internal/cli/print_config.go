package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/taskscan/internal/backlog"
	"github.com/calvinalkan/taskscan/internal/config"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",

		GlobalFlags: []string{"cwd", "config"},
		Exec: func(_ context.Context, io *IO) error {
			return execPrintConfig(io, cfg)
		},
	}
}

func execPrintConfig(io *IO, cfg *config.Config) error {
	ser, err := backlog.SerializerFor(cfg.Format, cfg.OutputAbs)
	if err != nil {
		return err
	}

	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("projects_dir=" + cfg.ProjectsDirAbs)
	io.Println("output=" + cfg.OutputAbs)
	io.Println("format=" + ser.Format())

	if cfg.IndexAbs != "" {
		io.Println("index=" + cfg.IndexAbs)
	}

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
