package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/debrix-lang/debrix-go"
)

// projectConfig holds parsed project command configuration
type projectConfig struct {
	configPath string
	target     string
	watch      bool
}

func (c *cli) newProjectCommand() *cobra.Command {
	cfg := &projectConfig{}

	cmd := &cobra.Command{
		Use:   CmdNameProject,
		Short: "Compile every template of a project",
		Long: `Reads a debrix.yaml project file and compiles every included template
under src into out, with source maps when enabled. A missing config file
means the defaults: the current directory compiled into dist.

With --watch the project is rebuilt incrementally as templates change.`,
		Example: `  debrix project
  debrix project --config web/debrix.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProject(cmd.Context(), cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.configPath, FlagConfig, FlagConfigShort, debrix.DefaultConfigFile, "Project config file")
	cmd.Flags().StringVarP(&cfg.target, FlagTarget, FlagTargetShort, "", "Override the configured target")
	cmd.Flags().BoolVarP(&cfg.watch, FlagWatch, FlagWatchShort, false, "Rebuild when templates change")

	return cmd
}

func (c *cli) runProject(ctx context.Context, cmd *cobra.Command, cfg *projectConfig) error {
	config, err := c.loadProjectConfig(cmd, cfg.configPath)
	if err != nil {
		return err
	}
	if cfg.target != "" {
		target, err := c.parseTarget(cfg.target)
		if err != nil {
			return err
		}
		config.Target = target
	}

	project, err := debrix.NewProject(config, debrix.WithLogger(c.logger))
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgOpenProjectFailed, err)
		return exitWith(ExitCodeError, err)
	}
	defer project.Close()

	out := newPrinter(c.stdout)
	errOut := newPrinter(c.stderr)

	report, err := project.BuildAll(ctx)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgProjectBuildFailed, err)
		return exitWith(ExitCodeError, err)
	}
	c.printReport(out, errOut, project, report)

	if cfg.watch {
		return c.watchProject(ctx, out, errOut, project)
	}
	if report.HasErrors() {
		return exitWith(ExitCodeCompileError, nil)
	}
	return nil
}

// loadProjectConfig reads the config file. The default file may be
// missing; an explicitly named one may not.
func (c *cli) loadProjectConfig(cmd *cobra.Command, path string) (*debrix.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && !cmd.Flags().Changed(FlagConfig) {
		return debrix.DefaultConfig(), nil
	}

	config, err := debrix.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
		return nil, exitWith(ExitCodeInputError, err)
	}
	return config, nil
}

func (c *cli) printReport(out, errOut *printer, project *debrix.Project, report *debrix.BuildReport) {
	for _, file := range report.Files {
		if file.OK() {
			out.fileOK(fmt.Sprintf(DiagBuiltFileFmt, file.Path, c.relativeOutput(project, file.Output)))
			continue
		}
		errOut.fileFailed(file.Path)
		source, _ := os.ReadFile(filepath.Join(project.Config().SourceDir(), filepath.FromSlash(file.Path)))
		errOut.diagnostic(newDiagnostic(file.Path, string(source), file.Err))
	}

	failed := len(report.Failed())
	out.summary(fmt.Sprintf(DiagProjectFmt,
		len(report.Files)-failed, failed, report.Duration.Round(time.Millisecond)), failed > 0)
}

// relativeOutput shortens output paths for display
func (c *cli) relativeOutput(project *debrix.Project, path string) string {
	if rel, err := filepath.Rel(project.Config().BaseDir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// watchProject rebuilds on change until interrupted
func (c *cli) watchProject(ctx context.Context, out, errOut *printer, project *debrix.Project) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out.note(fmt.Sprintf(DiagWatchFmt, project.Config().SourceDir()))

	watcher := debrix.NewWatcher(project, func(e debrix.WatchEvent) {
		for _, removed := range e.Removed {
			out.note(fmt.Sprintf(DiagRemovedFmt, removed))
		}
		if e.Err != nil {
			fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgProjectBuildFailed, e.Err)
		}
		if e.Report != nil {
			c.printReport(out, errOut, project, e.Report)
		}
	})

	if err := watcher.Run(ctx); err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgProjectBuildFailed, err)
		return exitWith(ExitCodeError, err)
	}
	return nil
}
