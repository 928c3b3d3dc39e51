package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/hookrun/internal/config"
	"github.com/Iron-Ham/hookrun/internal/errors"
	"github.com/Iron-Ham/hookrun/internal/event"
	"github.com/Iron-Ham/hookrun/internal/executor"
	"github.com/Iron-Ham/hookrun/internal/report"
	"github.com/Iron-Ham/hookrun/internal/runner"
	"github.com/Iron-Ham/hookrun/internal/tui"
)

func (a *app) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Run hooks in dependency order",
		Long: `Run every configured hook in dependency order.

Hooks receive the staged files by default, every tracked file with
--all-files, or the files given as arguments. A hook whose dependency
failed or was skipped is itself skipped.

Exit status is 0 when every hook succeeded, 1 when any hook failed or was
skipped, and 2 for configuration or dependency graph errors.`,
		RunE: a.runRun,
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "hook configuration file (default .pre-commit-config.yaml)")
	flags.BoolP("parallel", "p", false, "run hooks of the same level concurrently")
	flags.IntP("jobs", "j", 0, "maximum concurrent hooks (default is the number of CPUs)")
	flags.StringP("format", "f", report.FormatHuman, "output format: human or json")
	flags.Bool("all-files", false, "run against all tracked files instead of staged files")
	flags.Bool("fail-fast", false, "stop starting hooks after the first failure")
	flags.BoolP("verbose", "v", false, "show output of successful hooks too")
	flags.Bool("live", true, "show a live status view for concurrent runs on a terminal")
	flags.StringSlice("hook", nil, "run only these hooks and their dependencies")
	return cmd
}

func (a *app) runRun(cmd *cobra.Command, args []string) error {
	err := a.bind(cmd.Flags(), map[string]string{
		"run.hook_config": "config",
		"run.parallel":    "parallel",
		"run.max_workers": "jobs",
		"run.all_files":   "all-files",
		"run.fail_fast":   "fail-fast",
		"output.format":   "format",
		"output.verbose":  "verbose",
		"output.live":     "live",
	})
	if err != nil {
		return err
	}
	cfg, err := a.load()
	if err != nil {
		return err
	}
	only, _ := cmd.Flags().GetStringSlice("hook")

	p, err := loadProject(cfg, only)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, p.root)
	if err != nil {
		return errors.Wrap(err, "cannot open log")
	}
	defer func() { _ = log.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	files, err := p.candidateFiles(ctx, args, cfg.Run.AllFiles)
	if err != nil {
		return errors.Wrap(err, "cannot determine files to check")
	}
	log.Info("run configured",
		"hooks", p.plan.Len(),
		"levels", len(p.plan.Levels),
		"files", len(files),
		"parallel", cfg.Run.Parallel,
	)

	r, err := runner.New(p.root, p.hooks, files, runner.WithLogger(log))
	if err != nil {
		return err
	}

	bus := event.NewBus()
	bus.OnPanic(func(eventType string, recovered any) {
		log.Error("event handler panicked", "event_type", eventType, "panic", fmt.Sprint(recovered))
	})
	strategy, err := executor.New(executor.KindFor(cfg.Run.Parallel),
		executor.WithMaxWorkers(cfg.Run.MaxWorkers),
		executor.WithFailFast(cfg.Run.FailFast),
		executor.WithBus(bus),
		executor.WithLogger(log),
	)
	if err != nil {
		return err
	}

	var live *tui.Live
	if useLive(cmd, cfg) {
		opts := []tui.Option{tui.WithOutput(cmd.OutOrStdout()), tui.WithInterrupt(cancel)}
		if !isTerminal(cmd.InOrStdin()) {
			// git runs pre-commit hooks with stdin detached.
			opts = append(opts, tui.WithoutInput())
		}
		live = tui.NewLive(bus, p.plan.Order(), opts...)
		live.Start()
		defer live.Stop()
	}

	rep := strategy.Run(ctx, p.plan, r.Run)

	if live != nil {
		if err := live.Wait(); err != nil {
			log.Warn("live view exited with error", "error", err.Error())
		}
	}

	if err := report.Render(cmd.OutOrStdout(), cfg.Output.Format, rep, cfg.Output.Verbose); err != nil {
		return err
	}
	if !rep.Success {
		return fmt.Errorf("%w: %d failed, %d skipped", errors.ErrHooksFailed, rep.Summary.Failed, rep.Summary.Skipped)
	}
	return nil
}

// useLive reports whether the live view should run: a concurrent run with
// human output going to a terminal.
func useLive(cmd *cobra.Command, cfg *config.Config) bool {
	if !cfg.Run.Parallel || !cfg.Output.Live || cfg.Output.Format != report.FormatHuman {
		return false
	}
	return isTerminal(cmd.OutOrStdout())
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
