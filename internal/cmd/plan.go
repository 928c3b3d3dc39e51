package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/hookrun/internal/report"
)

func (a *app) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the execution plan without running hooks",
		Long: `Build and schedule the hook graph and print the resulting levels
and dependency tree. Nothing is executed. Duplicate ids, unknown
dependencies and cycles are reported exactly as run would report them.`,
		Args: cobra.NoArgs,
		RunE: a.runPlan,
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "hook configuration file (default .pre-commit-config.yaml)")
	flags.StringP("format", "f", report.FormatHuman, "output format: human or json")
	flags.StringSlice("hook", nil, "show only these hooks and their dependencies")
	return cmd
}

func (a *app) runPlan(cmd *cobra.Command, args []string) error {
	err := a.bind(cmd.Flags(), map[string]string{
		"run.hook_config": "config",
		"output.format":   "format",
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

	if cfg.Output.Format == report.FormatJSON {
		return report.RenderPlanJSON(cmd.OutOrStdout(), p.plan, p.hooks)
	}
	return report.RenderPlan(cmd.OutOrStdout(), p.plan, p.hooks)
}
