package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/hookrun/internal/git"
	"github.com/Iron-Ham/hookrun/internal/tui/styles"
)

func (a *app) newInstallCmd() *cobra.Command {
	var repo string
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install hookrun as the git pre-commit hook",
		Long: `Write .git/hooks/pre-commit so that every commit runs
"hookrun run --parallel". An existing hook that hookrun did not write is
left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot(repo)
			if err != nil {
				return err
			}
			exe, err := executable()
			if err != nil {
				return err
			}
			path, err := git.InstallHook(root, exe, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Installed pre-commit hook at %s\n", styles.Secondary.Render("✓"), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository to install into (default is the current repository)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite a pre-commit hook not written by hookrun")
	return cmd
}

func (a *app) newUninstallCmd() *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the hookrun pre-commit hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot(repo)
			if err != nil {
				return err
			}
			path, err := git.UninstallHook(root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed pre-commit hook at %s\n", styles.Secondary.Render("✓"), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository to uninstall from (default is the current repository)")
	return cmd
}

func repoRoot(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}
	return git.FindRoot(dir)
}

// executable is replaced in tests.
var executable = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}
