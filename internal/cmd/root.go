// Package cmd implements the hookrun command line.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/hookrun/internal/config"
	"github.com/Iron-Ham/hookrun/internal/errors"
)

// Exit codes returned by the hookrun binary.
const (
	ExitOK          = 0
	ExitHooksFailed = 1
	ExitError       = 2
)

// app holds the state shared by every subcommand of one root command.
type app struct {
	v        *viper.Viper
	settings string
}

// NewRootCmd builds the hookrun command tree. Each call has its own
// settings, so tests can run commands independently.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "hookrun",
		Short: "Dependency-aware pre-commit hook runner",
		Long: `hookrun runs the hooks of a pre-commit style configuration in
dependency order. Hooks may declare depends_on; a hook whose dependency
did not succeed is skipped. With --parallel, hooks in the same dependency
level run concurrently.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.settings, "settings", "", "settings file (default is $HOME/.config/hookrun/config.yaml)")

	root.AddCommand(
		a.newRunCmd(),
		a.newPlanCmd(),
		a.newInstallCmd(),
		a.newUninstallCmd(),
		a.newConfigCmd(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// ExitCode maps an Execute error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errors.ErrHooksFailed):
		return ExitHooksFailed
	default:
		return ExitError
	}
}

func (a *app) initConfig() error {
	config.SetDefaultsOn(a.v)

	if a.settings != "" {
		a.v.SetConfigFile(a.settings)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(config.ConfigDir())
	}

	a.v.SetEnvPrefix("HOOKRUN")
	// e.g., HOOKRUN_RUN_MAX_WORKERS for run.max_workers
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.settings == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("cannot read settings", err).WithPath(a.settings)
	}
	return nil
}

// bind ties command flags to settings keys. Binding happens when the
// command runs because several commands share keys.
func (a *app) bind(flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) load() (*config.Config, error) {
	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return nil, errors.NewConfigError("invalid settings", err).WithPath(a.v.ConfigFileUsed())
	}
	return cfg, nil
}
