package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete hookrun configuration
type Config struct {
	Run     RunConfig     `mapstructure:"run" yaml:"run"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// RunConfig controls how hooks are scheduled and executed
type RunConfig struct {
	// HookConfig is the hook definition file, relative to the repository root
	HookConfig string `mapstructure:"hook_config" yaml:"hook_config"`
	// Parallel selects the concurrent strategy instead of the sequential one
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`
	// MaxWorkers bounds concurrent hooks (0 = number of CPUs)
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"`
	// FailFast stops dispatching hooks after the first failure
	FailFast bool `mapstructure:"fail_fast" yaml:"fail_fast"`
	// AllFiles runs hooks against every tracked file instead of staged files
	AllFiles bool `mapstructure:"all_files" yaml:"all_files"`
}

// OutputConfig controls how results are presented
type OutputConfig struct {
	// Format is "human" or "json"
	Format string `mapstructure:"format" yaml:"format"`
	// Live shows a status view while a concurrent run is in progress on a terminal
	Live bool `mapstructure:"live" yaml:"live"`
	// Verbose prints the output of hooks that succeeded too
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled turns on the structured debug log (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where hookrun.log is written. Empty means stderr.
	// Supports ~ for the home directory.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// ResolveDir returns the log directory with ~ expanded. Relative paths are
// resolved against baseDir.
func (l *LoggingConfig) ResolveDir(baseDir string) string {
	if l.Dir == "" {
		return ""
	}

	path := l.Dir
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Run: RunConfig{
			HookConfig: ".pre-commit-config.yaml",
			Parallel:   false,
			MaxWorkers: 0, // NumCPU
			FailFast:   false,
			AllFiles:   false,
		},
		Output: OutputConfig{
			Format:  "human",
			Live:    true,
			Verbose: false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with the global viper instance
func SetDefaults() {
	SetDefaultsOn(viper.GetViper())
}

// SetDefaultsOn registers default values with v
func SetDefaultsOn(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("run.hook_config", defaults.Run.HookConfig)
	v.SetDefault("run.parallel", defaults.Run.Parallel)
	v.SetDefault("run.max_workers", defaults.Run.MaxWorkers)
	v.SetDefault("run.fail_fast", defaults.Run.FailFast)
	v.SetDefault("run.all_files", defaults.Run.AllFiles)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.live", defaults.Output.Live)
	v.SetDefault("output.verbose", defaults.Output.Verbose)

	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load for a specific viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hookrun")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hookrun"
	}
	return filepath.Join(home, ".config", "hookrun")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
