// Package runner executes hooks as local processes.
//
// A Runner is bound to one repository root, one set of hooks and one list of
// candidate files. Its Run method has the shape the executor expects, so it
// can be handed to any strategy directly.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/mattn/go-shellwords"

	"github.com/Iron-Ham/hookrun/internal/errors"
	"github.com/Iron-Ham/hookrun/internal/hook"
	"github.com/Iron-Ham/hookrun/internal/logging"
	"github.com/Iron-Ham/hookrun/internal/report"
)

// forcedEnv keeps tool output colored even though stdout is a pipe.
var forcedEnv = []string{"FORCE_COLOR=1", "CLICOLOR_FORCE=1"}

// killGrace bounds how long a canceled hook may take to exit after its
// process is signaled.
const killGrace = 2 * time.Second

// Runner runs hooks for one invocation.
type Runner struct {
	root    string
	hooks   map[string]hook.Hook
	filters map[string]*Filter
	files   []string
	baseEnv []string
	logger  *logging.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithBaseEnv replaces the inherited process environment.
func WithBaseEnv(env []string) Option {
	return func(r *Runner) { r.baseEnv = env }
}

// WithLogger sets the logger for the runner.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// New creates a Runner. files are paths relative to root. Every hook's file
// filter is compiled up front so a bad pattern is reported before anything
// runs.
func New(root string, hooks []hook.Hook, files []string, opts ...Option) (*Runner, error) {
	r := &Runner{
		root:    root,
		hooks:   hook.Index(hooks),
		filters: make(map[string]*Filter, len(hooks)),
		files:   files,
		baseEnv: os.Environ(),
		logger:  logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for id, h := range r.hooks {
		f, err := NewFilter(h)
		if err != nil {
			return nil, errors.NewHookError("invalid file filter", err).WithHookID(id)
		}
		r.filters[id] = f
	}
	return r, nil
}

// Files returns the candidate files that pass the filter of hook id.
func (r *Runner) Files(id string) []string {
	f, ok := r.filters[id]
	if !ok {
		return nil
	}
	return f.Apply(r.files)
}

// Command returns the argv for hook id: the split entry, then args, then
// the filtered files when the hook asks for them. File paths are made
// relative to the hook's working directory.
func (r *Runner) Command(id string) ([]string, error) {
	h, ok := r.hooks[id]
	if !ok {
		return nil, fmt.Errorf("%w: no hook with id %q", errors.ErrInvalidInput, id)
	}
	argv, err := shellwords.Parse(h.Entry)
	if err != nil {
		return nil, fmt.Errorf("cannot parse entry %q: %w", h.Entry, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("entry is empty")
	}
	argv = append(argv, h.Args...)

	if h.PassFilenames {
		dir := r.workDir(h)
		for _, f := range r.Files(id) {
			argv = append(argv, r.relativeTo(dir, f))
		}
	}
	return argv, nil
}

func (r *Runner) workDir(h hook.Hook) string {
	switch {
	case h.WorkingDir == "":
		return r.root
	case filepath.IsAbs(h.WorkingDir):
		return h.WorkingDir
	default:
		return filepath.Join(r.root, h.WorkingDir)
	}
}

func (r *Runner) relativeTo(dir, file string) string {
	if dir == r.root {
		return file
	}
	rel, err := filepath.Rel(dir, filepath.Join(r.root, file))
	if err != nil {
		return filepath.Join(r.root, file)
	}
	return rel
}

// Env returns the environment for hook id.
func (r *Runner) Env(id string) []string {
	h := r.hooks[id]
	env := make([]string, 0, len(r.baseEnv)+len(h.Env)+len(forcedEnv))
	env = append(env, r.baseEnv...)
	env = append(env, h.EnvList()...)
	env = append(env, forcedEnv...)
	return env
}

// Run executes hook id and returns its outcome. A command that cannot be
// started is a failure without an exit code. If ctx is canceled the process
// is killed.
func (r *Runner) Run(ctx context.Context, id string) report.Outcome {
	start := time.Now()
	log := r.logger.WithHook(id)

	argv, err := r.Command(id)
	if err != nil {
		herr := errors.NewHookError("cannot launch command", err).WithHookID(id)
		logFailure(log, herr)
		o := report.Failed(id, herr)
		o.Duration = time.Since(start)
		return o
	}

	h := r.hooks[id]
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.workDir(h)
	cmd.Env = r.Env(id)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = killGrace

	log.Debug("starting hook process", "argv", argv, "dir", cmd.Dir)
	err = cmd.Run()
	elapsed := time.Since(start)

	o := report.Outcome{
		ID:       id,
		Duration: elapsed,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		o.Kind = report.KindSucceeded
		o = o.WithExitCode(0)
	case errors.As(err, &exitErr) && exitErr.ExitCode() >= 0:
		code := exitErr.ExitCode()
		// A nonzero exit is the hook doing its job.
		herr := errors.NewHookError("command failed", nil).WithHookID(id).WithExitCode(code).
			WithSeverity(errors.SeverityWarning)
		logFailure(log, herr)
		o.Kind = report.KindFailed
		o = o.WithExitCode(code)
		o.Error = herr.Error()
	default:
		msg := "cannot launch command"
		if exitErr != nil {
			msg = "command terminated by signal"
		}
		severity := errors.SeverityError
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %v", errors.ErrCanceled, err)
			severity = errors.SeverityWarning
		}
		herr := errors.NewHookError(msg, err).WithHookID(id).WithSeverity(severity)
		logFailure(log, herr)
		o.Kind = report.KindFailed
		o.Error = herr.Error()
	}

	log.Debug("hook process exited", "outcome", o.Kind, "duration_ms", elapsed.Milliseconds())
	return o
}

// logFailure records a hook failure at the level matching its severity.
func logFailure(log *logging.Logger, err error) {
	severity := errors.GetSeverity(err)
	args := []any{"error", err.Error(), "severity", severity.String()}
	switch severity {
	case errors.SeverityDebug:
		log.Debug("hook failed", args...)
	case errors.SeverityInfo:
		log.Info("hook failed", args...)
	case errors.SeverityWarning:
		log.Warn("hook failed", args...)
	default:
		log.Error("hook failed", args...)
	}
}
