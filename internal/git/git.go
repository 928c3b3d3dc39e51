// Package git wraps the git operations hookrun needs: locating the
// repository, listing candidate files and managing the pre-commit hook.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Iron-Ham/hookrun/internal/errors"
)

// CommandExecutor abstracts command execution so tests can substitute
// canned git output.
type CommandExecutor interface {
	// Output runs name in dir and returns its stdout. On failure the error
	// should carry whatever the command wrote to stderr.
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// CLIExecutor runs commands with os/exec.
type CLIExecutor struct{}

// Output runs the command and returns stdout.
func (CLIExecutor) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, &commandError{err: err, stderr: strings.TrimSpace(stderr.String())}
	}
	return out, nil
}

type commandError struct {
	err    error
	stderr string
}

func (e *commandError) Error() string {
	if e.stderr == "" {
		return e.err.Error()
	}
	return e.err.Error() + ": " + e.stderr
}

func (e *commandError) Unwrap() error { return e.err }

// Client runs git queries through an executor.
type Client struct {
	executor CommandExecutor
}

// NewClient returns a Client backed by the git CLI.
func NewClient() *Client {
	return &Client{executor: CLIExecutor{}}
}

// NewClientWithExecutor returns a Client that runs commands through executor.
func NewClientWithExecutor(executor CommandExecutor) *Client {
	return &Client{executor: executor}
}

// StagedFiles lists added, copied and modified paths in the index,
// relative to the repository root.
func (c *Client) StagedFiles(ctx context.Context, dir string) ([]string, error) {
	return c.listFiles(ctx, dir, "diff", "--cached", "--name-only", "--diff-filter=ACM", "-z")
}

// TrackedFiles lists every path known to git, relative to the repository root.
func (c *Client) TrackedFiles(ctx context.Context, dir string) ([]string, error) {
	return c.listFiles(ctx, dir, "ls-files", "-z", "--full-name")
}

func (c *Client) listFiles(ctx context.Context, dir string, args ...string) ([]string, error) {
	out, err := c.executor.Output(ctx, dir, "git", args...)
	if err != nil {
		gitErr := errors.NewGitError("failed to list files", err).
			WithRepository(dir).
			WithCommand(strings.Join(args, " "))
		var cmdErr *commandError
		if errors.As(err, &cmdErr) {
			gitErr = gitErr.WithGitOutput(cmdErr.stderr)
		}
		return nil, gitErr
	}
	return splitNul(out), nil
}

func splitNul(out []byte) []string {
	var files []string
	for _, f := range strings.Split(string(out), "\x00") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}

// StagedFiles lists staged paths using the git CLI.
func StagedFiles(ctx context.Context, dir string) ([]string, error) {
	return NewClient().StagedFiles(ctx, dir)
}

// TrackedFiles lists tracked paths using the git CLI.
func TrackedFiles(ctx context.Context, dir string) ([]string, error) {
	return NewClient().TrackedFiles(ctx, dir)
}

// FindRoot walks up from startDir to the directory containing .git. The
// .git entry may be a directory or, for worktrees and submodules, a file.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.NewGitError("cannot resolve directory", err).WithRepository(startDir)
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.NewGitError("no .git found in any parent directory", errors.ErrNotGitRepository).
				WithRepository(startDir)
		}
		dir = parent
	}
}

// gitDir returns the git directory for root, following a "gitdir:" file.
func gitDir(root string) (string, error) {
	path := filepath.Join(root, ".git")
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.NewGitError("no .git entry", errors.ErrNotGitRepository).WithRepository(root)
	}
	if info.IsDir() {
		return path, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewGitError("cannot read .git file", err).WithRepository(root)
	}
	target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", errors.NewGitError("malformed .git file", errors.ErrNotGitRepository).WithRepository(root)
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	// Linked worktrees share hooks with the main repository.
	if common, err := os.ReadFile(filepath.Join(target, "commondir")); err == nil {
		dir := strings.TrimSpace(string(common))
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(target, dir)
		}
		return dir, nil
	}
	return target, nil
}
