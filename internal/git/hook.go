package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Iron-Ham/hookrun/internal/errors"
)

// Marker identifies a pre-commit script written by hookrun.
const Marker = "# managed by hookrun"

// HookScript returns the pre-commit script that runs exe.
func HookScript(exe string) string {
	return fmt.Sprintf("#!/usr/bin/env sh\n%s\nexec %q run --parallel\n", Marker, exe)
}

// HookPath returns where the pre-commit hook of root lives.
func HookPath(root string) (string, error) {
	dir, err := gitDir(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hooks", "pre-commit"), nil
}

// InstallHook writes the pre-commit hook for root. An existing hook that
// hookrun did not write is left alone unless force is set.
func InstallHook(root, exe string, force bool) (string, error) {
	path, err := HookPath(root)
	if err != nil {
		return "", err
	}

	if existing, err := os.ReadFile(path); err == nil && !force && !isManaged(existing) {
		return "", errors.NewGitError("refusing to overwrite "+path, errors.ErrForeignHook).WithRepository(root)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.NewGitError("cannot create hooks directory", err).WithRepository(root)
	}
	if err := os.WriteFile(path, []byte(HookScript(exe)), 0755); err != nil {
		return "", errors.NewGitError("cannot write hook", err).WithRepository(root)
	}
	// WriteFile keeps the mode of a file that already existed.
	if err := os.Chmod(path, 0755); err != nil {
		return "", errors.NewGitError("cannot make hook executable", err).WithRepository(root)
	}
	return path, nil
}

// UninstallHook removes the pre-commit hook of root if hookrun wrote it.
func UninstallHook(root string) (string, error) {
	path, err := HookPath(root)
	if err != nil {
		return "", err
	}

	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.NewGitError("nothing to remove at "+path, errors.ErrHookNotInstalled).WithRepository(root)
	}
	if err != nil {
		return "", errors.NewGitError("cannot read hook", err).WithRepository(root)
	}
	if !isManaged(existing) {
		return "", errors.NewGitError("refusing to remove "+path, errors.ErrForeignHook).WithRepository(root)
	}
	if err := os.Remove(path); err != nil {
		return "", errors.NewGitError("cannot remove hook", err).WithRepository(root)
	}
	return path, nil
}

func isManaged(script []byte) bool {
	for _, line := range strings.Split(string(script), "\n") {
		if strings.TrimSpace(line) == Marker {
			return true
		}
	}
	return false
}
