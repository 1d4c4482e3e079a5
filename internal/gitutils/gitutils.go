// Package gitutils wraps the git operations the configuration layer needs.
// Like the rest of the tool it shells out to the git binary instead of
// reimplementing repository internals.
package gitutils

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrGitNotFound is returned when no git executable is available on PATH
var ErrGitNotFound = errors.New("git executable not found")

// RepositoryRoot returns the top-level directory of the repository
// containing startDir. If startDir is not inside a repository the
// startDir itself is returned. If git is not installed at all,
// ErrGitNotFound is returned so callers can decide how to degrade.
func RepositoryRoot(startDir string) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", ErrGitNotFound
	}

	cmd := exec.Command("git", "-C", startDir, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		// Not a repository: fall back to the directory we started from
		return startDir, nil
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return startDir, nil
	}
	return root, nil
}
