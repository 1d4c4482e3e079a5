package config

import (
	"os"
	"path/filepath"

	"github.com/daimoniac/vaultscan/internal/gitutils"
)

// DefaultLocalConfigPath is where Save writes when no local config file
// exists yet
const DefaultLocalConfigPath = ".vaultscan.yaml"

// userConfigFilenames lists the recognized config filenames, most
// preferred first. The first existing one wins.
var userConfigFilenames = []string{".vaultscan.yaml", ".vaultscan.yml"}

// FindGlobalConfigPath returns the path of the configuration file in the
// user's home directory, or "" when there is none
func FindGlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, filename := range userConfigFilenames {
		path := filepath.Join(home, filename)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindLocalConfigPath returns the path of the repository-level
// configuration file, or "" when there is none. The search walks upward
// from the working directory to the repository root; when no repository
// is found the working directory alone is searched.
func FindLocalConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findLocalConfigPathFrom(cwd)
}

func findLocalConfigPathFrom(startDir string) string {
	root, err := gitutils.RepositoryRoot(startDir)
	if err != nil {
		// No git executable: treat the start directory as the root
		root = startDir
	}

	dir := startDir
	for {
		for _, filename := range userConfigFilenames {
			path := filepath.Join(dir, filename)
			if fileExists(path) {
				return path
			}
		}
		if filepath.Clean(dir) == filepath.Clean(root) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
