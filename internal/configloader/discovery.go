package configloader

import (
	"os"
	"path/filepath"
)

// configFileNames are the project config file names, probed in order.
// The first match in a directory wins.
var configFileNames = []string{
	"luafmt.toml",
	".luafmt.toml",
	".luafmt.yaml",
	".luafmt.yml",
}

// vcsMarkers identify a repository root. The upward search does not
// climb past the first directory containing one of these.
var vcsMarkers = []string{".git", ".hg", ".svn"}

// FindProjectConfig walks upward from startDir looking for a config
// file. The search stops at the first VCS root it encounters (that
// directory is still probed) or at the filesystem root. Returns the
// empty string when nothing was found.
func FindProjectConfig(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}

		if isVCSRoot(dir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
