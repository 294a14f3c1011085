package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// discoverer walks the run's roots and emits surviving entries.
// Traversal errors are reported through fail and never abort the walk.
type discoverer struct {
	opts      Options
	overrides []glob.Glob
	explicit  map[string]struct{}
	emit      func(Entry)
	fail      func(error)
}

// run visits every root in order. Explicitly named files bypass all
// filtering; directories are expanded recursively with ignore-file and
// extension/override filtering applied to what the expansion finds.
func (d *discoverer) run() {
	for _, root := range d.opts.Roots {
		if root == StdinMarker {
			d.emit(Entry{Stdin: true})
			continue
		}

		info, err := os.Stat(root)
		if err != nil {
			d.fail(fmt.Errorf("could not walk %s: %w", root, err))
			continue
		}

		if info.IsDir() {
			d.walkDir(root, nil)
			continue
		}

		// An explicit request is never silently dropped.
		d.emit(Entry{Path: root})
	}
}

func (d *discoverer) walkDir(dir string, stack ignoreStack) {
	ignore, err := loadIgnoreFile(dir)
	if err != nil {
		d.fail(err)
	} else if ignore != nil {
		stack = append(stack, ignore)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		d.fail(fmt.Errorf("could not walk %s: %w", dir, err))
		return
	}

	for _, dirEntry := range dirEntries {
		path := filepath.Join(dir, dirEntry.Name())
		isDir := dirEntry.IsDir()

		if stack.Ignored(path, isDir) {
			continue
		}

		if isDir {
			d.walkDir(path, stack)
			continue
		}

		if dirEntry.Type()&fs.ModeSymlink != 0 {
			// Follow file symlinks; skip broken links and directory
			// symlinks to avoid walk cycles.
			target, statErr := os.Stat(path)
			if statErr != nil || !target.Mode().IsRegular() {
				continue
			}
		} else if !dirEntry.Type().IsRegular() {
			continue
		}

		if d.include(path) {
			d.emit(Entry{Path: path})
		}
	}
}

// include applies the filter decision table to a recursively expanded
// file: explicitly-named paths are always included; with override
// globs present the overrides alone decide; otherwise the default
// extension list decides.
func (d *discoverer) include(path string) bool {
	if _, ok := d.explicit[filepath.Clean(path)]; ok {
		return true
	}
	if len(d.overrides) > 0 {
		return d.matchOverride(path)
	}
	return hasDefaultExtension(path)
}

func (d *discoverer) matchOverride(path string) bool {
	rel, err := filepath.Rel(d.opts.workingDir(), path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, matcher := range d.overrides {
		if matcher.Match(rel) || matcher.Match(base) {
			return true
		}
	}
	return false
}

func hasDefaultExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range defaultExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
