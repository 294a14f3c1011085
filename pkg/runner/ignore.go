package runner

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ignoreRule is one compiled pattern from an ignore file.
type ignoreRule struct {
	matcher glob.Glob
	negate  bool
	dirOnly bool
	// baseOnly patterns (no slash) match the entry name at any depth;
	// anchored patterns match the path relative to the ignore file.
	baseOnly bool
}

// ignoreFile holds the rules of one per-directory ignore file, scoped
// to the directory that contains it.
type ignoreFile struct {
	dir   string
	rules []ignoreRule
}

// ignoreStack is the chain of ignore files on the current descent
// path, shallowest first.
type ignoreStack []*ignoreFile

// loadIgnoreFile reads and compiles dir's ignore file, returning nil
// when the directory has none.
func loadIgnoreFile(dir string) (*ignoreFile, error) {
	path := filepath.Join(dir, IgnoreFileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ignore := &ignoreFile{dir: dir}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rule := ignoreRule{}
		if strings.HasPrefix(line, "!") {
			rule.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			rule.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		// A leading slash anchors the pattern to this directory even
		// when the remainder has no slash of its own.
		anchored := strings.HasPrefix(line, "/")
		line = strings.TrimPrefix(line, "/")
		rule.baseOnly = !anchored && !strings.Contains(line, "/")

		matcher, err := glob.Compile(line, '/')
		if err != nil {
			return nil, fmt.Errorf("%s:%d: cannot parse pattern %q: %w", path, lineNo, line, err)
		}
		rule.matcher = matcher

		ignore.rules = append(ignore.rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(ignore.rules) == 0 {
		return nil, nil
	}
	return ignore, nil
}

// match reports whether path is ignored by this file's rules. The last
// matching rule wins, so a later negation can re-include a path.
func (f *ignoreFile) match(path string, isDir bool) (ignored, matched bool) {
	rel, err := filepath.Rel(f.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false, false
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, rule := range f.rules {
		if rule.dirOnly && !isDir {
			continue
		}
		target := rel
		if rule.baseOnly {
			target = base
		}
		if rule.matcher.Match(target) {
			ignored = !rule.negate
			matched = true
		}
	}
	return ignored, matched
}

// Ignored reports whether path is suppressed by any ignore file on the
// stack. Deeper ignore files take precedence over shallower ones.
func (s ignoreStack) Ignored(path string, isDir bool) bool {
	for i := len(s) - 1; i >= 0; i-- {
		if ignored, matched := s[i].match(path, isDir); matched {
			return ignored
		}
	}
	return false
}
