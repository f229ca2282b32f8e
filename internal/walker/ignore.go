package walker

import (
	"bufio"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ignorePattern is one compiled line from an ignore file. The modifier
// semantics (negation, directory-only, anchored) mirror the teacher's
// GitignorePattern/PatternType classification, adapted to match with
// doublestar instead of a hand-rolled glob-to-regex compiler.
type ignorePattern struct {
	glob     string
	negate   bool
	dirOnly  bool
	anchored bool
}

// IgnoreSet is a layered collection of ignore files: global (user-wide),
// repository-local (.gitignore at the walked root), and project overrides
// (an extra file supplied on the command line). Later layers' patterns are
// matched after earlier ones, and a later match (positive or negated)
// overrides an earlier one, matching git's own layering and last-match-wins
// semantics.
type IgnoreSet struct {
	layers [][]ignorePattern
}

// NewIgnoreSet builds an IgnoreSet from zero or more ignore-file paths,
// in layering order (global first, then repository-local, then project
// overrides). Missing files are skipped silently; a layer that does not
// exist simply contributes no patterns.
func NewIgnoreSet(paths ...string) *IgnoreSet {
	set := &IgnoreSet{}
	for _, p := range paths {
		set.layers = append(set.layers, loadPatterns(p))
	}
	return set
}

// AddLiteral appends an extra layer built from in-memory lines rather than
// a file on disk; the CLI uses it for its built-in ".git/" exclusion.
func (s *IgnoreSet) AddLiteral(lines []string) {
	var patterns []ignorePattern
	for _, line := range lines {
		if p, ok := parsePattern(line); ok {
			patterns = append(patterns, p)
		}
	}
	s.layers = append(s.layers, patterns)
}

func loadPatterns(path string) []ignorePattern {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []ignorePattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p, ok := parsePattern(scanner.Text()); ok {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func parsePattern(line string) (ignorePattern, bool) {
	line = strings.TrimRight(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") {
		return ignorePattern{}, false
	}

	p := ignorePattern{}
	if strings.HasPrefix(line, "!") {
		p.negate = true
		line = line[1:]
	}
	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if line == "" {
		return ignorePattern{}, false
	}

	// A pattern with no interior slash matches at any depth, same as
	// gitignore; doublestar needs an explicit **/ prefix to get that.
	if !p.anchored && !strings.Contains(line, "/") {
		line = "**/" + line
	}
	p.glob = line
	return p, true
}

// ShouldIgnore reports whether relPath (forward-slash, root-relative)
// should be excluded from the walk. isDir lets directory-only patterns
// (trailing "/") apply only to directory entries.
func (s *IgnoreSet) ShouldIgnore(relPath string, isDir bool) bool {
	ignored := false
	for _, layer := range s.layers {
		for _, p := range layer {
			if p.dirOnly && !isDir {
				continue
			}
			if matchesPattern(p, relPath) {
				ignored = !p.negate
			}
		}
	}
	return ignored
}

func matchesPattern(p ignorePattern, relPath string) bool {
	ok, _ := doublestar.Match(p.glob, relPath)
	return ok
}
