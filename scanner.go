package animax

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Default discovery patterns, relative to the source directory.
var (
	DefaultPagePatterns  = []string{"**/*.max"}
	DefaultStylePatterns = []string{"**/*.maxt"}
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // files matched by the patterns
	FilesScanned    int // files kept after filtering
	FilesSkipped    int // hidden or git-ignored files
}

func (s *ScanStats) add(o ScanStats) {
	s.FilesDiscovered += o.FilesDiscovered
	s.FilesScanned += o.FilesScanned
	s.FilesSkipped += o.FilesSkipped
}

var (
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads .gitignore of the working directory once. A missing
// file disables the check.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// isHiddenPath reports whether any element of path starts with a dot.
func isHiddenPath(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}

// shouldSkipFile reports whether a file discovered below root is excluded.
// Paths with a hidden element below root are always skipped. .gitignore
// applies to relative paths only, so absolute paths outside the project are
// not affected by it.
func shouldSkipFile(root, path string) bool {
	if isHiddenPath(relativeTo(root, path)) {
		return true
	}
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}
	return false
}

// discoverFiles expands patterns below root. Matches of each pattern are
// sorted; a file matched by several patterns is kept once, at its first
// position.
func discoverFiles(root string, patterns []string) ([]string, ScanStats, error) {
	var (
		files []string
		stats ScanStats
	)
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		fullPattern := pattern
		if root != "" && !filepath.IsAbs(pattern) {
			fullPattern = filepath.Join(root, pattern)
		}

		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(root, match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// relativeTo returns path relative to root when possible.
func relativeTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// findClassColumn locates the 1-based column where className starts within
// line, or 0 when it does not occur.
func findClassColumn(line string, className string) int {
	// Inside a class attribute first
	if attrIdx := strings.Index(line, "class="); attrIdx != -1 {
		if quoteIdx := strings.IndexAny(line[attrIdx:], `"'`); quoteIdx != -1 {
			searchStart := attrIdx + quoteIdx + 1
			classesStr := line[searchStart:]
			if endQuote := strings.IndexAny(classesStr, `"'`); endQuote != -1 {
				classesStr = classesStr[:endQuote]
			}
			if idx := indexToken(classesStr, className); idx != -1 {
				return searchStart + idx + 1
			}
		}
	}

	// Then as a preset marker
	if idx := strings.Index(line, "@"+className); idx != -1 {
		return idx + 2
	}

	if idx := strings.Index(line, className); idx != -1 {
		return idx + 1
	}
	return 0
}

// indexToken finds name as a whole whitespace-separated token of s.
func indexToken(s, name string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], name)
		if idx == -1 {
			return -1
		}
		start := offset + idx
		end := start + len(name)
		if (start == 0 || isSpace(s[start-1])) && (end == len(s) || isSpace(s[end])) {
			return start
		}
		offset = start + 1
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// GetRelativePath returns path relative to the working directory, or path
// itself when that fails.
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}
	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}
	return rel
}
