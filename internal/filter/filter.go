// Package filter decides which filesystem entries enter the aggregation
// tree.
package filter

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/lc/srcmd/pkg/types"
)

// MarkdownExt is the extension that marks a file for raw embedding instead
// of fenced rendering. It is always on the allow-list.
const MarkdownExt = ".md"

// Filter is a pure predicate over filesystem metadata at call time. It
// holds no cache, so re-evaluation after external mutation is an accepted
// race, not an error.
type Filter struct {
	root           string
	output         string
	extensions     map[string]bool
	ignoreDirs     map[string]bool
	ignoreFiles    map[string]bool
	followSymlinks bool
	patterns       *ignore.GitIgnore
}

// New builds a Filter for a scan rooted at root that must never include the
// document being written at output. Both paths should already be resolved.
func New(root, output string, opts types.FilterOptions) *Filter {
	f := &Filter{
		root:           root,
		output:         output,
		extensions:     make(map[string]bool, len(opts.Extensions)),
		ignoreDirs:     make(map[string]bool, len(opts.IgnoreDirs)),
		ignoreFiles:    make(map[string]bool, len(opts.IgnoreFiles)),
		followSymlinks: opts.FollowSymlinks,
	}
	for _, ext := range opts.Extensions {
		f.extensions[NormalizeExt(ext)] = true
	}
	for _, name := range opts.IgnoreDirs {
		f.ignoreDirs[name] = true
	}
	for _, name := range opts.IgnoreFiles {
		f.ignoreFiles[name] = true
	}
	if len(opts.IgnorePatterns) > 0 {
		f.patterns = ignore.CompileIgnoreLines(opts.IgnorePatterns...)
	}
	return f
}

// NormalizeExt lowercases an extension and ensures the leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// SkipName reports whether an entry name is excluded outright: a member of
// the ignored-directory or ignored-file set, or hidden (leading dot). The
// scan root itself is never name-checked; this applies to entries found
// while listing a directory.
func (f *Filter) SkipName(name string, isDir bool) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if isDir {
		return f.ignoreDirs[name]
	}
	return f.ignoreFiles[name]
}

// Include applies the remaining exclusion rules in order: self-exclusion
// against the output path, symlink policy, existence, the pattern
// predicate, and for files the extension allow-list. It returns the
// entry's resolved file info so the caller knows whether to recurse.
func (f *Filter) Include(path string) (os.FileInfo, bool) {
	if ResolvePath(path) == f.output {
		return nil, false
	}

	fi, err := os.Lstat(path)
	if err != nil {
		return nil, false
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		if !f.followSymlinks {
			return nil, false
		}
		// Broken links contribute nothing.
		fi, err = os.Stat(path)
		if err != nil {
			return nil, false
		}
	}

	isDir := fi.IsDir()
	if f.patterns != nil && path != f.root {
		rel := f.relSlash(path)
		if f.patterns.MatchesPath(rel) || (isDir && f.patterns.MatchesPath(rel+"/")) {
			return nil, false
		}
	}

	if isDir {
		return fi, true
	}
	if !fi.Mode().IsRegular() {
		return nil, false
	}
	ext := strings.ToLower(filepath.Ext(path))
	return fi, ext == MarkdownExt || f.extensions[ext]
}

func (f *Filter) relSlash(path string) string {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// ResolvePath resolves symlinks where possible, falling back to the
// cleaned absolute path for targets that do not exist yet. The driver
// applies the same resolution to the output destination so the
// self-exclusion comparison in Include is like-for-like.
func ResolvePath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		if abs, err := filepath.Abs(resolved); err == nil {
			return abs
		}
		return resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
