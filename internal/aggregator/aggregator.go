// Package aggregator drives one aggregation run: resolve paths, build the
// pruned tree, assign headings, render, write.
package aggregator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lc/srcmd/internal/anchor"
	"github.com/lc/srcmd/internal/config"
	"github.com/lc/srcmd/internal/filter"
	"github.com/lc/srcmd/internal/tree"
	"github.com/lc/srcmd/internal/writer"
	"github.com/lc/srcmd/pkg/types"
)

// ErrNotDirectory reports that the input path is not a directory. This is
// a usage mistake, surfaced before any traversal.
var ErrNotDirectory = errors.New("input path is not a directory")

// ErrNoMatches reports that the run completed but filtering left zero
// nodes. Distinct from ErrNotDirectory: the tool ran correctly and matched
// nothing.
var ErrNoMatches = errors.New("no matching files found")

// Options configures one aggregation run.
type Options struct {
	// Input is the directory to scan. Required.
	Input string
	// Output is the destination markdown file. Defaults to a sibling of
	// the input directory named "<input>.md".
	Output string
	// Title is the document title. Defaults to "<input base> Source
	// Archive".
	Title string

	// Extensions overrides the default source-extension allow-list when
	// non-empty.
	Extensions []string
	// IgnoreDirs and IgnoreFiles extend the default ignored-name sets.
	IgnoreDirs  []string
	IgnoreFiles []string
	// IgnorePatterns are gitignore-style exclusion patterns.
	IgnorePatterns []string
	// FollowSymlinks enables descending through symlinked entries.
	FollowSymlinks bool

	// Selector, when set, runs between tree construction and heading
	// assignment so an interactive surface can drop files. The tree is
	// re-pruned afterwards with the same bottom-up rule.
	Selector types.Selector

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

// Result describes a completed run.
type Result struct {
	// OutputPath is the resolved destination the document was written to.
	OutputPath string
	// Files is the number of file sections in the document.
	Files int
}

// Run performs one aggregation. Fatal errors are ErrNotDirectory,
// ErrNoMatches, and filesystem errors the walk does not absorb;
// unreadable subtrees are silently excluded.
func Run(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	input, err := filepath.Abs(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("resolving input path: %w", err)
	}
	input = filter.ResolvePath(input)

	info, err := os.Stat(input)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, opts.Input)
	}

	output := opts.Output
	if output == "" {
		output = filepath.Join(filepath.Dir(input), filepath.Base(input)+".md")
	}
	if output, err = filepath.Abs(output); err != nil {
		return nil, fmt.Errorf("resolving output path: %w", err)
	}
	output = filter.ResolvePath(output)

	title := opts.Title
	if title == "" {
		title = filepath.Base(input) + " Source Archive"
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = config.DefaultExtensions
	}

	f := filter.New(input, output, types.FilterOptions{
		Extensions:     extensions,
		IgnoreDirs:     append(append([]string(nil), config.DefaultIgnoreDirs...), opts.IgnoreDirs...),
		IgnoreFiles:    append(append([]string(nil), config.DefaultIgnoreFiles...), opts.IgnoreFiles...),
		IgnorePatterns: opts.IgnorePatterns,
		FollowSymlinks: opts.FollowSymlinks,
	})

	logger.Debug("building tree", "input", input, "output", output)
	root := tree.NewBuilder(f).Build(input)
	if root == nil {
		return nil, fmt.Errorf("%w under %s", ErrNoMatches, input)
	}

	if opts.Selector != nil {
		keep, err := opts.Selector.Select(tree.Files(root))
		if err != nil {
			return nil, err
		}
		root = tree.Prune(root, func(n *types.Node) bool { return keep[n.Path] })
		if root == nil {
			return nil, fmt.Errorf("%w under %s", ErrNoMatches, input)
		}
	}

	tree.AssignHeadings(root, anchor.NewRegistry())

	lines, err := writer.Render(root, title)
	if err != nil {
		return nil, err
	}
	if err := writer.Write(output, lines); err != nil {
		return nil, err
	}

	files := len(tree.Files(root))
	logger.Debug("document written", "path", output, "files", files)
	return &Result{OutputPath: output, Files: files}, nil
}
