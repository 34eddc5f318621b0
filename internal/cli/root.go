package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lc/srcmd/internal/aggregator"
	"github.com/lc/srcmd/internal/app"
	"github.com/lc/srcmd/internal/config"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version. This is
// typically called by the main package with values injected via ldflags at
// build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the srcmd CLI and returns an error if the command fails.
func Execute() error {
	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		reportError(err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	var (
		verbose     bool
		interactive bool
		configPath  string
		title       string
		extensions  []string
		ignoreDirs  []string
		ignoreFiles []string
		patterns    []string
		followLinks bool
	)

	root := &cobra.Command{
		Use:   "srcmd <input-dir> [output-file]",
		Short: "srcmd aggregates source and markdown files into one document",
		Long: `srcmd walks a directory tree, selects source and documentation files by
extension and exclusion rules, and renders them into a single navigable
markdown document with a table of contents, per-file headings, anchors and
back-to-top links. The output file defaults to '<input-dir>.md' next to
the scanned directory.`,
		Version:       version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			opts := aggregator.Options{
				Input:          args[0],
				Output:         cfg.Output.Path,
				Title:          cfg.Output.Title,
				Extensions:     cfg.Scan.Extensions,
				IgnoreDirs:     cfg.Scan.IgnoreDirs,
				IgnoreFiles:    cfg.Scan.IgnoreFiles,
				IgnorePatterns: cfg.Scan.IgnorePatterns,
				FollowSymlinks: cfg.Scan.FollowSymlinks,
				Logger:         logger,
			}
			if len(args) == 2 {
				opts.Output = args[1]
			}
			if title != "" {
				opts.Title = title
			}
			if len(extensions) > 0 {
				opts.Extensions = extensions
			}
			opts.IgnoreDirs = append(opts.IgnoreDirs, ignoreDirs...)
			opts.IgnoreFiles = append(opts.IgnoreFiles, ignoreFiles...)
			opts.IgnorePatterns = append(opts.IgnorePatterns, patterns...)
			if cmd.Flags().Changed("follow-symlinks") {
				opts.FollowSymlinks = followLinks
			}
			if interactive {
				opts.Selector = app.NewPicker(cfg)
			}

			p := newProgress(logger)
			result, err := aggregator.Run(opts)
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Aggregated %d files into %s", result.Files, result.OutputPath))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("srcmd %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick files in a terminal UI before writing")
	root.Flags().StringVar(&configPath, "config", "", "path to config file (default: ~/.srcmd/config.yaml)")
	root.Flags().StringVar(&title, "title", "", "document title (default: '<input-dir> Source Archive')")
	root.Flags().StringSliceVar(&extensions, "extensions", nil, "override the source file extension allow-list")
	root.Flags().StringArrayVar(&ignoreDirs, "ignore-dir", nil, "additional directory name to ignore (repeatable)")
	root.Flags().StringArrayVar(&ignoreFiles, "ignore-file", nil, "additional file name to ignore (repeatable)")
	root.Flags().StringArrayVar(&patterns, "ignore", nil, "gitignore-style pattern to exclude (repeatable)")
	root.Flags().BoolVar(&followLinks, "follow-symlinks", false, "follow directory symlinks while walking the tree")

	return root
}

// reportError prints a short, specific message. The two fatal pipeline
// conditions (aggregator.ErrNotDirectory, aggregator.ErrNoMatches) carry
// their own distinct wording; an aborted interactive run is not an error
// worth a stack of context.
func reportError(err error) {
	if errors.Is(err, app.ErrAborted) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
