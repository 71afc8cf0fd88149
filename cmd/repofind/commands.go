package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taigrr/repofind/internal/config"
	"github.com/taigrr/repofind/internal/discovery"
	"github.com/taigrr/repofind/internal/pathfilter"
	"github.com/taigrr/repofind/internal/types"
)

var errNoMatch = errors.New("no pattern matched")

type findOptions struct {
	configPath  string
	ignore      []string
	filter      []string
	maxDepth    int
	concurrency int
	jsonOutput  bool
}

func newFindCmd() *cobra.Command {
	opts := &findOptions{}

	cmd := &cobra.Command{
		Use:   "find [path]",
		Short: "List the files under path that pass the ignore and filter patterns",
		Example: `repofind find ./checkout --filter package.json --filter '**/requirements/*.txt'
repofind find . --ignore '*.py' --max-depth 3 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Config file (default "+config.DefaultFile+" if present)")
	f.StringSliceVarP(&opts.ignore, "ignore", "i", nil, "Ignore pattern, repeatable")
	f.StringSliceVarP(&opts.filter, "filter", "f", nil, "Filter pattern, repeatable")
	f.IntVarP(&opts.maxDepth, "max-depth", "d", types.DefaultMaxDepth, "Maximum traversal depth, -1 returns nothing")
	f.IntVar(&opts.concurrency, "concurrency", 0, "Maximum concurrent file system calls (default 2x CPUs)")
	f.BoolVar(&opts.jsonOutput, "json", false, "Print the full result as JSON")

	return cmd
}

func runFind(cmd *cobra.Command, args []string, opts *findOptions) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		if err := configureLogger(cfg.LogLevel); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("ignore") {
		cfg.Ignore = append(cfg.Ignore, opts.ignore...)
	}
	if flags.Changed("filter") {
		cfg.Filter = append(cfg.Filter, opts.filter...)
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = opts.concurrency
	}

	if cfg.Dropped > 0 {
		logger.WithField("count", cfg.Dropped).Warn("config contained invalid patterns, they were dropped")
	}
	if dropped := len(opts.ignore) + len(opts.filter) - len(pathfilter.Sanitize(opts.ignore)) - len(pathfilter.Sanitize(opts.filter)); dropped > 0 {
		logger.WithField("count", dropped).Warn("invalid patterns given on the command line were dropped")
	}

	result, err := discovery.Find(cmd.Context(), cfg.Params(path),
		discovery.WithLogger(logger),
		discovery.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), result, opts.jsonOutput)
}

func writeResult(w io.Writer, result types.FindResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	for _, f := range result.Files {
		if _, err := fmt.Fprintln(w, f); err != nil {
			return err
		}
	}
	return nil
}

func newMatchCmd() *cobra.Command {
	var sanitize bool

	cmd := &cobra.Command{
		Use:   "match <candidate> <pattern>...",
		Short: "Check whether a path matches any of the given patterns",
		Example: `repofind match src/app/package.json package.json
repofind match a/b/c.txt 'a/**'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args[1:]
			if sanitize {
				patterns = pathfilter.Sanitize(patterns)
			}
			if !pathfilter.Matches(args[0], patterns) {
				return errNoMatch
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "match")
			return err
		},
	}

	cmd.Flags().BoolVar(&sanitize, "sanitize", true, "Sanitize patterns before matching")

	return cmd
}

func newSanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sanitize <pattern>...",
		Short:   "Print the patterns that pass validation",
		Example: `repofind sanitize '*.txt' '[a-z].go' '**/pom.xml'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accepted := pathfilter.Sanitize(args)
			for _, p := range accepted {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}
			if rejected := len(args) - len(accepted); rejected > 0 {
				logger.WithField("count", rejected).Info("patterns rejected")
			}
			return nil
		},
	}
}
