// Package main implements the repofind command line tool and MCP server.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "repofind",
		Short: "Bounded file discovery for repository checkouts",
		Long: `repofind walks a repository checkout and reports the files that
match a set of glob patterns. Patterns are validated against a
restrictive character set and matched without regular expressions,
traversal depth is bounded and ignored directories are pruned before
they are read. node_modules is always ignored.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogger(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(
		newFindCmd(),
		newMatchCmd(),
		newSanitizeCmd(),
		newServeCmd(),
	)

	return cmd
}
