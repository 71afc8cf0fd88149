package main

import (
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/taigrr/repofind/internal/discovery"
	"github.com/taigrr/repofind/internal/filesystem"
)

func newServeCmd() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "serve [root]",
		Short: "Run an MCP server exposing find, match and sanitize over stdio",
		Long: `serve starts a Model Context Protocol server on stdio. Every path
a client passes to the find tool is resolved inside root and may not
escape it, neither with .. nor through a symlink.`,
		Example: `repofind serve ~/checkouts`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, args, concurrency)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum concurrent file system calls (default 2x CPUs)")

	return cmd
}

func runServer(cmd *cobra.Command, args []string, concurrency int) error {
	var rootPath string
	if len(args) > 0 {
		rootPath = args[0]
	} else {
		var err error
		rootPath, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	root, err := filesystem.New(rootPath)
	if err != nil {
		return err
	}

	ts := &toolServer{
		root: root,
		finder: discovery.New(
			discovery.WithLogger(logger),
			discovery.WithConcurrency(concurrency),
			discovery.WithBoundary(root.RootPath()),
		),
		log: logger,
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "repofind",
		Version: version,
	}, nil)

	registerTools(server, ts)

	logger.WithField("root", root.RootPath()).Info("serving MCP on stdio")
	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}
