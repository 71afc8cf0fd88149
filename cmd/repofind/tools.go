package main

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	// FindInput contains parameters for discovering files.
	FindInput struct {
		Path     string   `json:"path,omitempty" jsonschema:"Directory to search, relative to the server root (default: root)"`
		Ignore   []string `json:"ignore,omitempty" jsonschema:"Glob or literal patterns to prune. node_modules is always ignored"`
		Filter   []string `json:"filter,omitempty" jsonschema:"Glob or literal patterns selecting files of interest (default: every file not ignored)"`
		MaxDepth *int     `json:"maxDepth,omitempty" jsonschema:"Maximum traversal depth (default: 5, -1 returns nothing)"`
	}

	// FindOutput contains the discovered files.
	FindOutput struct {
		Files         []string `json:"files"`
		AllFilesFound []string `json:"allFilesFound"`
		FilteredOut   int      `json:"filteredOut"`
		URIs          []string `json:"uris,omitempty"`
	}

	// MatchInput contains parameters for matching a path.
	MatchInput struct {
		Candidate string   `json:"candidate" jsonschema:"Path or file name to test"`
		Patterns  []string `json:"patterns" jsonschema:"Glob or literal patterns, sanitized before use"`
	}

	// MatchOutput contains the result of a match.
	MatchOutput struct {
		Matched  bool     `json:"matched"`
		Patterns []string `json:"patterns"`
	}

	// SanitizeInput contains patterns to validate.
	SanitizeInput struct {
		Patterns []string `json:"patterns" jsonschema:"Patterns to validate"`
	}

	// SanitizeOutput splits patterns into accepted and rejected.
	SanitizeOutput struct {
		Accepted []string `json:"accepted"`
		Rejected []string `json:"rejected"`
	}
)

func registerTools(server *mcp.Server, ts *toolServer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find",
		Description: "Recursively list files under a directory of the served root. Ignored entries are pruned, filter patterns select files of interest. Supports *, ? and ** globs; character classes are rejected.",
	}, ts.handleFind)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "match",
		Description: "Check whether a path matches any of a list of glob or literal patterns.",
	}, ts.handleMatch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sanitize",
		Description: "Validate glob patterns. Returns the accepted patterns and the rejected ones.",
	}, ts.handleSanitize)
}
