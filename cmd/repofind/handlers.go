package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/taigrr/repofind/internal/discovery"
	"github.com/taigrr/repofind/internal/filesystem"
	"github.com/taigrr/repofind/internal/pathfilter"
	"github.com/taigrr/repofind/internal/types"
	"github.com/taigrr/repofind/internal/uri"
)

type toolServer struct {
	root   *filesystem.Service
	finder *discovery.Finder
	log    logrus.FieldLogger
}

func (ts *toolServer) handleFind(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindOutput, error) {
	path, err := ts.root.ResolvePath(input.Path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
	}

	maxDepth := types.DefaultMaxDepth
	if input.MaxDepth != nil {
		maxDepth = *input.MaxDepth
	}

	result, err := ts.finder.Find(ctx, types.FindParams{
		Path:     path,
		Ignore:   input.Ignore,
		Filter:   input.Filter,
		MaxDepth: maxDepth,
	})
	if err != nil {
		ts.log.WithError(err).WithField("path", input.Path).Error("find failed")
		return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
	}

	out := FindOutput{
		Files:         make([]string, 0, len(result.Files)),
		AllFilesFound: make([]string, 0, len(result.AllFilesFound)),
		FilteredOut:   len(result.FilteredOut()),
		URIs:          make([]string, 0, len(result.Files)),
	}
	for _, f := range result.Files {
		out.Files = append(out.Files, ts.root.Rel(f))
		out.URIs = append(out.URIs, uri.FileURI(f))
	}
	for _, f := range result.AllFilesFound {
		out.AllFilesFound = append(out.AllFilesFound, ts.root.Rel(f))
	}

	return nil, out, nil
}

func (ts *toolServer) handleMatch(ctx context.Context, req *mcp.CallToolRequest, input MatchInput) (*mcp.CallToolResult, MatchOutput, error) {
	candidate := strings.TrimSpace(input.Candidate)
	patterns := pathfilter.Sanitize(input.Patterns)

	return nil, MatchOutput{
		Matched:  pathfilter.Matches(filepath.ToSlash(candidate), patterns),
		Patterns: patterns,
	}, nil
}

func (ts *toolServer) handleSanitize(ctx context.Context, req *mcp.CallToolRequest, input SanitizeInput) (*mcp.CallToolResult, SanitizeOutput, error) {
	out := SanitizeOutput{
		Accepted: []string{},
		Rejected: []string{},
	}
	for _, p := range input.Patterns {
		if pathfilter.Valid(p) {
			out.Accepted = append(out.Accepted, p)
		} else {
			out.Rejected = append(out.Rejected, p)
		}
	}
	return nil, out, nil
}
