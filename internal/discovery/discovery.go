// Package discovery walks a directory tree and returns the files selected by
// a pair of sanitized ignore and filter pattern sets.
//
// Traversal is bounded by a depth budget. Each directory consumes one unit and
// a negative budget ends the branch. Ignored entries are pruned before they
// are visited, so an ignored subtree never costs any I/O. Siblings are walked
// concurrently and their results are concatenated in listing order.
package discovery

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/taigrr/repofind/internal/filesystem"
	"github.com/taigrr/repofind/internal/pathfilter"
	"github.com/taigrr/repofind/internal/types"
)

// Finder runs discovery requests. The zero value is not usable; use New.
type Finder struct {
	fs       filesystem.FS
	log      logrus.FieldLogger
	sem      *semaphore.Weighted
	boundary string
}

// Option configures a Finder.
type Option func(*Finder)

// WithFS replaces the file system used for stat and listing calls.
func WithFS(fsys filesystem.FS) Option {
	return func(f *Finder) {
		if fsys != nil {
			f.fs = fsys
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(f *Finder) {
		if l != nil {
			f.log = l
		}
	}
}

// WithConcurrency bounds the number of file system calls in flight.
func WithConcurrency(n int) Option {
	return func(f *Finder) {
		if n > 0 {
			f.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithBoundary confines discovery to dir. Entries whose symlinks resolve to a
// location outside dir are skipped, as if they were not there.
func WithBoundary(dir string) Option {
	return func(f *Finder) {
		f.boundary = dir
	}
}

// New creates a Finder backed by the operating system's file system.
func New(opts ...Option) *Finder {
	f := &Finder{
		fs:  filesystem.OS{},
		log: logrus.StandardLogger(),
		sem: semaphore.NewWeighted(int64(runtime.NumCPU() * 2)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find is a shorthand for New(opts...).Find(ctx, params).
func Find(ctx context.Context, params types.FindParams, opts ...Option) (types.FindResult, error) {
	return New(opts...).Find(ctx, params)
}

// Find walks params.Path and returns the files kept by params.Filter and
// params.Ignore. The pattern lists are sanitized once and node_modules is
// always ignored. A missing path yields an empty result. Any other stat or
// listing failure aborts the whole call with a *PathError.
func (f *Finder) Find(ctx context.Context, params types.FindParams) (types.FindResult, error) {
	if isNodeModules(params.Path) || params.MaxDepth < 0 {
		return emptyResult(), nil
	}

	w := &walker{
		Finder: f,
		root:   params.Path,
		filter: pathfilter.New(&types.PathFilterConfig{
			IgnoredPatterns:  params.Ignore,
			FilteredPatterns: params.Filter,
		}),
	}
	if f.boundary != "" {
		boundary, err := w.realPath(ctx, f.boundary)
		if err != nil {
			return types.FindResult{}, err
		}
		w.realBoundary = boundary
	}

	f.log.WithFields(logrus.Fields{
		"path":      params.Path,
		"max_depth": params.MaxDepth,
		"ignore":    len(w.filter.IgnorePatterns()),
		"filter":    len(w.filter.FilterPatterns()),
	}).Debug("starting discovery")

	result, err := w.visit(ctx, params.Path, params.MaxDepth, nil)
	if err != nil {
		return types.FindResult{}, err
	}

	for _, p := range result.FilteredOut() {
		f.log.WithField("path", p).Debug("filtered out")
	}

	if result.Files == nil {
		result.Files = []string{}
	}
	if result.AllFilesFound == nil {
		result.AllFilesFound = []string{}
	}
	return result, nil
}

type walker struct {
	*Finder
	root   string
	filter *pathfilter.PathFilter
	// realBoundary is Finder.boundary with its symlinks resolved.
	realBoundary string
}

// visit handles one path with the given remaining depth. ancestors holds the
// stat results of the directories above path on the current branch.
func (w *walker) visit(ctx context.Context, path string, depth int, ancestors []fs.FileInfo) (types.FindResult, error) {
	if isNodeModules(path) || depth < 0 {
		return types.FindResult{}, nil
	}

	info, err := w.stat(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.FindResult{}, nil
		}
		return types.FindResult{}, err
	}

	if w.realBoundary != "" {
		inside, err := w.withinBoundary(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return types.FindResult{}, nil
			}
			return types.FindResult{}, err
		}
		if !inside {
			w.log.WithField("path", path).Warn("skipping path that resolves outside the boundary")
			return types.FindResult{}, nil
		}
	}

	switch filesystem.KindOf(info) {
	case filesystem.KindDirectory:
		if slices.ContainsFunc(ancestors, func(a fs.FileInfo) bool { return os.SameFile(a, info) }) {
			w.log.WithField("path", path).Warn("skipping directory cycle")
			return types.FindResult{}, nil
		}
		return w.visitDir(ctx, path, depth, append(slices.Clip(ancestors), info))

	case filesystem.KindFile:
		result := types.FindResult{AllFilesFound: []string{path}}
		if w.filter.Keep(w.rel(path)) {
			result.Files = []string{path}
		}
		return result, nil

	default:
		return types.FindResult{}, nil
	}
}

func (w *walker) visitDir(ctx context.Context, path string, depth int, chain []fs.FileInfo) (types.FindResult, error) {
	entries, err := w.readDir(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.FindResult{}, nil
		}
		return types.FindResult{}, err
	}

	results := make([]types.FindResult, len(entries))
	g, gctx := errgroup.WithContext(ctx)

	for i, entry := range entries {
		if w.filter.Ignored(w.rel(entry.Path)) {
			w.log.WithField("path", entry.Path).Trace("pruned")
			continue
		}

		g.Go(func() error {
			ok, err := w.exists(gctx, entry.Path)
			if err != nil {
				return err
			}
			if !ok {
				w.log.WithField("path", entry.Path).Debug("entry vanished before it could be visited, skipping")
				return nil
			}

			r, err := w.visit(gctx, entry.Path, depth-1, chain)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return types.FindResult{}, err
	}

	var merged types.FindResult
	for _, r := range results {
		merged.Files = append(merged.Files, r.Files...)
		merged.AllFilesFound = append(merged.AllFilesFound, r.AllFilesFound...)
	}
	return merged, nil
}

// rel returns path relative to the traversal root with forward slashes. The
// root itself maps to its base name.
func (w *walker) rel(path string) string {
	if path == w.root {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (w *walker) stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer w.sem.Release(1)

	info, err := w.fs.Stat(path)
	if err != nil {
		return nil, &PathError{Op: "stat", Path: path, Err: err}
	}
	return info, nil
}

func (w *walker) readDir(ctx context.Context, path string) ([]filesystem.Entry, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer w.sem.Release(1)

	entries, err := w.fs.ReadDir(path)
	if err != nil {
		return nil, &PathError{Op: "readdir", Path: path, Err: err}
	}
	return entries, nil
}

func (w *walker) exists(ctx context.Context, path string) (bool, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer w.sem.Release(1)

	ok, err := w.fs.Exists(path)
	if err != nil {
		return false, &PathError{Op: "probe", Path: path, Err: err}
	}
	return ok, nil
}

func (w *walker) withinBoundary(ctx context.Context, path string) (bool, error) {
	resolved, err := w.realPath(ctx, path)
	if err != nil {
		return false, err
	}
	return filesystem.Within(w.realBoundary, resolved), nil
}

func (w *walker) realPath(ctx context.Context, path string) (string, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer w.sem.Release(1)

	resolved, err := w.fs.RealPath(path)
	if err != nil {
		return "", &PathError{Op: "resolve", Path: path, Err: err}
	}
	return resolved, nil
}

func isNodeModules(path string) bool {
	return strings.HasSuffix(strings.TrimRight(path, `/\`), pathfilter.AlwaysIgnored)
}

func emptyResult() types.FindResult {
	return types.FindResult{Files: []string{}, AllFilesFound: []string{}}
}
