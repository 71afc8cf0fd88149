// Package pathfilter validates untrusted glob patterns and matches paths
// against them without compiling regular expressions.
package pathfilter

import (
	"slices"

	"github.com/taigrr/repofind/internal/types"
)

// AlwaysIgnored is part of every effective ignore set.
const AlwaysIgnored = "node_modules"

// PathFilter decides which directory entries are pruned and which files are
// kept. Its pattern sets are sanitized once at construction and read-only
// afterwards, so a PathFilter is safe for concurrent use.
type PathFilter struct {
	ignoredPatterns  []string
	filteredPatterns []string
}

// New creates a new PathFilter with the given configuration.
func New(config *types.PathFilterConfig) *PathFilter {
	pf := &PathFilter{}

	if config != nil {
		pf.ignoredPatterns = Sanitize(config.IgnoredPatterns)
		pf.filteredPatterns = Sanitize(config.FilteredPatterns)
	}

	if !slices.Contains(pf.ignoredPatterns, AlwaysIgnored) {
		pf.ignoredPatterns = append(pf.ignoredPatterns, AlwaysIgnored)
	}

	return pf
}

// Ignored reports whether an entry matches the ignore set. Directories for
// which this returns true are never descended into. path is expected to be
// relative to the traversal root; patterns without a separator only look at
// its base name.
func (pf *PathFilter) Ignored(path string) bool {
	return Matches(path, pf.ignoredPatterns)
}

// Keep reports whether a file is part of the result. With a filter set the
// file must match it and the ignore set is not consulted. Without one the
// file is kept unless it is ignored.
func (pf *PathFilter) Keep(path string) bool {
	if len(pf.filteredPatterns) > 0 {
		return Matches(path, pf.filteredPatterns)
	}
	return !pf.Ignored(path)
}

// IgnorePatterns returns a copy of the effective ignore set.
func (pf *PathFilter) IgnorePatterns() []string {
	return slices.Clone(pf.ignoredPatterns)
}

// FilterPatterns returns a copy of the sanitized filter set.
func (pf *PathFilter) FilterPatterns() []string {
	return slices.Clone(pf.filteredPatterns)
}
