// Package types defines the data structures shared across repofind.
package types

// DefaultMaxDepth is the recursion budget used when a caller does not set one.
const DefaultMaxDepth = 5

type (
	// FindParams describes a single discovery request.
	FindParams struct {
		Path     string   `json:"path"`
		Ignore   []string `json:"ignore,omitempty"`
		Filter   []string `json:"filter,omitempty"`
		MaxDepth int      `json:"maxDepth"`
	}

	// FindResult contains the outcome of a discovery request.
	// Files holds the kept paths. AllFilesFound holds every file reached
	// during traversal, kept or not.
	FindResult struct {
		Files         []string `json:"files"`
		AllFilesFound []string `json:"allFilesFound"`
	}
)

// FilteredOut returns the paths present in AllFilesFound but absent from Files,
// in AllFilesFound order.
func (r FindResult) FilteredOut() []string {
	kept := make(map[string]struct{}, len(r.Files))
	for _, f := range r.Files {
		kept[f] = struct{}{}
	}
	var out []string
	for _, f := range r.AllFilesFound {
		if _, ok := kept[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}
