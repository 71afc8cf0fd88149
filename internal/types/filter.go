package types

type (
	// PathFilterConfig contains the raw ignore and filter pattern lists
	// supplied by a caller. Patterns are sanitized when a filter is built.
	PathFilterConfig struct {
		IgnoredPatterns  []string `json:"ignoredPatterns" yaml:"ignore"`
		FilteredPatterns []string `json:"filteredPatterns" yaml:"filter"`
	}
)
