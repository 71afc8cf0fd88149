package pathfilter

import (
	"slices"
	"testing"

	"github.com/taigrr/repofind/internal/types"
)

func TestPathFilter_AlwaysIgnoresNodeModules(t *testing.T) {
	tests := []struct {
		name   string
		config *types.PathFilterConfig
	}{
		{"nil config", nil},
		{"empty config", &types.PathFilterConfig{}},
		{"custom ignores", &types.PathFilterConfig{IgnoredPatterns: []string{"vendor", "*.py"}}},
		{"already present", &types.PathFilterConfig{IgnoredPatterns: []string{"node_modules"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := New(tt.config)
			if !filter.Ignored("node_modules") {
				t.Error("Ignored(node_modules) = false, want true")
			}
			if !filter.Ignored("app/node_modules") {
				t.Error("Ignored(app/node_modules) = false, want true")
			}
			n := 0
			for _, p := range filter.IgnorePatterns() {
				if p == AlwaysIgnored {
					n++
				}
			}
			if n != 1 {
				t.Errorf("node_modules appears %d times in ignore set, want 1", n)
			}
		})
	}
}

func TestPathFilter_SanitizesOnConstruction(t *testing.T) {
	filter := New(&types.PathFilterConfig{
		IgnoredPatterns:  []string{"[abc]", "*.py", "bad pattern"},
		FilteredPatterns: []string{"package.json", "a\x00b", "*.{js,ts}"},
	})

	if got, want := filter.IgnorePatterns(), []string{"*.py", "node_modules"}; !slices.Equal(got, want) {
		t.Errorf("IgnorePatterns() = %q, want %q", got, want)
	}
	if got, want := filter.FilterPatterns(), []string{"package.json"}; !slices.Equal(got, want) {
		t.Errorf("FilterPatterns() = %q, want %q", got, want)
	}
}

func TestPathFilter_KeepWithoutFilter(t *testing.T) {
	filter := New(&types.PathFilterConfig{
		IgnoredPatterns: []string{"*.py", "build/**"},
	})

	tests := []struct {
		path string
		want bool
	}{
		{"package.json", true},
		{"src/app.py", false},
		{"app.py", false},
		{"build/out.js", false},
		{"src/build.js", true},
		{"README.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := filter.Keep(tt.path); got != tt.want {
				t.Errorf("Keep(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathFilter_KeepWithFilterIgnoresIgnoreSet(t *testing.T) {
	filter := New(&types.PathFilterConfig{
		IgnoredPatterns:  []string{"package.json"},
		FilteredPatterns: []string{"package.json", "**/requirements/*.txt"},
	})

	tests := []struct {
		path string
		want bool
	}{
		{"package.json", true},
		{"web/package.json", true},
		{"requirements/base.txt", true},
		{"py/requirements/dev.txt", true},
		{"requirements.txt", false},
		{"Gemfile", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := filter.Keep(tt.path); got != tt.want {
				t.Errorf("Keep(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathFilter_DoesNotShareCallerSlices(t *testing.T) {
	ignore := []string{"vendor"}
	filter := New(&types.PathFilterConfig{IgnoredPatterns: ignore})

	ignore[0] = "changed"
	if !filter.Ignored("vendor") {
		t.Error("filter changed after caller mutated its slice")
	}

	got := filter.IgnorePatterns()
	got[0] = "mutated"
	if !filter.Ignored("vendor") {
		t.Error("filter changed after IgnorePatterns result was mutated")
	}
}
