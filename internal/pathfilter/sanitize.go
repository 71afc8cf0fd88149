package pathfilter

const (
	// MaxPatternLength bounds patterns accepted by Sanitize.
	MaxPatternLength = 256

	// MaxMatchPatternLength bounds patterns considered by Matches. It is
	// looser than MaxPatternLength and guards callers that skip Sanitize.
	MaxMatchPatternLength = 1024
)

// allowed is indexed by byte and reports membership in [A-Za-z0-9_\-./*?].
var allowed = func() [256]bool {
	var t [256]bool
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for _, c := range "_-./*?" {
		t[c] = true
	}
	return t
}()

// Valid reports whether a single pattern would survive Sanitize.
func Valid(pattern string) bool {
	if pattern == "" || len(pattern) > MaxPatternLength {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if !allowed[pattern[i]] {
			return false
		}
	}
	return true
}

// Sanitize returns the patterns that are non-empty, at most MaxPatternLength
// bytes long and made only of letters, digits and the characters _-./*?.
// Rejected patterns are dropped silently. Order and duplicates are preserved
// and the input slice is left untouched.
func Sanitize(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if Valid(p) {
			out = append(out, p)
		}
	}
	return out
}
