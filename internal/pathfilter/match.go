package pathfilter

import "strings"

const doubleStar = "**"

// Matches reports whether candidate satisfies at least one of patterns.
//
// A pattern without wildcards matches when it equals the candidate or its
// base name, or when the candidate ends with a separator followed by the
// pattern.
// A wildcard pattern without a separator only ever sees the candidate's base
// name. One with separators is matched segment by segment against the whole
// candidate: * and ? never cross a separator and ** spans any number of whole
// segments. Patterns longer than
// MaxMatchPatternLength or containing character classes never match.
//
// No regular expression is ever compiled. The cost of a single pattern is
// bounded by its length times the candidate's length, and the ** alignment by
// the product of both segment counts.
func Matches(candidate string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" || len(p) > MaxMatchPatternLength || strings.ContainsAny(p, "[]") {
			continue
		}
		if matchPattern(candidate, p) {
			return true
		}
	}
	return false
}

func matchPattern(candidate, pattern string) bool {
	if !isGlob(pattern) {
		return candidate == pattern ||
			baseName(candidate) == pattern ||
			strings.HasSuffix(candidate, "/"+pattern) ||
			strings.HasSuffix(candidate, `\`+pattern)
	}

	pattern = expandDoubleStar(pattern)
	if !strings.ContainsAny(pattern, `/\`) {
		return matchSegment(pattern, baseName(candidate))
	}
	return matchSegments(splitSegments(pattern), splitSegments(candidate))
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[]")
}

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// baseName returns the last non-empty segment of path, treating both / and \
// as separators.
func baseName(path string) string {
	end := len(path)
	for end > 0 && isSeparator(path[end-1]) {
		end--
	}
	start := end
	for start > 0 && !isSeparator(path[start-1]) {
		start--
	}
	return path[start:end]
}

// splitSegments splits path on / and \ and drops empty segments.
func splitSegments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// expandDoubleStar rewrites every ** that is not followed by . or / as **/,
// so "**requirements/*.txt" behaves like "**/requirements/*.txt" while
// "**.xml" stays a single segment.
func expandDoubleStar(pattern string) string {
	if !strings.Contains(pattern, doubleStar) {
		return pattern
	}

	var b strings.Builder
	b.Grow(len(pattern) + 4)
	for i := 0; i < len(pattern); {
		if strings.HasPrefix(pattern[i:], doubleStar) {
			b.WriteString(doubleStar)
			i += len(doubleStar)
			if i >= len(pattern) || (pattern[i] != '.' && pattern[i] != '/') {
				b.WriteByte('/')
			}
			continue
		}
		b.WriteByte(pattern[i])
		i++
	}
	return b.String()
}

// matchSegments aligns pattern segments with candidate segments. A ** segment
// consumes zero or more candidate segments, and a trailing ** consumes all of
// them. The search runs over an explicit work list and visits each
// (pattern, candidate) cursor pair at most once.
func matchSegments(pattern, candidate []string) bool {
	type state struct{ p, c int }

	width := len(candidate) + 1
	seen := make([]bool, (len(pattern)+1)*width)
	work := []state{{0, 0}}
	seen[0] = true

	push := func(p, c int) {
		if i := p*width + c; !seen[i] {
			seen[i] = true
			work = append(work, state{p, c})
		}
	}

	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]

		if s.p == len(pattern) {
			if s.c == len(candidate) {
				return true
			}
			continue
		}

		if pattern[s.p] == doubleStar {
			if s.p == len(pattern)-1 {
				return true
			}
			for c := len(candidate); c >= s.c; c-- {
				push(s.p+1, c)
			}
			continue
		}

		if s.c < len(candidate) && matchSegment(pattern[s.p], candidate[s.c]) {
			push(s.p+1, s.c+1)
		}
	}
	return false
}

// matchSegment matches a single segment pattern made of literals, * and ?
// against s using the two-pointer wildcard algorithm. ? matches exactly one
// character and * any run of characters. Only the most recent * is kept as a
// backtrack anchor, so the worst case is len(pattern) * len(s) steps.
func matchSegment(pattern, s string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return pattern == s
	}

	pr, sr := []rune(pattern), []rune(s)
	p, i := 0, 0
	star, mark := -1, 0

	for i < len(sr) {
		switch {
		case p < len(pr) && pr[p] != '*' && (pr[p] == '?' || pr[p] == sr[i]):
			p++
			i++
		case p < len(pr) && pr[p] == '*':
			star = p
			mark = i
			p++
		case star >= 0:
			mark++
			i = mark
			p = star + 1
		default:
			return false
		}
	}

	for p < len(pr) && pr[p] == '*' {
		p++
	}
	return p == len(pr)
}
