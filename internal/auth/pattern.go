package auth

import (
	"fmt"
	"path"
	"strings"
)

const anySegments = "**"

// pathPattern is a compiled Ant-style pattern. "*" matches exactly one
// segment and "**" matches zero or more. Other path.Match syntax is
// allowed inside a single segment.
type pathPattern struct {
	raw      string
	segments []string
}

func compilePattern(raw string) (pathPattern, error) {
	if raw == "" || !strings.HasPrefix(raw, "/") {
		return pathPattern{}, fmt.Errorf("pattern %q must start with /", raw)
	}

	var segments []string
	for _, seg := range splitPath(raw) {
		if seg == anySegments {
			// "/**/**" means the same as "/**".
			if n := len(segments); n == 0 || segments[n-1] != anySegments {
				segments = append(segments, seg)
			}
			continue
		}
		segments = append(segments, seg)
		if strings.Contains(seg, anySegments) {
			return pathPattern{}, fmt.Errorf("pattern %q: %q must be a whole segment", raw, anySegments)
		}
		if _, err := path.Match(seg, ""); err != nil {
			return pathPattern{}, fmt.Errorf("pattern %q: %w", raw, err)
		}
	}

	return pathPattern{raw: raw, segments: segments}, nil
}

func (p pathPattern) match(urlPath string) bool {
	return matchSegments(p.segments, splitPath(urlPath))
}

// splitPath drops the leading slash and any trailing slash.
func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// matchSegments runs in O(len(pattern) * len(segments)) however many "**"
// the pattern holds. next[j] reports whether the pattern suffix after the
// current segment matches segments[j:].
func matchSegments(pattern, segments []string) bool {
	next := make([]bool, len(segments)+1)
	next[len(segments)] = true

	for i := len(pattern) - 1; i >= 0; i-- {
		cur := make([]bool, len(segments)+1)
		for j := len(segments); j >= 0; j-- {
			switch {
			case pattern[i] == anySegments:
				cur[j] = next[j] || (j < len(segments) && cur[j+1])
			case j < len(segments) && next[j+1]:
				ok, err := path.Match(pattern[i], segments[j])
				cur[j] = err == nil && ok
			}
		}
		next = cur
	}
	return next[0]
}
