// Package pkg
package pkg

import "strings"

// ContainsAny reports whether s matches any pattern, case-insensitively.
// A trailing "*" makes the pattern a prefix match; otherwise it is a substring match.
func ContainsAny(s string, patterns []string) bool {
	s = strings.ToLower(s)

	for _, p := range patterns {
		p = strings.ToLower(p)

		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(s, prefix) {
				return true
			}
			continue
		}

		if p != "" && strings.Contains(s, p) {
			return true
		}
	}

	return false
}
