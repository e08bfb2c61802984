package scoring

import (
	"regexp"
	"strings"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[normalize(v)] = true
	}
	return set
}

// containsWholeToken reports whether needle appears in haystack as a
// whole-token substring (not merely embedded inside a longer word),
// case-insensitively. This is what keeps a generic term like "science"
// from misfiring against an unrelated word that happens to contain it.
func containsWholeToken(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return false
	}
	pattern := `(?i)\b` + regexp.QuoteMeta(needle) + `\b`
	matched, err := regexp.MatchString(pattern, haystack)
	return err == nil && matched
}
