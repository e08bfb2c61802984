package reasons

import (
	"regexp"
	"strings"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsWholeToken(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return false
	}
	pattern := `(?i)\b` + regexp.QuoteMeta(needle) + `\b`
	matched, err := regexp.MatchString(pattern, haystack)
	return err == nil && matched
}

func lookupGrade(grades map[string]string, subject string) (string, bool) {
	for s, grade := range grades {
		if normalize(s) == normalize(subject) {
			return grade, true
		}
	}
	return "", false
}
