package bonus

import (
	"regexp"
	"strings"

	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsWholeToken reports whether needle appears in haystack as a
// whole-token substring, case-insensitively.
func containsWholeToken(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return false
	}
	pattern := `(?i)\b` + regexp.QuoteMeta(needle) + `\b`
	matched, err := regexp.MatchString(pattern, haystack)
	return err == nil && matched
}

func hasSubject(subjects []string, subject string) bool {
	target := normalize(subject)
	for _, s := range subjects {
		if normalize(s) == target {
			return true
		}
	}
	return false
}

func lookupGrade(grades map[string]string, subject string) (string, bool) {
	for s, grade := range grades {
		if normalize(s) == normalize(subject) {
			return grade, true
		}
	}
	return "", false
}

// topGradedSubject returns the student's subject with the numerically
// best predicted grade, using grade letter ordering since C4 does not
// have access to the grade_value table — ties favour the
// lexicographically first subject for determinism.
func topGradedSubject(student recommendmodel.StudentProfile) string {
	rank := map[string]int{"A*": 6, "A": 5, "B": 4, "C": 3, "D": 2, "E": 1, "U": 0}

	best := ""
	bestRank := -1
	for subject, grade := range student.PredictedGrades {
		if !hasSubject(student.Subjects, subject) {
			continue
		}
		r, ok := rank[grade]
		if !ok {
			continue
		}
		if r > bestRank || (r == bestRank && subject < best) {
			best = subject
			bestRank = r
		}
	}
	return best
}
