package bonus

import (
	"strings"

	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
)

const (
	careerKeywordBonus = 0.4
	highestGradeBonus  = 0.25
	maxDiversityBonus  = 0.15
	diversityStep      = 0.05
)

// Layer implements C4: conflict filtering (rejection, applied before
// scoring) and the three additive bonuses (applied after the base
// score). It is constructed once per request against the current
// configuration snapshot.
type Layer struct {
	careerKeywords  map[string][]string
	careerConflicts map[string][]string
	exceptions      []configmodel.CareerConflictException
}

// NewLayer builds a Layer from snap's career configuration.
func NewLayer(snap *configmodel.Snapshot) *Layer {
	return &Layer{
		careerKeywords:  snap.CareerKeywords,
		careerConflicts: snap.CareerConflicts,
		exceptions:      snap.CareerConflictExceptions,
	}
}

// IsConflicted reports whether course must be rejected before scoring
// because its name contains a conflict keyword for one of the
// student's declared career interests, unless an explicit exception
// exempts it.
func (l *Layer) IsConflicted(student recommendmodel.StudentProfile, course *catalogue.Course) bool {
	name := normalize(course.Name)
	for _, interest := range student.CareerInterests {
		key := normalize(interest)
		for _, keyword := range l.careerConflicts[key] {
			if !containsWholeToken(name, keyword) {
				continue
			}
			if l.isExempt(key, course.Name) {
				continue
			}
			return true
		}
	}
	return false
}

func (l *Layer) isExempt(interest, courseName string) bool {
	name := normalize(courseName)
	for _, exc := range l.exceptions {
		if normalize(exc.Interest) != interest {
			continue
		}
		if strings.Contains(name, normalize(strings.Trim(exc.CourseNameLike, "%"))) {
			return true
		}
	}
	return false
}

// Bonuses returns the sum of the career-keyword, highest-grade and
// diversity bonuses for course. matchedSubjects is the normalized set
// of student subjects the subject scorer matched against course (see
// scoring.SubjectMatchScorer.MatchedSubjects) — the diversity and
// highest-grade bonuses are defined over that same set so the two
// components never disagree on what "matches".
func (l *Layer) Bonuses(student recommendmodel.StudentProfile, course *catalogue.Course, matchedSubjects map[string]bool) float64 {
	var total float64
	total += l.careerKeywordBonus(student, course)
	total += l.highestGradeBonus(student, matchedSubjects)
	total += l.diversityBonus(matchedSubjects)
	return total
}

func (l *Layer) careerKeywordBonus(student recommendmodel.StudentProfile, course *catalogue.Course) float64 {
	name := normalize(course.Name)
	for _, interest := range student.CareerInterests {
		key := normalize(interest)
		for _, keyword := range l.careerKeywords[key] {
			if containsWholeToken(name, keyword) {
				return careerKeywordBonus
			}
		}
	}
	return 0
}

func (l *Layer) highestGradeBonus(student recommendmodel.StudentProfile, matchedSubjects map[string]bool) float64 {
	if len(student.CareerInterests) > 0 {
		return 0
	}

	top := topGradedSubject(student)
	if top == "" {
		return 0
	}

	if matchedSubjects[normalize(top)] {
		return highestGradeBonus
	}
	return 0
}

func (l *Layer) diversityBonus(matchedSubjects map[string]bool) float64 {
	m := len(matchedSubjects)
	if m < 2 {
		return 0
	}
	bonus := float64(m-1) * diversityStep
	if bonus > maxDiversityBonus {
		bonus = maxDiversityBonus
	}
	return bonus
}

// MeetsRequirements reports whether every required subject is present
// in the student's subjects and every required grade is met.
func MeetsRequirements(gradeValue map[string]int, student recommendmodel.StudentProfile, course *catalogue.Course) bool {
	for _, req := range course.RequiredSubjects {
		predicted, ok := lookupGrade(student.PredictedGrades, req.Subject)
		if !ok {
			return false
		}
		if !hasSubject(student.Subjects, req.Subject) {
			return false
		}
		predictedValue, ok1 := gradeValue[predicted]
		requiredValue, ok2 := gradeValue[req.RequiredGrade]
		if !ok1 || !ok2 || predictedValue < requiredValue {
			return false
		}
	}
	return true
}
