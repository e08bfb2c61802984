// Package reasons implements C7: turning a scored candidate into the
// human-readable explanation strings attached to a recommendation. It
// never mentions a weight or a raw score component — only what matched.
package reasons

import (
	"fmt"
	"sort"
	"strings"

	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
)

// Builder constructs reason strings from the same configuration snapshot
// the scorers use, so "top-ranked" and "high employment" thresholds stay
// consistent with C1.
type Builder struct {
	regionMapping  map[string]map[string]bool
	gradeValue     map[string]int
	topRank        int
	highEmployment float64
}

// NewBuilder builds a Builder from snap's reason thresholds, region
// mapping, and grade_value table (needed to tell an actually-met grade
// requirement from a shortfall — see gradeSatisfactionReasons).
func NewBuilder(snap *configmodel.Snapshot) *Builder {
	return &Builder{
		regionMapping:  snap.RegionMapping,
		gradeValue:     snap.GradeValue,
		topRank:        snap.Reasons.TopRankThreshold,
		highEmployment: snap.Reasons.HighEmploymentPercent,
	}
}

// Build returns the ordered reason strings for course given the
// student's profile, the set of subjects the subject scorer matched
// (see scoring.SubjectMatchScorer.MatchedSubjects), and the feedback
// adjustment applied (C5's output, possibly zero).
func (b *Builder) Build(student recommendmodel.StudentProfile, course *catalogue.Course, matchedSubjects map[string]bool, feedbackAdjustment float64) []string {
	var reasons []string

	if subjects := formatMatchedSubjects(course, matchedSubjects); subjects != "" {
		reasons = append(reasons, "matches your subjects: "+subjects)
	}

	reasons = append(reasons, b.gradeSatisfactionReasons(student, course)...)

	if careerReason := b.careerInterestReason(student, course); careerReason != "" {
		reasons = append(reasons, careerReason)
	}

	if regionReason := b.regionReason(student, course); regionReason != "" {
		reasons = append(reasons, regionReason)
	}

	if course.UniversityRank != nil && *course.UniversityRank > 0 && *course.UniversityRank <= b.topRank {
		reasons = append(reasons, fmt.Sprintf("top-ranked university (rank %d)", *course.UniversityRank))
	}

	if course.EmploymentRate != nil && *course.EmploymentRate >= b.highEmployment {
		reasons = append(reasons, fmt.Sprintf("strong graduate employment rate (%.0f%%)", *course.EmploymentRate))
	}

	if feedbackAdjustment > 0 {
		reasons = append(reasons, "other students with similar subjects rated this course positively")
	} else if feedbackAdjustment < 0 {
		reasons = append(reasons, "other students with similar subjects rated this course less favourably")
	}

	return reasons
}

func formatMatchedSubjects(course *catalogue.Course, matchedSubjects map[string]bool) string {
	byNormalized := make(map[string]string, len(course.RequiredSubjects))
	for _, req := range course.RequiredSubjects {
		byNormalized[normalize(req.Subject)] = req.Subject
	}

	var display []string
	for norm := range matchedSubjects {
		if original, ok := byNormalized[norm]; ok {
			display = append(display, original)
		} else {
			display = append(display, norm)
		}
	}
	sort.Strings(display)
	return strings.Join(display, ", ")
}

// gradeSatisfactionReasons reports "meets <subject>: <grade>" only for
// requirements the student's predicted grade actually satisfies (§4.7),
// mirroring bonus.MeetsRequirements's per-subject comparison — a
// shortfall (S3: Mathematics predicted B against a required A) must
// never be reported as met.
func (b *Builder) gradeSatisfactionReasons(student recommendmodel.StudentProfile, course *catalogue.Course) []string {
	var out []string
	for _, req := range course.RequiredSubjects {
		grade, ok := lookupGrade(student.PredictedGrades, req.Subject)
		if !ok {
			continue
		}
		predictedValue, ok1 := b.gradeValue[grade]
		requiredValue, ok2 := b.gradeValue[req.RequiredGrade]
		if !ok1 || !ok2 || predictedValue < requiredValue {
			continue
		}
		out = append(out, fmt.Sprintf("meets %s: %s", req.Subject, grade))
	}
	return out
}

func (b *Builder) careerInterestReason(student recommendmodel.StudentProfile, course *catalogue.Course) string {
	if len(student.CareerInterests) == 0 {
		return ""
	}
	name := normalize(course.Name)
	for _, interest := range student.CareerInterests {
		if containsWholeToken(name, interest) {
			return fmt.Sprintf("aligns with your interest in %s", interest)
		}
	}
	return ""
}

func (b *Builder) regionReason(student recommendmodel.StudentProfile, course *catalogue.Course) string {
	if student.PreferredRegion == "" {
		return ""
	}
	region := normalize(student.PreferredRegion)
	if course.UniversityRegion != nil && normalize(*course.UniversityRegion) == region {
		return "located in your preferred region: " + student.PreferredRegion
	}
	if course.UniversityCity != nil && b.regionMapping[region][normalize(*course.UniversityCity)] {
		return "located in your preferred region: " + student.PreferredRegion
	}
	return ""
}
