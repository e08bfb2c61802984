package scoring

import (
	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
)

// SubjectMatchScorer implements §4.3.1. Related-term matching with
// match_type "category" compares the term against the course's CAH
// codes instead of its name; this is how a subject's CAH-code
// affiliation is expressed without a dedicated mapping table.
type SubjectMatchScorer struct {
	relatedTerms map[string][]configmodel.SubjectRelatedTerm
	genericTerms map[string]bool
	genericRules map[string]configmodel.GenericTermRule
}

// NewSubjectMatchScorer builds the scorer from snap's related-term and
// generic-term configuration.
func NewSubjectMatchScorer(snap *configmodel.Snapshot) *SubjectMatchScorer {
	return &SubjectMatchScorer{
		relatedTerms: snap.SubjectRelatedTerms,
		genericTerms: snap.GenericTerms,
		genericRules: snap.GenericTermRules,
	}
}

func (s *SubjectMatchScorer) WeightKey() string { return KeySubjectMatch }

func (s *SubjectMatchScorer) Score(student recommendmodel.StudentProfile, course *catalogue.Course) float64 {
	if len(course.RequiredSubjects) == 0 {
		return 0.5
	}

	studentSubjects := normalizeSet(student.Subjects)
	requiredSubjects := make(map[string]bool, len(course.RequiredSubjects))
	for _, req := range course.RequiredSubjects {
		requiredSubjects[normalize(req.Subject)] = true
	}

	matching := s.MatchedSubjects(student, course)

	requiredRatio := float64(countIntersection(studentSubjects, requiredSubjects)) / float64(len(requiredSubjects))

	var relevanceRatio float64
	if len(studentSubjects) > 0 {
		relevanceRatio = float64(len(matching)) / float64(len(studentSubjects))
	}

	return clamp01(0.6*requiredRatio + 0.4*relevanceRatio)
}

// MatchedSubjects returns the normalized set of the student's declared
// subjects that match course, either as a required subject or via a
// configured related term (subject to the generic-term rule). The
// bonus layer (C4) reuses this set for the diversity and highest-grade
// bonuses so the two components never disagree on what "matches".
func (s *SubjectMatchScorer) MatchedSubjects(student recommendmodel.StudentProfile, course *catalogue.Course) map[string]bool {
	requiredSubjects := make(map[string]bool, len(course.RequiredSubjects))
	for _, req := range course.RequiredSubjects {
		requiredSubjects[normalize(req.Subject)] = true
	}
	courseName := normalize(course.Name)
	cahCodes := normalizeSet(course.CAHCodes)

	matching := make(map[string]bool)
	for _, rawSubject := range student.Subjects {
		subj := normalize(rawSubject)
		if requiredSubjects[subj] {
			matching[subj] = true
			continue
		}
		for _, term := range s.relatedTerms[subj] {
			if s.termMatches(term, subj, courseName, cahCodes) {
				matching[subj] = true
				break
			}
		}
	}
	return matching
}

func (s *SubjectMatchScorer) termMatches(term configmodel.SubjectRelatedTerm, subject, courseName string, cahCodes map[string]bool) bool {
	if term.MatchType == configmodel.MatchCategory {
		return cahCodes[normalize(term.Term)]
	}

	if s.genericTerms[term.Term] {
		rule, ok := s.genericRules[term.Term]
		if !ok {
			return false
		}
		allowed := false
		for _, allowedSubject := range rule.AllowedSubjects {
			if normalize(allowedSubject) == subject {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	return containsWholeToken(courseName, term.Term)
}

func countIntersection(a, b map[string]bool) int {
	count := 0
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for k := range small {
		if large[k] {
			count++
		}
	}
	return count
}
