package scoring

import (
	"testing"

	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
	"github.com/stretchr/testify/assert"
)

func TestSubjectMatchScorer_Score(t *testing.T) {
	snap := &configmodel.Snapshot{
		SubjectRelatedTerms: map[string][]configmodel.SubjectRelatedTerm{
			"sociology": {{Subject: "Sociology", Term: "General Studies", MatchType: configmodel.MatchRelated}},
			"history":   {{Subject: "History", Term: "General Studies", MatchType: configmodel.MatchRelated}},
		},
		GenericTerms: map[string]bool{"General Studies": true},
		GenericTermRules: map[string]configmodel.GenericTermRule{
			"General Studies": {GenericTerm: "General Studies", AllowedSubjects: []string{"Sociology"}},
		},
	}
	scorer := NewSubjectMatchScorer(snap)

	t.Run("returns neutral 0.5 when a course has no requirements", func(t *testing.T) {
		course := &catalogue.Course{Name: "BA Philosophy"}
		score := scorer.Score(recommendmodel.StudentProfile{Subjects: []string{"Philosophy"}}, course)
		assert.Equal(t, 0.5, score)
	})

	t.Run("rewards exact required-subject matches", func(t *testing.T) {
		course := &catalogue.Course{
			Name: "BSc Physics",
			RequiredSubjects: []catalogue.RequiredSubject{
				{Subject: "Mathematics", RequiredGrade: "A"},
				{Subject: "Physics", RequiredGrade: "B"},
			},
		}
		student := recommendmodel.StudentProfile{Subjects: []string{"Mathematics", "Physics", "Chemistry"}}

		score := scorer.Score(student, course)

		assert.Greater(t, score, 0.7)
	})

	t.Run("a generic term only matches when the rule allows the subject", func(t *testing.T) {
		course := &catalogue.Course{
			Name: "BA General Studies",
			RequiredSubjects: []catalogue.RequiredSubject{
				{Subject: "English Literature", RequiredGrade: "B"},
			},
		}

		withAllowedSubject := scorer.Score(recommendmodel.StudentProfile{Subjects: []string{"Sociology"}}, course)
		withoutAllowedSubject := scorer.Score(recommendmodel.StudentProfile{Subjects: []string{"History"}}, course)

		assert.Greater(t, withAllowedSubject, withoutAllowedSubject)
	})

	t.Run("category match types check CAH codes instead of the course name", func(t *testing.T) {
		snap := &configmodel.Snapshot{
			SubjectRelatedTerms: map[string][]configmodel.SubjectRelatedTerm{
				"biology": {{Subject: "Biology", Term: "CAH02-02", MatchType: configmodel.MatchCategory}},
			},
			GenericTerms:     map[string]bool{},
			GenericTermRules: map[string]configmodel.GenericTermRule{},
		}
		scorer := NewSubjectMatchScorer(snap)

		course := &catalogue.Course{
			Name:     "MBBS Medicine",
			CAHCodes: []string{"CAH02-02"},
			RequiredSubjects: []catalogue.RequiredSubject{
				{Subject: "Chemistry", RequiredGrade: "A"},
			},
		}

		score := scorer.Score(recommendmodel.StudentProfile{Subjects: []string{"Biology"}}, course)
		assert.Greater(t, score, 0.0)
	})
}
