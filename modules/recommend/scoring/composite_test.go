package scoring

import (
	"testing"

	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposite_Score(t *testing.T) {
	weights := configmodel.Weights{
		SubjectMatch:    0.35,
		GradeMatch:      0.25,
		PreferenceMatch: 0.15,
		Ranking:         0.15,
		Employability:   0.10,
	}
	require.InDelta(t, 1.0, weights.Sum(), 1e-9)

	snap := &configmodel.Snapshot{
		GradeValue: map[string]int{"A*": 8, "A": 7, "B": 6, "C": 5, "D": 4, "E": 3, "U": 0},
	}
	composite := NewComposite(DefaultScorers(snap, 100), weights)

	course := &catalogue.Course{
		Name: "BSc Physics",
		RequiredSubjects: []catalogue.RequiredSubject{
			{Subject: "Mathematics", RequiredGrade: "A"},
			{Subject: "Physics", RequiredGrade: "B"},
		},
	}
	student := recommendmodel.StudentProfile{
		Subjects:        []string{"Mathematics", "Physics", "Chemistry"},
		PredictedGrades: map[string]string{"Mathematics": "A*", "Physics": "A"},
	}

	base, breakdown := composite.Score(student, course)

	assert.GreaterOrEqual(t, base, 0.0)
	assert.LessOrEqual(t, base, 1.0)
	assert.Len(t, breakdown, 5)
	assert.Equal(t, 1.0, breakdown[KeyGradeMatch])
}
