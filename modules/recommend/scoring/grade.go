package scoring

import (
	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
)

// GradeMatchScorer implements §4.3.2.
type GradeMatchScorer struct {
	gradeValue map[string]int
}

// NewGradeMatchScorer builds the scorer from snap's grade_value table.
func NewGradeMatchScorer(snap *configmodel.Snapshot) *GradeMatchScorer {
	return &GradeMatchScorer{gradeValue: snap.GradeValue}
}

func (g *GradeMatchScorer) WeightKey() string { return KeyGradeMatch }

func (g *GradeMatchScorer) Score(student recommendmodel.StudentProfile, course *catalogue.Course) float64 {
	if len(course.RequiredSubjects) == 0 {
		return 0.5
	}

	var total float64
	for _, req := range course.RequiredSubjects {
		total += g.perSubjectScore(student, req)
	}
	return total / float64(len(course.RequiredSubjects))
}

func (g *GradeMatchScorer) perSubjectScore(student recommendmodel.StudentProfile, req catalogue.RequiredSubject) float64 {
	predicted, ok := lookupGrade(student.PredictedGrades, req.Subject)
	if !ok {
		return 0
	}

	predictedValue, ok1 := g.gradeValue[predicted]
	requiredValue, ok2 := g.gradeValue[req.RequiredGrade]
	if !ok1 || !ok2 {
		return 0
	}

	delta := predictedValue - requiredValue
	switch {
	case delta >= 0:
		return 1.0
	case delta == -1:
		return 0.15
	case delta == -2:
		return 0.05
	default:
		return 0.01
	}
}

func lookupGrade(grades map[string]string, subject string) (string, bool) {
	for s, grade := range grades {
		if normalize(s) == normalize(subject) {
			return grade, true
		}
	}
	return "", false
}
