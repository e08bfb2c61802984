package scoring

import (
	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
)

// EmployabilityScorer implements §4.3.5.
type EmployabilityScorer struct{}

// NewEmployabilityScorer builds the scorer.
func NewEmployabilityScorer() *EmployabilityScorer { return &EmployabilityScorer{} }

func (e *EmployabilityScorer) WeightKey() string { return KeyEmployability }

func (e *EmployabilityScorer) Score(_ recommendmodel.StudentProfile, course *catalogue.Course) float64 {
	if course.EmploymentRate == nil {
		return 0.5
	}
	return clamp01(*course.EmploymentRate / 100)
}
