package scoring

import (
	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
)

// PreferenceScorer implements §4.3.3: the mean of a region sub-score
// and a budget sub-score.
type PreferenceScorer struct {
	regionMapping map[string]map[string]bool
}

// NewPreferenceScorer builds the scorer from snap's region_mapping table.
func NewPreferenceScorer(snap *configmodel.Snapshot) *PreferenceScorer {
	return &PreferenceScorer{regionMapping: snap.RegionMapping}
}

func (p *PreferenceScorer) WeightKey() string { return KeyPreferenceMatch }

func (p *PreferenceScorer) Score(student recommendmodel.StudentProfile, course *catalogue.Course) float64 {
	region := p.regionScore(student, course)
	budget := p.budgetScore(student, course)
	return clamp01((region + budget) / 2)
}

func (p *PreferenceScorer) regionScore(student recommendmodel.StudentProfile, course *catalogue.Course) float64 {
	if student.PreferredRegion == "" || course.UniversityRegion == nil {
		return 0.5
	}

	preferred := normalize(student.PreferredRegion)
	if normalize(*course.UniversityRegion) == preferred {
		return 1.0
	}

	if course.UniversityCity != nil {
		cities := p.regionMapping[preferred]
		if cities != nil && cities[normalize(*course.UniversityCity)] {
			return 1.0
		}
	}

	return 0.3
}

func (p *PreferenceScorer) budgetScore(student recommendmodel.StudentProfile, course *catalogue.Course) float64 {
	if student.MaxBudget == nil || course.AnnualFee == nil {
		return 0.5
	}

	budget := float64(*student.MaxBudget)
	fee := float64(*course.AnnualFee)

	if budget <= 0 {
		if fee <= 0 {
			return 1.0
		}
		return 0.0
	}

	if fee <= budget {
		return 1.0
	}
	ceiling := 2 * budget
	if fee >= ceiling {
		return 0.0
	}
	return 1.0 - (fee-budget)/(ceiling-budget)
}
