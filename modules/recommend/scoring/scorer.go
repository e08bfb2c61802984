package scoring

import (
	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
)

// Weight keys, matched against configmodel.Weights fields by Composite.
const (
	KeySubjectMatch    = "subject_match"
	KeyGradeMatch      = "grade_match"
	KeyPreferenceMatch = "preference_match"
	KeyRanking         = "ranking"
	KeyEmployability   = "employability"
)

// Scorer is the capability set every scoring component implements: a
// pure function of (student, course) into [0,1], plus the weight key it
// is composed under. New scorers are added by registering against the
// Composite; the weighted sum is agnostic to their implementation.
type Scorer interface {
	Score(student recommendmodel.StudentProfile, course *catalogue.Course) float64
	WeightKey() string
}

// DefaultScorers returns the five scorers named in §4.3, constructed
// against snap. maxRank is the highest university rank present in the
// current request's candidate set (see MaxRank).
func DefaultScorers(snap *configmodel.Snapshot, maxRank int) []Scorer {
	return []Scorer{
		NewSubjectMatchScorer(snap),
		NewGradeMatchScorer(snap),
		NewPreferenceScorer(snap),
		NewRankingScorer(maxRank),
		NewEmployabilityScorer(),
	}
}

// Composite composes a set of scorers into a single weighted base
// score, and can also report each scorer's individual contribution for
// the score_breakdown response field.
type Composite struct {
	scorers []Scorer
	weights configmodel.Weights
}

// NewComposite builds a Composite from scorers weighted by w.
func NewComposite(scorers []Scorer, w configmodel.Weights) *Composite {
	return &Composite{scorers: scorers, weights: w}
}

func (c *Composite) weightFor(key string) float64 {
	switch key {
	case KeySubjectMatch:
		return c.weights.SubjectMatch
	case KeyGradeMatch:
		return c.weights.GradeMatch
	case KeyPreferenceMatch:
		return c.weights.PreferenceMatch
	case KeyRanking:
		return c.weights.Ranking
	case KeyEmployability:
		return c.weights.Employability
	default:
		return 0
	}
}

// Score returns the weighted composite base score together with each
// individual scorer's raw [0,1] value keyed by weight key.
func (c *Composite) Score(student recommendmodel.StudentProfile, course *catalogue.Course) (float64, map[string]float64) {
	breakdown := make(map[string]float64, len(c.scorers))
	var total float64
	for _, scorer := range c.scorers {
		raw := clamp01(scorer.Score(student, course))
		breakdown[scorer.WeightKey()] = raw
		total += c.weightFor(scorer.WeightKey()) * raw
	}
	return clamp01(total), breakdown
}
