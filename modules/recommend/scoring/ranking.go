package scoring

import (
	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
)

// RankingScorer implements §4.3.4. maxRank is the highest
// university_rank_overall seen among the request's candidate courses —
// the "universe of ranked universities" the spec normalizes against —
// computed once per request by the orchestrator before scoring begins.
type RankingScorer struct {
	maxRank int
}

// NewRankingScorer builds the scorer against maxRank. A maxRank below 1
// is treated as 1, so rank 1 scores 1.0 and every larger rank scores 0.
func NewRankingScorer(maxRank int) *RankingScorer {
	if maxRank < 1 {
		maxRank = 1
	}
	return &RankingScorer{maxRank: maxRank}
}

func (r *RankingScorer) WeightKey() string { return KeyRanking }

func (r *RankingScorer) Score(_ recommendmodel.StudentProfile, course *catalogue.Course) float64 {
	if course.UniversityRank == nil {
		return 0.5
	}
	rank := *course.UniversityRank
	if rank < 1 {
		rank = 1
	}
	return clamp01(1 - float64(rank-1)/float64(r.maxRank))
}

// MaxRank returns the highest UniversityRank among courses, or 0 if none
// carry a known rank.
func MaxRank(courses []*catalogue.Course) int {
	max := 0
	for _, c := range courses {
		if c.UniversityRank != nil && *c.UniversityRank > max {
			max = *c.UniversityRank
		}
	}
	return max
}
