package model

import catalogue "github.com/coursematch/recoengine/modules/catalogue/model"

// ScoreBreakdown exposes each scorer's contribution plus bonuses and the
// feedback adjustment. Populated only when RecommendOptions.Advanced is
// true (§6).
type ScoreBreakdown struct {
	Subject       float64 `json:"subject"`
	Grade         float64 `json:"grade"`
	Preference    float64 `json:"preference"`
	Ranking       float64 `json:"ranking"`
	Employability float64 `json:"employability"`
	Bonuses       float64 `json:"bonuses"`
	Feedback      float64 `json:"feedback"`
}

// Recommendation is one entry in the ranked result list.
type Recommendation struct {
	Course             *catalogue.Course `json:"course"`
	MatchScore         float64           `json:"match_score"`
	MeetsRequirements  bool              `json:"meets_requirements"`
	Reasons            []string          `json:"reasons,omitempty"`
	ScoreBreakdown     *ScoreBreakdown   `json:"score_breakdown,omitempty"`
	tieBreakIndex      int
}

// TieBreakIndex returns the insertion-order index used to deterministically
// break score ties (earlier-seen wins).
func (r *Recommendation) TieBreakIndex() int { return r.tieBreakIndex }

// SetTieBreakIndex assigns the insertion-order index. Called once by the
// orchestrator when a candidate is first scored.
func (r *Recommendation) SetTieBreakIndex(i int) { r.tieBreakIndex = i }

// RecommendationList is the ordered result of a recommend call, plus any
// degraded-mode warnings attached by the orchestrator (§7
// FeedbackUnavailable).
type RecommendationList struct {
	Recommendations []*Recommendation `json:"recommendations"`
	Warnings        []string          `json:"warnings,omitempty"`
}
