package model

// StudentProfile is the per-request input to the engine. It is never
// persisted — profile CRUD is out of scope; the HTTP boundary builds
// one from the request body plus the authenticated user_id.
type StudentProfile struct {
	UserID          string            `json:"-"`
	Subjects        []string          `json:"subjects"`
	PredictedGrades map[string]string `json:"predicted_grades"`
	CareerInterests []string          `json:"career_interests,omitempty"`
	PreferredRegion string            `json:"preferred_region,omitempty"`
	MaxBudget       *int              `json:"max_budget,omitempty"`
}

// RecommendOptions controls the shape of the recommendation response.
type RecommendOptions struct {
	Limit          int  `json:"limit,omitempty"`
	Advanced       bool `json:"advanced,omitempty"`
	IncludeReasons *bool `json:"include_reasons,omitempty"`
}

// Normalize clamps Limit to the [1,100] range and applies spec defaults:
// limit 50, include_reasons true unless explicitly disabled.
func (o RecommendOptions) Normalize() RecommendOptions {
	if o.Limit <= 0 {
		o.Limit = 50
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.IncludeReasons == nil {
		include := true
		o.IncludeReasons = &include
	}
	return o
}

// IncludesReasons reports whether reasons should be attached.
func (o RecommendOptions) IncludesReasons() bool {
	return o.IncludeReasons == nil || *o.IncludeReasons
}

// RecommendRequest is the body of POST /recommendations.
type RecommendRequest struct {
	Profile StudentProfile   `json:"profile"`
	Options RecommendOptions `json:"options"`
}
