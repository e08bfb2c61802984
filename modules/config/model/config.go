package model

import "time"

// MatchType classifies how a related term is allowed to match a course.
type MatchType string

const (
	MatchRelated MatchType = "related"
	MatchSynonym MatchType = "synonym"
	MatchCategory MatchType = "category"
)

// SubjectRelatedTerm maps an A-level subject to a single related term entry.
// A subject may have several entries; the table stores one row per term.
type SubjectRelatedTerm struct {
	Subject   string
	Term      string
	MatchType MatchType
}

// GenericTermRule allows a generic term to match only when the student's
// subject is on the rule's allow-list.
type GenericTermRule struct {
	GenericTerm     string
	AllowedSubjects []string
}

// CareerConflictException exempts a course name substring from being
// treated as a conflict for the named interest (e.g. "Business Studies"
// should not be excluded by the "science" conflict keyword it contains).
type CareerConflictException struct {
	Interest       string
	CourseNameLike string
}

// Weights holds the composite-score weighting for the five C3 scorers.
// Invariant: the five fields sum to 1.0 within 1e-6.
type Weights struct {
	SubjectMatch    float64
	GradeMatch      float64
	PreferenceMatch float64
	Ranking         float64
	Employability   float64
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.SubjectMatch + w.GradeMatch + w.PreferenceMatch + w.Ranking + w.Employability
}

// FeedbackSettings parameterizes the feedback adjustment (C5).
type FeedbackSettings struct {
	FeedbackWeight    float64
	DecayDays         float64
	MinFeedbackCount  int
	OwnWeight         float64
	PeerWeight        float64
	PositiveBoost     float64
	NegativePenalty   float64
}

// Thresholds used only by the Reason Builder (C7); never scoring-relevant.
type ReasonThresholds struct {
	TopRankThreshold       int
	HighEmploymentPercent  float64
}

// Snapshot is the full, validated, read-only configuration loaded once at
// startup (and swapped atomically on reload). Every accessor the rest of
// the engine uses reads from a Snapshot.
type Snapshot struct {
	LoadedAt                 time.Time
	Weights                  Weights
	GradeValue               map[string]int // grade letter -> numeric value
	SubjectRelatedTerms      map[string][]SubjectRelatedTerm
	GenericTerms             map[string]bool
	GenericTermRules         map[string]GenericTermRule
	RegionMapping            map[string]map[string]bool // region -> set of city names
	CareerKeywords           map[string][]string        // interest -> positive keywords
	CareerConflicts          map[string][]string         // interest -> conflict keywords
	CareerConflictExceptions []CareerConflictException
	Feedback                 FeedbackSettings
	Reasons                  ReasonThresholds
}

// CanonicalGrades is the fixed A-level grade alphabet every grade_value
// table must cover; it never changes with configuration.
var CanonicalGrades = []string{"A*", "A", "B", "C", "D", "E", "U"}
