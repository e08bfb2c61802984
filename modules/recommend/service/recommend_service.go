// Package service implements the recommend orchestrator: the
// INIT→FILTER→SCORE→BONUS→FEEDBACK→SELECT→EXPLAIN→DONE state machine
// that ties C1–C7 together for a single request.
package service

import (
	"context"
	"time"

	"github.com/coursematch/recoengine/internal/platform/logger"
	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	catalogueservice "github.com/coursematch/recoengine/modules/catalogue/service"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	configservice "github.com/coursematch/recoengine/modules/config/service"
	feedbackmodel "github.com/coursematch/recoengine/modules/feedback/model"
	feedbackports "github.com/coursematch/recoengine/modules/feedback/ports"
	feedbackservice "github.com/coursematch/recoengine/modules/feedback/service"
	"github.com/coursematch/recoengine/modules/recommend/bonus"
	"github.com/coursematch/recoengine/modules/recommend/model"
	"github.com/coursematch/recoengine/modules/recommend/reasons"
	"github.com/coursematch/recoengine/modules/recommend/scoring"
	"github.com/coursematch/recoengine/modules/recommend/topk"
)

// defaultSelectorCapacity is K in §4.6: the heap retains the 100
// strongest candidates before the response is truncated to the
// requested limit (default 50).
const defaultSelectorCapacity = 100

// feedbackLookbackMultiple converts the current snapshot's
// feedback_decay_days into the bulk-read lookback window. §8 property 8
// requires a record older than decay_days*10 to contribute under 1e-3 to
// the adjustment, so reading back that far comfortably covers every
// record the decay curve still treats as meaningful while excluding the
// ones it has decayed to noise.
const feedbackLookbackMultiple = 10

// RecommendService runs the per-request scoring pipeline. It holds no
// mutable state between calls — every collaborator it depends on is
// either read-only (ConfigStore, CatalogueService) or itself stateless.
type RecommendService struct {
	configStore *configservice.ConfigStore
	catalogue   *catalogueservice.CatalogueService
	feedback    feedbackports.FeedbackRepository
	log         *logger.Logger
}

// NewRecommendService wires together the collaborators C2–C5 rely on.
func NewRecommendService(
	configStore *configservice.ConfigStore,
	catalogue *catalogueservice.CatalogueService,
	feedback feedbackports.FeedbackRepository,
	log *logger.Logger,
) *RecommendService {
	return &RecommendService{
		configStore: configStore,
		catalogue:   catalogue,
		feedback:    feedback,
		log:         log,
	}
}

// Recommend runs the state machine for one request: FILTER fetches
// candidates from C2; for each candidate, BONUS's conflict filter may
// reject it early, otherwise C3 computes the base score, C4 adds
// bonuses, C5 adjusts for feedback, and C6 keeps the strongest K; EXPLAIN
// (C7) attaches reasons to the survivors.
func (s *RecommendService) Recommend(ctx context.Context, req model.RecommendRequest) (*model.RecommendationList, error) {
	snap := s.configStore.Current()
	options := req.Options.Normalize()
	student := req.Profile

	// FILTER
	courses, err := s.catalogue.ListCandidates(ctx, catalogue.CandidateFilter{})
	if err != nil {
		return nil, model.ErrCatalogueUnavailable
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	maxRank := scoring.MaxRank(courses)
	composite := scoring.NewComposite(scoring.DefaultScorers(snap, maxRank), snap.Weights)
	subjectScorer := scoring.NewSubjectMatchScorer(snap)
	bonusLayer := bonus.NewLayer(snap)
	reasonBuilder := reasons.NewBuilder(snap)
	selector := topk.NewSelector(defaultSelectorCapacity)

	var warnings []string
	feedbackByCourse, degraded := s.loadFeedback(ctx, courses, snap)
	if degraded {
		warnings = append(warnings, "feedback history temporarily unavailable; recommendations are not personalized by past ratings")
		if s.log != nil {
			s.log.Warn("feedback unavailable, degrading to zero adjustment")
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	tieBreak := 0
	for _, course := range courses {
		// BONUS: conflict filter runs before scoring (§4.4.1).
		if bonusLayer.IsConflicted(student, course) {
			continue
		}

		rec := s.scoreCourse(student, course, composite, subjectScorer, bonusLayer, snap)

		adjustment := s.feedbackAdjustment(student, course, feedbackByCourse, degraded, snap)
		rec.ScoreBreakdown.Feedback = adjustment
		rec.MatchScore = clamp01(rec.MatchScore + snap.Feedback.FeedbackWeight*adjustment)

		rec.SetTieBreakIndex(tieBreak)
		tieBreak++
		selector.Offer(rec)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	survivors := selector.Drain()
	if len(survivors) > options.Limit {
		survivors = survivors[:options.Limit]
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// EXPLAIN
	for _, rec := range survivors {
		if options.IncludesReasons() {
			matched := subjectScorer.MatchedSubjects(student, rec.Course)
			rec.Reasons = reasonBuilder.Build(student, rec.Course, matched, rec.ScoreBreakdown.Feedback)
		}
		if !options.Advanced {
			rec.ScoreBreakdown = nil
		}
	}

	return &model.RecommendationList{Recommendations: survivors, Warnings: warnings}, nil
}

// scoreCourse runs C3 and C4's additive bonuses for a single course.
func (s *RecommendService) scoreCourse(
	student model.StudentProfile,
	course *catalogue.Course,
	composite *scoring.Composite,
	subjectScorer *scoring.SubjectMatchScorer,
	bonusLayer *bonus.Layer,
	snap *configmodel.Snapshot,
) *model.Recommendation {
	base, breakdown := composite.Score(student, course)
	matched := subjectScorer.MatchedSubjects(student, course)
	bonusTotal := bonusLayer.Bonuses(student, course, matched)

	return &model.Recommendation{
		Course:            course,
		MatchScore:        clamp01(base + bonusTotal),
		MeetsRequirements: bonus.MeetsRequirements(snap.GradeValue, student, course),
		ScoreBreakdown: &model.ScoreBreakdown{
			Subject:       breakdown[scoring.KeySubjectMatch],
			Grade:         breakdown[scoring.KeyGradeMatch],
			Preference:    breakdown[scoring.KeyPreferenceMatch],
			Ranking:       breakdown[scoring.KeyRanking],
			Employability: breakdown[scoring.KeyEmployability],
			Bonuses:       bonusTotal,
		},
	}
}

// loadFeedback performs C5's single bulk read across every candidate
// course. A failure here degrades the whole request rather than failing
// it: the boolean return reports degradation so every course's
// adjustment is treated as 0.
func (s *RecommendService) loadFeedback(ctx context.Context, courses []*catalogue.Course, snap *configmodel.Snapshot) (map[string][]*feedbackmodel.FeedbackRecord, bool) {
	if s.feedback == nil || len(courses) == 0 {
		return nil, false
	}
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.CourseID)
	}
	lookbackDays := snap.Feedback.DecayDays * feedbackLookbackMultiple
	lookback := time.Duration(lookbackDays * float64(24*time.Hour))
	records, err := s.feedback.ListForCourses(ctx, ids, time.Now().UTC().Add(-lookback))
	if err != nil {
		return nil, true
	}
	return records, false
}

func (s *RecommendService) feedbackAdjustment(
	student model.StudentProfile,
	course *catalogue.Course,
	byCourse map[string][]*feedbackmodel.FeedbackRecord,
	degraded bool,
	snap *configmodel.Snapshot,
) float64 {
	if degraded || byCourse == nil {
		return 0
	}
	return feedbackservice.ComputeAdjustment(
		time.Now().UTC(),
		student.UserID,
		student.Subjects,
		student.CareerInterests,
		byCourse[course.CourseID],
		snap.Feedback,
	)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
