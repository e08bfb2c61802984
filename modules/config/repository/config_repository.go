package repository

import (
	"context"
	"fmt"

	"github.com/coursematch/recoengine/modules/config/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the subset of *pgxpool.Pool the repository needs; satisfied by
// pgxmock.PgxPoolIface in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// ConfigRepository implements ports.ConfigRepository against Postgres.
// Every configuration table is small (tens to low-thousands of rows) and
// is read in full exactly once per Load call — there is no per-key query
// path, by design, since the engine never looks up a single config key
// mid-request.
type ConfigRepository struct {
	pool DBPool
}

// NewConfigRepository creates a new configuration repository.
func NewConfigRepository(pool *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{pool: pool}
}

// NewConfigRepositoryWithPool creates a repository with a custom pool (for testing).
func NewConfigRepositoryWithPool(pool DBPool) *ConfigRepository {
	return &ConfigRepository{pool: pool}
}

// Load reads every configuration table and assembles a Snapshot.
func (r *ConfigRepository) Load(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		GradeValue:          make(map[string]int),
		SubjectRelatedTerms: make(map[string][]model.SubjectRelatedTerm),
		GenericTerms:        make(map[string]bool),
		GenericTermRules:    make(map[string]model.GenericTermRule),
		RegionMapping:       make(map[string]map[string]bool),
		CareerKeywords:      make(map[string][]string),
		CareerConflicts:     make(map[string][]string),
	}

	if err := r.loadWeights(ctx, snap); err != nil {
		return nil, fmt.Errorf("load recommendation_weight: %w", err)
	}
	if err := r.loadGradeValues(ctx, snap); err != nil {
		return nil, fmt.Errorf("load grade_value: %w", err)
	}
	if err := r.loadSubjectRelatedTerms(ctx, snap); err != nil {
		return nil, fmt.Errorf("load subject_related_term: %w", err)
	}
	if err := r.loadGenericTerms(ctx, snap); err != nil {
		return nil, fmt.Errorf("load generic_term: %w", err)
	}
	if err := r.loadRegionMapping(ctx, snap); err != nil {
		return nil, fmt.Errorf("load region_mapping: %w", err)
	}
	if err := r.loadCareerKeywords(ctx, snap); err != nil {
		return nil, fmt.Errorf("load career_interest_keyword: %w", err)
	}
	if err := r.loadCareerConflicts(ctx, snap); err != nil {
		return nil, fmt.Errorf("load career_interest_conflict: %w", err)
	}
	if err := r.loadFeedbackSettings(ctx, snap); err != nil {
		return nil, fmt.Errorf("load feedback_setting: %w", err)
	}
	if err := r.loadReasonThresholds(ctx, snap); err != nil {
		return nil, fmt.Errorf("load reason_threshold: %w", err)
	}

	return snap, nil
}

func (r *ConfigRepository) loadWeights(ctx context.Context, snap *model.Snapshot) error {
	query := `
		SELECT subject_match, grade_match, preference_match, ranking, employability
		FROM recommendation_weight WHERE id = 1
	`
	return r.pool.QueryRow(ctx, query).Scan(
		&snap.Weights.SubjectMatch,
		&snap.Weights.GradeMatch,
		&snap.Weights.PreferenceMatch,
		&snap.Weights.Ranking,
		&snap.Weights.Employability,
	)
}

func (r *ConfigRepository) loadGradeValues(ctx context.Context, snap *model.Snapshot) error {
	rows, err := r.pool.Query(ctx, `SELECT grade_letter, value FROM grade_value`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var letter string
		var value int
		if err := rows.Scan(&letter, &value); err != nil {
			return err
		}
		snap.GradeValue[letter] = value
	}
	return rows.Err()
}

func (r *ConfigRepository) loadSubjectRelatedTerms(ctx context.Context, snap *model.Snapshot) error {
	rows, err := r.pool.Query(ctx, `SELECT subject, related_term, match_type FROM subject_related_term`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t model.SubjectRelatedTerm
		if err := rows.Scan(&t.Subject, &t.Term, &t.MatchType); err != nil {
			return err
		}
		snap.SubjectRelatedTerms[t.Subject] = append(snap.SubjectRelatedTerms[t.Subject], t)
	}
	return rows.Err()
}

func (r *ConfigRepository) loadGenericTerms(ctx context.Context, snap *model.Snapshot) error {
	termRows, err := r.pool.Query(ctx, `SELECT term FROM generic_term`)
	if err != nil {
		return err
	}
	for termRows.Next() {
		var term string
		if err := termRows.Scan(&term); err != nil {
			termRows.Close()
			return err
		}
		snap.GenericTerms[term] = true
	}
	termRows.Close()
	if err := termRows.Err(); err != nil {
		return err
	}

	ruleRows, err := r.pool.Query(ctx, `SELECT generic_term, allowed_subject FROM generic_term_rule`)
	if err != nil {
		return err
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var term, subject string
		if err := ruleRows.Scan(&term, &subject); err != nil {
			return err
		}
		rule := snap.GenericTermRules[term]
		rule.GenericTerm = term
		rule.AllowedSubjects = append(rule.AllowedSubjects, subject)
		snap.GenericTermRules[term] = rule
	}
	return ruleRows.Err()
}

func (r *ConfigRepository) loadRegionMapping(ctx context.Context, snap *model.Snapshot) error {
	rows, err := r.pool.Query(ctx, `SELECT region, city FROM region_mapping`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var region, city string
		if err := rows.Scan(&region, &city); err != nil {
			return err
		}
		if snap.RegionMapping[region] == nil {
			snap.RegionMapping[region] = make(map[string]bool)
		}
		snap.RegionMapping[region][city] = true
	}
	return rows.Err()
}

func (r *ConfigRepository) loadCareerKeywords(ctx context.Context, snap *model.Snapshot) error {
	rows, err := r.pool.Query(ctx, `SELECT interest, keyword FROM career_interest_keyword`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var interest, keyword string
		if err := rows.Scan(&interest, &keyword); err != nil {
			return err
		}
		snap.CareerKeywords[interest] = append(snap.CareerKeywords[interest], keyword)
	}
	return rows.Err()
}

func (r *ConfigRepository) loadCareerConflicts(ctx context.Context, snap *model.Snapshot) error {
	rows, err := r.pool.Query(ctx, `SELECT interest, keyword FROM career_interest_conflict`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var interest, keyword string
		if err := rows.Scan(&interest, &keyword); err != nil {
			rows.Close()
			return err
		}
		snap.CareerConflicts[interest] = append(snap.CareerConflicts[interest], keyword)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	excRows, err := r.pool.Query(ctx, `SELECT interest, course_name_like FROM career_interest_conflict_exception`)
	if err != nil {
		return err
	}
	defer excRows.Close()

	for excRows.Next() {
		var exc model.CareerConflictException
		if err := excRows.Scan(&exc.Interest, &exc.CourseNameLike); err != nil {
			return err
		}
		snap.CareerConflictExceptions = append(snap.CareerConflictExceptions, exc)
	}
	return excRows.Err()
}

func (r *ConfigRepository) loadFeedbackSettings(ctx context.Context, snap *model.Snapshot) error {
	query := `
		SELECT feedback_weight, feedback_decay_days, min_feedback_count,
		       own_weight, peer_weight, positive_boost, negative_penalty
		FROM feedback_setting WHERE id = 1
	`
	return r.pool.QueryRow(ctx, query).Scan(
		&snap.Feedback.FeedbackWeight,
		&snap.Feedback.DecayDays,
		&snap.Feedback.MinFeedbackCount,
		&snap.Feedback.OwnWeight,
		&snap.Feedback.PeerWeight,
		&snap.Feedback.PositiveBoost,
		&snap.Feedback.NegativePenalty,
	)
}

func (r *ConfigRepository) loadReasonThresholds(ctx context.Context, snap *model.Snapshot) error {
	query := `SELECT top_rank_threshold, high_employment_percent FROM reason_threshold WHERE id = 1`
	return r.pool.QueryRow(ctx, query).Scan(&snap.Reasons.TopRankThreshold, &snap.Reasons.HighEmploymentPercent)
}
