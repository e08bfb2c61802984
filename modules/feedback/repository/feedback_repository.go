package repository

import (
	"context"
	"errors"
	"time"

	"github.com/coursematch/recoengine/modules/feedback/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the subset of *pgxpool.Pool the repository needs; satisfied
// by pgxmock.PgxPoolIface in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// FeedbackRepository implements ports.FeedbackRepository against
// Postgres. The feedback table is append-only — there is no Update or
// Delete.
type FeedbackRepository struct {
	pool DBPool
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// NewFeedbackRepositoryWithPool creates a repository with a custom pool (for testing).
func NewFeedbackRepositoryWithPool(pool DBPool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// Create appends a new feedback record.
func (r *FeedbackRepository) Create(ctx context.Context, record *model.FeedbackRecord) error {
	record.ID = uuid.New().String()
	record.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO feedback (id, user_id, course_id, kind, notes, subjects, career_interests, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		record.ID,
		record.UserID,
		record.CourseID,
		string(record.Kind),
		record.Notes,
		record.Subjects,
		record.CareerInterests,
		record.CreatedAt,
	)
	return err
}

// CourseExists reports whether courseID exists in the catalogue.
func (r *FeedbackRepository) CourseExists(ctx context.Context, courseID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}
	return exists, nil
}

// ListForCourses fetches every feedback record for courseIDs created on
// or after since, in one bulk query.
func (r *FeedbackRepository) ListForCourses(ctx context.Context, courseIDs []string, since time.Time) (map[string][]*model.FeedbackRecord, error) {
	if len(courseIDs) == 0 {
		return map[string][]*model.FeedbackRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, course_id, kind, notes, subjects, career_interests, created_at
		FROM feedback
		WHERE course_id = ANY($1) AND created_at >= $2
	`, courseIDs, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]*model.FeedbackRecord)
	for rows.Next() {
		rec := &model.FeedbackRecord{}
		var kind string
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.CourseID, &kind, &rec.Notes,
			&rec.Subjects, &rec.CareerInterests, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Kind = model.Kind(kind)
		out[rec.CourseID] = append(out[rec.CourseID], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
