package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/coursematch/recoengine/modules/catalogue/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the subset of *pgxpool.Pool the repository needs; satisfied
// by pgxmock.PgxPoolIface in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// CatalogueRepository implements ports.CatalogueRepository against
// Postgres. ListCandidates issues exactly one course query plus two bulk
// enrichment queries keyed by course_id — required subjects and CAH
// codes — never a per-course round trip.
type CatalogueRepository struct {
	pool DBPool
}

// NewCatalogueRepository creates a new catalogue repository.
func NewCatalogueRepository(pool *pgxpool.Pool) *CatalogueRepository {
	return &CatalogueRepository{pool: pool}
}

// NewCatalogueRepositoryWithPool creates a repository with a custom pool (for testing).
func NewCatalogueRepositoryWithPool(pool DBPool) *CatalogueRepository {
	return &CatalogueRepository{pool: pool}
}

// ListCandidates returns every course matching filter, fully enriched.
func (r *CatalogueRepository) ListCandidates(ctx context.Context, filter model.CandidateFilter) ([]*model.Course, error) {
	courses, order, err := r.fetchCourses(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(courses))
	for _, id := range order {
		ids = append(ids, id)
	}

	if err := r.fetchRequiredSubjects(ctx, ids, courses); err != nil {
		return nil, err
	}
	if err := r.fetchCAHCodes(ctx, ids, courses); err != nil {
		return nil, err
	}

	result := make([]*model.Course, 0, len(order))
	for _, id := range order {
		result = append(result, courses[id])
	}
	return result, nil
}

func (r *CatalogueRepository) fetchCourses(ctx context.Context, filter model.CandidateFilter) (map[string]*model.Course, []string, error) {
	var b strings.Builder
	b.WriteString(`
		SELECT
			c.id, c.university_id, c.name, c.annual_fee,
			u.region, u.city, u.rank_overall,
			e.employment_rate
		FROM courses c
		JOIN universities u ON u.id = c.university_id
		LEFT JOIN course_enrichment e ON e.course_id = c.id
	`)

	args := make([]interface{}, 0, 4)
	var where []string

	if filter.SubjectKeyword != "" {
		args = append(args, "%"+filter.SubjectKeyword+"%")
		where = append(where, "LOWER(c.name) LIKE LOWER($"+strconv.Itoa(len(args))+")")
	}
	if filter.University != "" {
		args = append(args, filter.University)
		where = append(where, "u.name = $"+strconv.Itoa(len(args)))
	}
	if filter.MaxFee != nil {
		args = append(args, *filter.MaxFee)
		where = append(where, "(c.annual_fee IS NULL OR c.annual_fee <= $"+strconv.Itoa(len(args))+")")
	}
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY c.id")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}

	rows, err := r.pool.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	courses := make(map[string]*model.Course)
	var order []string
	for rows.Next() {
		c := &model.Course{}
		if err := rows.Scan(
			&c.CourseID, &c.UniversityID, &c.Name, &c.AnnualFee,
			&c.UniversityRegion, &c.UniversityCity, &c.UniversityRank,
			&c.EmploymentRate,
		); err != nil {
			return nil, nil, err
		}
		courses[c.CourseID] = c
		order = append(order, c.CourseID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return courses, order, nil
}

func (r *CatalogueRepository) fetchRequiredSubjects(ctx context.Context, ids []string, courses map[string]*model.Course) error {
	rows, err := r.pool.Query(ctx, `
		SELECT course_id, subject, required_grade
		FROM course_requirements
		WHERE course_id = ANY($1)
		ORDER BY course_id, position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var courseID, subject, grade string
		if err := rows.Scan(&courseID, &subject, &grade); err != nil {
			return err
		}
		if c, ok := courses[courseID]; ok {
			c.RequiredSubjects = append(c.RequiredSubjects, model.RequiredSubject{
				Subject:       subject,
				RequiredGrade: grade,
			})
		}
	}
	return rows.Err()
}

func (r *CatalogueRepository) fetchCAHCodes(ctx context.Context, ids []string, courses map[string]*model.Course) error {
	rows, err := r.pool.Query(ctx, `
		SELECT course_id, cah_code
		FROM course_cah_code
		WHERE course_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var courseID, code string
		if err := rows.Scan(&courseID, &code); err != nil {
			return err
		}
		if c, ok := courses[courseID]; ok {
			c.CAHCodes = append(c.CAHCodes, code)
		}
	}
	return rows.Err()
}
