package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newID() string { return uuid.New().String() }

func hashPassword(pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), 12)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func daysAgo(d int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -d)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ── fixture data ─────────────────────────────────────────────────────────────

type university struct {
	id, name, region, city string
	rank                   int
}

type course struct {
	id, universityKey, name string
	fee                      int
	requirements             [][2]string // subject, required_grade
	cahCodes                 []string
	employmentRate           float64
}

var universities = []university{
	{id: newID(), name: "Imperial College London", region: "London", city: "London", rank: 3},
	{id: newID(), name: "University of Manchester", region: "North West", city: "Manchester", rank: 28},
	{id: newID(), name: "University of Leeds", region: "Yorkshire and the Humber", city: "Leeds", rank: 34},
	{id: newID(), name: "University of Bristol", region: "South West", city: "Bristol", rank: 17},
	{id: newID(), name: "University of Warwick", region: "West Midlands", city: "Coventry", rank: 10},
}

var courses = []course{
	{
		name: "BSc Physics", universityKey: "Imperial College London", fee: 9250,
		requirements: [][2]string{{"Mathematics", "A"}, {"Physics", "B"}},
		cahCodes:     []string{"CAH10-01"}, employmentRate: 88,
	},
	{
		name: "BSc Computer Science", universityKey: "University of Manchester", fee: 9250,
		requirements: [][2]string{{"Mathematics", "B"}},
		cahCodes:     []string{"CAH11-01"}, employmentRate: 91,
	},
	{
		name: "BA Economics and Finance", universityKey: "University of Warwick", fee: 9250,
		requirements: [][2]string{{"Mathematics", "A"}},
		cahCodes:     []string{"CAH17-01"}, employmentRate: 85,
	},
	{
		name: "BA English Literature", universityKey: "University of Leeds", fee: 9250,
		requirements: [][2]string{{"English Literature", "A"}},
		cahCodes:     []string{"CAH19-01"}, employmentRate: 72,
	},
	{
		name: "BSc Chemistry", universityKey: "University of Bristol", fee: 9250,
		requirements: [][2]string{{"Chemistry", "A"}, {"Mathematics", "C"}},
		cahCodes:     []string{"CAH10-02"}, employmentRate: 79,
	},
}

// ── main ─────────────────────────────────────────────────────────────────────

func main() {
	_ = godotenv.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "recoengine"),
		envOr("DB_PASSWORD", "recoengine"),
		envOr("DB_NAME", "recoengine"),
		envOr("DB_SSL_MODE", "disable"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}
	fmt.Println("connected to database")

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback(ctx)

	const seedEmail = "seed@coursematch.dev"
	_, _ = tx.Exec(ctx, `DELETE FROM users WHERE email = $1`, seedEmail)
	fmt.Println("cleaned previous seed data")

	// ── 1. demo student account ─────────────────────────────────────────
	userID := newID()
	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, locale, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, userID, seedEmail, "Demo Student", hashPassword("demo-password"), "en-GB", time.Now().UTC())
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	// ── 2. scoring configuration (C1) ───────────────────────────────────
	if err := seedConfiguration(ctx, tx); err != nil {
		log.Fatalf("seed configuration: %v", err)
	}

	// ── 3. catalogue (C2), fanned out per university concurrently ──────
	universityID := make(map[string]string, len(universities))
	for _, u := range universities {
		universityID[u.name] = u.id
	}

	var g errgroup.Group
	for _, u := range universities {
		u := u
		g.Go(func() error {
			_, err := tx.Exec(ctx, `
				INSERT INTO universities (id, name, region, city, rank_overall)
				VALUES ($1, $2, $3, $4, $5)
			`, u.id, u.name, u.region, u.city, u.rank)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("seed universities: %v", err)
	}

	for _, c := range courses {
		courseID := newID()
		_, err = tx.Exec(ctx, `
			INSERT INTO courses (id, university_id, name, annual_fee)
			VALUES ($1, $2, $3, $4)
		`, courseID, universityID[c.universityKey], c.name, c.fee)
		if err != nil {
			log.Fatalf("seed course %s: %v", c.name, err)
		}

		for pos, req := range c.requirements {
			_, err = tx.Exec(ctx, `
				INSERT INTO course_requirements (course_id, position, subject, required_grade)
				VALUES ($1, $2, $3, $4)
			`, courseID, pos, req[0], req[1])
			if err != nil {
				log.Fatalf("seed requirement for %s: %v", c.name, err)
			}
		}

		for _, code := range c.cahCodes {
			_, err = tx.Exec(ctx, `
				INSERT INTO course_cah_code (course_id, cah_code) VALUES ($1, $2)
			`, courseID, code)
			if err != nil {
				log.Fatalf("seed cah code for %s: %v", c.name, err)
			}
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO course_enrichment (course_id, employment_rate, median_salary)
			VALUES ($1, $2, $3)
		`, courseID, c.employmentRate, 24000+rand.Intn(12000))
		if err != nil {
			log.Fatalf("seed enrichment for %s: %v", c.name, err)
		}

		// ── 4. a little feedback history (C5) on the first course ──────
		if c.name == courses[0].name {
			_, err = tx.Exec(ctx, `
				INSERT INTO feedback (id, user_id, course_id, kind, notes, subjects, career_interests, created_at)
				VALUES ($1, $2, $3, 'positive', 'great open day', $4, $5, $6)
			`, newID(), userID, courseID,
				[]string{"Mathematics", "Physics", "Chemistry"}, []string{},
				daysAgo(10))
			if err != nil {
				log.Fatalf("seed feedback: %v", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}

	fmt.Println("seed complete")
}

// seedConfiguration loads the scoring configuration (C1) tables with the
// same defaults spec.md §3 documents, plus a minimal generic-term rule
// and career-conflict exception so the engine has something to exercise
// locally without a full operator-maintained dataset.
func seedConfiguration(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO recommendation_weight (id, subject_match, grade_match, preference_match, ranking, employability)
		VALUES (1, 0.35, 0.25, 0.15, 0.15, 0.10)
	`)
	if err != nil {
		return fmt.Errorf("recommendation_weight: %w", err)
	}

	for letter, value := range map[string]int{"A*": 8, "A": 7, "B": 6, "C": 5, "D": 4, "E": 3, "U": 0} {
		if _, err := tx.Exec(ctx, `INSERT INTO grade_value (grade_letter, value) VALUES ($1, $2)`, letter, value); err != nil {
			return fmt.Errorf("grade_value %s: %w", letter, err)
		}
	}

	relatedTerms := []struct{ subject, term, matchType string }{
		{"Mathematics", "mathematics", "synonym"},
		{"Physics", "physics", "synonym"},
		{"Physics", "science", "category"},
		{"Chemistry", "chemistry", "synonym"},
		{"Chemistry", "science", "category"},
		{"Biology", "science", "category"},
		{"Computer Science", "computing", "related"},
		{"Economics", "finance", "related"},
	}
	for _, t := range relatedTerms {
		if _, err := tx.Exec(ctx, `
			INSERT INTO subject_related_term (subject, related_term, match_type) VALUES ($1, $2, $3)
		`, t.subject, t.term, t.matchType); err != nil {
			return fmt.Errorf("subject_related_term %s/%s: %w", t.subject, t.term, err)
		}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO generic_term (term) VALUES ('science')`); err != nil {
		return fmt.Errorf("generic_term: %w", err)
	}
	for _, subject := range []string{"Physics", "Chemistry", "Biology"} {
		if _, err := tx.Exec(ctx, `
			INSERT INTO generic_term_rule (generic_term, allowed_subject) VALUES ('science', $1)
		`, subject); err != nil {
			return fmt.Errorf("generic_term_rule %s: %w", subject, err)
		}
	}

	for _, u := range universities {
		if _, err := tx.Exec(ctx, `
			INSERT INTO region_mapping (region, city) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, u.region, u.city); err != nil {
			return fmt.Errorf("region_mapping %s: %w", u.region, err)
		}
	}

	keywords := map[string][]string{
		"Business & Finance": {"business", "finance", "economics", "accounting"},
		"Engineering":         {"engineering", "mechanical", "electrical"},
	}
	for interest, terms := range keywords {
		for _, kw := range terms {
			if _, err := tx.Exec(ctx, `
				INSERT INTO career_interest_keyword (interest, keyword) VALUES ($1, $2)
			`, interest, kw); err != nil {
				return fmt.Errorf("career_interest_keyword %s/%s: %w", interest, kw, err)
			}
		}
	}

	conflicts := map[string][]string{
		"Business & Finance": {"computer", "physics", "chemistry"},
	}
	for interest, terms := range conflicts {
		for _, kw := range terms {
			if _, err := tx.Exec(ctx, `
				INSERT INTO career_interest_conflict (interest, keyword) VALUES ($1, $2)
			`, interest, kw); err != nil {
				return fmt.Errorf("career_interest_conflict %s/%s: %w", interest, kw, err)
			}
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO career_interest_conflict_exception (interest, course_name_like)
		VALUES ('Business & Finance', 'Business Studies')
	`); err != nil {
		return fmt.Errorf("career_interest_conflict_exception: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO feedback_setting (id, feedback_weight, feedback_decay_days, min_feedback_count, own_weight, peer_weight, positive_boost, negative_penalty)
		VALUES (1, 0.5, 90, 1, 0.6, 0.4, 0.2, 0.3)
	`); err != nil {
		return fmt.Errorf("feedback_setting: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO reason_threshold (id, top_rank_threshold, high_employment_percent)
		VALUES (1, 20, 85)
	`); err != nil {
		return fmt.Errorf("reason_threshold: %w", err)
	}

	return nil
}
