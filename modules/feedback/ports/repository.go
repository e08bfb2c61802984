package ports

import (
	"context"
	"time"

	"github.com/coursematch/recoengine/modules/feedback/model"
)

// FeedbackRepository is the append-only store behind the Feedback Engine
// (C5). ListForCourses is the only bulk-read path the engine uses: it
// fetches every feedback record for a set of candidate course IDs in a
// single query, never one course at a time.
type FeedbackRepository interface {
	Create(ctx context.Context, record *model.FeedbackRecord) error
	CourseExists(ctx context.Context, courseID string) (bool, error)
	// ListForCourses returns every feedback record created on or after
	// since, for any of courseIDs, keyed by course_id.
	ListForCourses(ctx context.Context, courseIDs []string, since time.Time) (map[string][]*model.FeedbackRecord, error)
}
