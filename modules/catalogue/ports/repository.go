package ports

import (
	"context"

	"github.com/coursematch/recoengine/modules/catalogue/model"
)

// CatalogueRepository batch-fetches candidate courses and their
// enrichment. Implementations must never issue a per-course round trip:
// the course query plus a small constant number of bulk enrichment
// queries keyed by course_id are the only queries permitted.
type CatalogueRepository interface {
	// ListCandidates returns every course matching filter, fully
	// enriched, in one pass.
	ListCandidates(ctx context.Context, filter model.CandidateFilter) ([]*model.Course, error)
}
