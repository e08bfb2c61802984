package service

import (
	"context"
	"fmt"

	"github.com/coursematch/recoengine/modules/catalogue/model"
	"github.com/coursematch/recoengine/modules/catalogue/ports"
)

// CatalogueService is a thin pass-through over the repository. It exists
// so callers (the recommend orchestrator, the admin listing handler)
// depend on a service boundary rather than the repository directly, and
// so that catalogue read failures are uniformly wrapped as
// ErrCatalogueUnavailable.
type CatalogueService struct {
	repo ports.CatalogueRepository
}

// NewCatalogueService creates a new catalogue service.
func NewCatalogueService(repo ports.CatalogueRepository) *CatalogueService {
	return &CatalogueService{repo: repo}
}

// ListCandidates returns every course matching filter. Any underlying
// repository error is request-fatal and reported as ErrCatalogueUnavailable.
func (s *CatalogueService) ListCandidates(ctx context.Context, filter model.CandidateFilter) ([]*model.Course, error) {
	courses, err := s.repo.ListCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCatalogueUnavailable, err)
	}
	return courses, nil
}
