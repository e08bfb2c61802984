package service

import (
	"context"
	"errors"
	"testing"

	"github.com/coursematch/recoengine/modules/catalogue/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	courses []*model.Course
	err     error
}

func (s *stubRepo) ListCandidates(ctx context.Context, filter model.CandidateFilter) ([]*model.Course, error) {
	return s.courses, s.err
}

func TestCatalogueService_ListCandidates(t *testing.T) {
	t.Run("returns courses from the repository", func(t *testing.T) {
		repo := &stubRepo{courses: []*model.Course{{CourseID: "course-1"}}}
		svc := NewCatalogueService(repo)

		courses, err := svc.ListCandidates(context.Background(), model.CandidateFilter{})

		require.NoError(t, err)
		require.Len(t, courses, 1)
	})

	t.Run("wraps a repository error as ErrCatalogueUnavailable", func(t *testing.T) {
		repo := &stubRepo{err: errors.New("connection refused")}
		svc := NewCatalogueService(repo)

		_, err := svc.ListCandidates(context.Background(), model.CandidateFilter{})

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrCatalogueUnavailable))
	})
}
