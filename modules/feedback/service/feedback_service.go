package service

import (
	"context"

	"github.com/coursematch/recoengine/modules/feedback/model"
	"github.com/coursematch/recoengine/modules/feedback/ports"
)

// FeedbackService implements the submit_feedback boundary operation.
// Peer similarity (§4.5) has no persisted student-profile store to join
// against, so every record snapshots the submitting student's subjects
// and career interests at submission time.
type FeedbackService struct {
	repo ports.FeedbackRepository
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(repo ports.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// SubmitFeedback validates and persists a feedback record.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, req model.SubmitFeedbackRequest) error {
	if req.Kind != model.KindPositive && req.Kind != model.KindNegative {
		return model.ErrInvalidKind
	}

	exists, err := s.repo.CourseExists(ctx, req.CourseID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrUnknownCourse
	}

	record := &model.FeedbackRecord{
		UserID:          req.UserID,
		CourseID:        req.CourseID,
		Kind:            req.Kind,
		Notes:           model.TruncateNotes(req.Notes),
		Subjects:        req.Subjects,
		CareerInterests: req.CareerInterests,
	}

	return s.repo.Create(ctx, record)
}
