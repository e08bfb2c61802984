package handler

import (
	"net/http"

	"github.com/coursematch/recoengine/internal/platform/auth"
	httpPlatform "github.com/coursematch/recoengine/internal/platform/http"
	"github.com/coursematch/recoengine/modules/feedback/model"
	"github.com/coursematch/recoengine/modules/feedback/service"
	"github.com/gin-gonic/gin"
)

// FeedbackHandler exposes the submit_feedback boundary operation.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// RegisterRoutes registers the submit_feedback route, requiring auth.
func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.POST("/recommendations/feedback", requireAuth, h.Submit)
}

// Submit godoc
// @Summary Submit course feedback
// @Description Record positive or negative feedback on a recommended course
// @Tags recommendations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.SubmitFeedbackRequest true "Feedback details"
// @Success 201 {object} map[string]bool
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 401 {object} httpPlatform.ErrorResponse
// @Failure 404 {object} httpPlatform.ErrorResponse
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /recommendations/feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	userID, ok := auth.MustGetUserID(c)
	if !ok {
		return
	}

	var req model.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}
	req.UserID = userID

	if err := h.service.SubmitFeedback(c.Request.Context(), req); err != nil {
		httpPlatform.RespondWithError(c, statusFor(err), string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusCreated, gin.H{"ok": true})
}

func statusFor(err error) int {
	switch model.GetErrorCode(err) {
	case model.CodeUnknownCourse:
		return http.StatusNotFound
	case model.CodeInvalidKind:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
