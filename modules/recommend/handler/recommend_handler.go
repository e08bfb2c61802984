// Package handler exposes the recommend engine's entry point (§6) over
// HTTP, plus a thin admin listing over the catalogue reader for
// operators to sanity-check enrichment joins.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coursematch/recoengine/internal/platform/auth"
	httpPlatform "github.com/coursematch/recoengine/internal/platform/http"
	sentryPlatform "github.com/coursematch/recoengine/internal/platform/sentry"
	catalogueModel "github.com/coursematch/recoengine/modules/catalogue/model"
	catalogueService "github.com/coursematch/recoengine/modules/catalogue/service"
	"github.com/coursematch/recoengine/modules/recommend/model"
	"github.com/coursematch/recoengine/modules/recommend/service"
	"github.com/gin-gonic/gin"
)

// RecommendHandler wires the RecommendService into Gin routes.
type RecommendHandler struct {
	service   *service.RecommendService
	catalogue *catalogueService.CatalogueService
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(service *service.RecommendService, catalogue *catalogueService.CatalogueService) *RecommendHandler {
	return &RecommendHandler{service: service, catalogue: catalogue}
}

// RegisterRoutes registers the recommendation routes. Authentication is
// optional on the recommend path (user_id only drives personalization,
// per §6) but required for feedback submission.
func (h *RecommendHandler) RegisterRoutes(router *gin.RouterGroup, optionalAuth, requireAuth gin.HandlerFunc) {
	router.POST("/recommendations", optionalAuth, h.Recommend)
	router.GET("/catalogue/courses", requireAuth, h.ListCourses)
}

// Recommend godoc
// @Summary Get course recommendations
// @Description Score and rank the course catalogue against a student profile
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body model.RecommendRequest true "Student profile and options"
// @Success 200 {object} model.RecommendationList
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 503 {object} httpPlatform.ErrorResponse
// @Router /recommendations [post]
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req model.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	if userID, ok := auth.GetUserID(c); ok {
		req.Profile.UserID = userID
	}

	result, err := h.service.Recommend(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrCatalogueUnavailable) {
			sentryPlatform.CaptureRequestFatal(err, "CatalogueUnavailable", map[string]string{"endpoint": "recommendations"})
		}
		httpPlatform.RespondWithError(c, statusForRecommend(err), string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, result)
}

// ListCourses godoc
// @Summary List catalogue courses (admin/debug)
// @Description Thin listing over the catalogue reader's candidate query; not part of the scoring path
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Param subject query string false "Subject keyword filter"
// @Param university query string false "University filter"
// @Param max_fee query int false "Maximum annual fee"
// @Param limit query int false "Result limit"
// @Success 200 {array} catalogueModel.Course
// @Failure 503 {object} httpPlatform.ErrorResponse
// @Router /catalogue/courses [get]
func (h *RecommendHandler) ListCourses(c *gin.Context) {
	filter := catalogueModel.CandidateFilter{
		SubjectKeyword: c.Query("subject"),
		University:     c.Query("university"),
	}
	if v, ok := queryInt(c, "max_fee"); ok {
		filter.MaxFee = &v
	}
	if v, ok := queryInt(c, "limit"); ok {
		filter.Limit = v
	}

	courses, err := h.catalogue.ListCandidates(c.Request.Context(), filter)
	if err != nil {
		sentryPlatform.CaptureRequestFatal(err, "CatalogueUnavailable", map[string]string{"endpoint": "catalogue_courses"})
		httpPlatform.RespondWithError(c, http.StatusServiceUnavailable, string(model.CodeCatalogueUnavailable), "The course catalogue is temporarily unavailable")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, courses)
}

func statusForRecommend(err error) int {
	if errors.Is(err, model.ErrCatalogueUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
