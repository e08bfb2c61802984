package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coursematch/recoengine/internal/platform/logger"
	catalogueModel "github.com/coursematch/recoengine/modules/catalogue/model"
	catalogueService "github.com/coursematch/recoengine/modules/catalogue/service"
	configmodel "github.com/coursematch/recoengine/modules/config/model"
	configservice "github.com/coursematch/recoengine/modules/config/service"
	feedbackmodel "github.com/coursematch/recoengine/modules/feedback/model"
	"github.com/coursematch/recoengine/modules/recommend/model"
	recommendservice "github.com/coursematch/recoengine/modules/recommend/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogueRepo struct {
	courses []*catalogueModel.Course
	err     error
}

func (s *stubCatalogueRepo) ListCandidates(ctx context.Context, filter catalogueModel.CandidateFilter) ([]*catalogueModel.Course, error) {
	return s.courses, s.err
}

type stubConfigRepo struct {
	snap *configmodel.Snapshot
}

func (s *stubConfigRepo) Load(ctx context.Context) (*configmodel.Snapshot, error) {
	return s.snap, nil
}

type stubFeedbackRepo struct{}

func (s *stubFeedbackRepo) Create(ctx context.Context, record *feedbackmodel.FeedbackRecord) error {
	return nil
}

func (s *stubFeedbackRepo) CourseExists(ctx context.Context, courseID string) (bool, error) {
	return true, nil
}

func (s *stubFeedbackRepo) ListForCourses(ctx context.Context, courseIDs []string, since time.Time) (map[string][]*feedbackmodel.FeedbackRecord, error) {
	return map[string][]*feedbackmodel.FeedbackRecord{}, nil
}

func testSnapshot() *configmodel.Snapshot {
	return &configmodel.Snapshot{
		Weights: configmodel.Weights{
			SubjectMatch: 0.35, GradeMatch: 0.25, PreferenceMatch: 0.15,
			Ranking: 0.15, Employability: 0.10,
		},
		GradeValue:       map[string]int{"A*": 8, "A": 7, "B": 6, "C": 5, "D": 4, "E": 3, "U": 0},
		GenericTerms:     map[string]bool{},
		GenericTermRules: map[string]configmodel.GenericTermRule{},
		Feedback: configmodel.FeedbackSettings{
			FeedbackWeight: 0.5, DecayDays: 90, MinFeedbackCount: 1,
			OwnWeight: 0.6, PeerWeight: 0.4, PositiveBoost: 0.2, NegativePenalty: 0.3,
		},
		Reasons: configmodel.ReasonThresholds{TopRankThreshold: 20, HighEmploymentPercent: 90},
	}
}

func newHandler(t *testing.T, courses []*catalogueModel.Course, catalogueErr error) *RecommendHandler {
	t.Helper()
	store := configservice.NewConfigStore(&stubConfigRepo{snap: testSnapshot()})
	require.NoError(t, store.Load(context.Background()))

	catSvc := catalogueService.NewCatalogueService(&stubCatalogueRepo{courses: courses, err: catalogueErr})
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	recSvc := recommendservice.NewRecommendService(store, catSvc, &stubFeedbackRepo{}, log)

	return NewRecommendHandler(recSvc, catSvc)
}

func performRequest(h *RecommendHandler, method, path string, body []byte) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/recommendations", h.Recommend)
	router.GET("/catalogue/courses", h.ListCourses)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRecommendHandler_Recommend_Success(t *testing.T) {
	course := &catalogueModel.Course{
		CourseID: "course-1",
		Name:     "BSc Physics",
		RequiredSubjects: []catalogueModel.RequiredSubject{
			{Subject: "Mathematics", RequiredGrade: "A"},
			{Subject: "Physics", RequiredGrade: "B"},
		},
	}
	h := newHandler(t, []*catalogueModel.Course{course}, nil)

	body, _ := json.Marshal(model.RecommendRequest{
		Profile: model.StudentProfile{
			Subjects:        []string{"Mathematics", "Physics", "Chemistry"},
			PredictedGrades: map[string]string{"Mathematics": "A*", "Physics": "A"},
		},
	})

	rec := performRequest(h, http.MethodPost, "/recommendations", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result model.RecommendationList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "course-1", result.Recommendations[0].Course.CourseID)
}

func TestRecommendHandler_Recommend_InvalidBody(t *testing.T) {
	h := newHandler(t, nil, nil)
	rec := performRequest(h, http.MethodPost, "/recommendations", []byte("not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendHandler_Recommend_CatalogueUnavailable(t *testing.T) {
	h := newHandler(t, nil, assert.AnError)
	body, _ := json.Marshal(model.RecommendRequest{Profile: model.StudentProfile{Subjects: []string{"Mathematics"}}})
	rec := performRequest(h, http.MethodPost, "/recommendations", body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecommendHandler_ListCourses(t *testing.T) {
	course := &catalogueModel.Course{CourseID: "course-1", Name: "BSc Physics"}
	h := newHandler(t, []*catalogueModel.Course{course}, nil)

	rec := performRequest(h, http.MethodGet, "/catalogue/courses?subject=physics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var courses []*catalogueModel.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "course-1", courses[0].CourseID)
}
