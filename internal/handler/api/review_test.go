//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/handler/api"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/tests/common/builder"
	"marketplace-api/tests/common/httptest"
	"marketplace-api/tests/common/testutil"
	commandsmock "marketplace-api/tests/mock/commands"
	queriesmock "marketplace-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReviewCommands
	mockQueries  *queriesmock.MockReviewQueries
	handler      *api.ReviewHandler
}

func (s *ReviewHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReviewCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReviewQueries(s.mockCtrl)
	s.handler = api.NewReviewHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/reviews", authMiddleware, s.handler.Create)
	s.router.GET("/reviews", authMiddleware, s.handler.List)
	s.router.GET("/reviews/:id", authMiddleware, s.handler.Get)
	s.router.PATCH("/reviews/:id", authMiddleware, s.handler.Update)
	s.router.DELETE("/reviews/:id", authMiddleware, s.handler.Delete)
}

func (s *ReviewHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}

type testCaseReview struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReviewHandlerTestSuite) TestCreate() {
	url := "/reviews"

	reqBody := builder.NewReviewBuilder().BuildCreateRequestDTO()
	returnView := builder.NewReviewBuilder().BuildView()
	expectedResult := &commands.CreateReviewResult{ReviewID: returnView.ID}

	validation := []testCaseReview{
		{name: "rating boundary OK (1)", mutate: testutil.Field("rating", 1), expectCode: http.StatusCreated},
		{name: "rating boundary OK (5)", mutate: testutil.Field("rating", 5), expectCode: http.StatusCreated},
		{name: "rating boundary invalid (0)", mutate: testutil.Field("rating", 0), expectCode: http.StatusBadRequest},
		{name: "rating boundary invalid (6)", mutate: testutil.Field("rating", 6), expectCode: http.StatusBadRequest},
		{name: "description length OK (255 chars)", mutate: testutil.Field("description", strings.Repeat("a", 255)), expectCode: http.StatusCreated},
		{name: "description length invalid (256 chars)", mutate: testutil.Field("description", strings.Repeat("a", 256)), expectCode: http.StatusBadRequest},
		{name: "missing field: business_user", mutate: testutil.Field("business_user", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: rating", mutate: testutil.Field("rating", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: description", mutate: testutil.Field("description", nil), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateReview(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp queries.ReviewView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(returnView.ID, resp.ID)
		s.Equal(returnView.Rating, resp.Rating)
	})

	s.Run("validation boundaries", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().CreateReview(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(expectedResult, nil).Times(1)
					s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
						Return(returnView, nil).Times(1)
				}

				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: duplicate review returns 400", func() {
		s.mockCommands.EXPECT().CreateReview(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDuplicateReview).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: non-business target returns 400", func() {
		s.mockCommands.EXPECT().CreateReview(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrReviewTargetInvalid).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: unauthenticated returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ReviewHandlerTestSuite) TestList() {
	s.Run("success: returns all reviews", func() {
		views := []*queries.ReviewView{
			builder.NewReviewBuilder().BuildView(),
			builder.NewReviewBuilder().AsPoorRating().BuildView(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews", nil, "bearer-token")

		var resp []*queries.ReviewView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
	})

	s.Run("success: filters by business user", func() {
		businessID := uuid.New()
		s.mockQueries.EXPECT().
			List(gomock.Any(), queries.ReviewFilters{BusinessUserID: &businessID}, gomock.Any()).
			Return([]*queries.ReviewView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews?business_user_id="+businessID.String(), nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: malformed business_user_id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews?business_user_id=not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "business_user_id")
	})

	s.Run("error: unsupported ordering returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews?ordering=created_at", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestUpdate / TestDelete
// ================================================================================

func (s *ReviewHandlerTestSuite) TestUpdate() {
	reviewID := uuid.New()
	url := "/reviews/" + reviewID.String()
	reqBody := builder.NewReviewBuilder().WithRating(3).BuildUpdateRequestDTO()

	s.Run("success: returns updated view", func() {
		returnView := builder.NewReviewBuilder().WithRating(3).BuildView()
		s.mockCommands.EXPECT().UpdateReview(gomock.Any(), reviewID, gomock.Any(), gomock.Any()).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), reviewID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var resp queries.ReviewView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(3, resp.Rating)
	})

	s.Run("error: not the author returns 403", func() {
		s.mockCommands.EXPECT().UpdateReview(gomock.Any(), reviewID, gomock.Any(), gomock.Any()).
			Return(commands.ErrReviewNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: unknown review returns 404", func() {
		s.mockCommands.EXPECT().UpdateReview(gomock.Any(), reviewID, gomock.Any(), gomock.Any()).
			Return(commands.ErrReviewNotFoundWrite).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *ReviewHandlerTestSuite) TestDelete() {
	reviewID := uuid.New()
	url := "/reviews/" + reviewID.String()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().DeleteReview(gomock.Any(), reviewID, gomock.Any(), gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: not the author returns 403", func() {
		s.mockCommands.EXPECT().DeleteReview(gomock.Any(), reviewID, gomock.Any(), gomock.Any()).
			Return(commands.ErrReviewNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: malformed id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reviews/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
