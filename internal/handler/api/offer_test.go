//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/handler/api"
	resdto "marketplace-api/internal/handler/dto/response"
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

type OfferHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOfferCommands
	mockQueries  *queriesmock.MockOfferQueries
	handler      *api.OfferHandler
	authedUserID uuid.UUID
}

func (s *OfferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOfferCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOfferQueries(s.mockCtrl)
	s.handler = api.NewOfferHandler(s.mockCommands, s.mockQueries)

	s.authedUserID = uuid.New()
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.authedUserID)
		c.Set("user_role", user.RoleBusiness)
		c.Next()
	}

	s.router.POST("/offers", authMiddleware, s.handler.Create)
	s.router.GET("/offers", s.handler.List)
	s.router.GET("/offers/:id", s.handler.Get)
	s.router.GET("/offerdetails/:id", s.handler.GetDetail)
	s.router.PATCH("/offers/:id", authMiddleware, s.handler.Update)
	s.router.DELETE("/offers/:id", authMiddleware, s.handler.Delete)
}

func (s *OfferHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOfferHandlerSuite(t *testing.T) {
	suite.Run(t, new(OfferHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *OfferHandlerTestSuite) TestCreate() {
	url := "/offers"
	reqBody := builder.NewOfferBuilder().BuildCreateRequestBody()

	s.Run("success: returns 201 with the new offer id", func() {
		offerID := uuid.New()
		s.mockCommands.EXPECT().CreateOffer(gomock.Any(), gomock.Any(), s.authedUserID).
			Return(&commands.CreateOfferResult{OfferID: offerID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp resdto.CreateOfferResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(offerID, resp.ID)
	})

	s.Run("success: numeric fields accept quoted strings", func() {
		body := builder.NewOfferBuilder().BuildCreateRequestBody()
		details := body["details"].([]map[string]any)
		details[0]["revisions"] = "3"
		details[0]["price"] = "49.99"

		s.mockCommands.EXPECT().CreateOffer(gomock.Any(), gomock.Any(), s.authedUserID).
			Return(&commands.CreateOfferResult{OfferID: uuid.New()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	})

	s.Run("error: non-numeric price names the field", func() {
		body := builder.NewOfferBuilder().BuildCreateRequestBody()
		details := body["details"].([]map[string]any)
		details[1]["price"] = "abc"

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "details[1].price")
	})

	s.Run("error: missing title returns 400", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("title", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: wrong package count surfaces domain error", func() {
		s.mockCommands.EXPECT().CreateOffer(gomock.Any(), gomock.Any(), s.authedUserID).
			Return(nil, commands.UnknownTierError{Tier: "deluxe"}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "deluxe")
	})

	s.Run("error: unauthenticated returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *OfferHandlerTestSuite) TestList() {
	s.Run("success: returns count and results envelope", func() {
		items := []*queries.OfferListItem{
			builder.NewOfferBuilder().BuildListItem(),
			builder.NewOfferBuilder().BuildListItem(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(items, int64(12), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers", nil, "")

		var resp resdto.OfferListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(int64(12), resp.Count)
		s.Len(resp.Results, 2)
	})

	s.Run("success: empty page yields empty results array", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, int64(0), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers?page=99", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"results":[]`)
	})

	s.Run("success: filters are forwarded", func() {
		creatorID := uuid.New()
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filters queries.OfferFilters, ordering queries.OfferOrdering, page queries.Page) ([]*queries.OfferListItem, int64, error) {
				s.Require().NotNil(filters.CreatorID)
				s.Equal(creatorID, *filters.CreatorID)
				s.Require().NotNil(filters.MaxDeliveryTime)
				s.Equal(7, *filters.MaxDeliveryTime)
				s.Equal("min_price", ordering.Field)
				s.False(ordering.Descending)
				return nil, 0, nil
			}).Times(1)

		url := "/offers?creator_id=" + creatorID.String() + "&max_delivery_time=7&ordering=min_price"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: non-numeric min_price returns 400 naming the field", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers?min_price=cheap", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "min_price")
	})

	s.Run("error: unsupported ordering returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers?ordering=price", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestGet / TestGetDetail
// ================================================================================

func (s *OfferHandlerTestSuite) TestGet() {
	s.Run("success: returns the offer view", func() {
		view := builder.NewOfferBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers/"+view.ID.String(), nil, "")

		var resp queries.OfferView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
		s.Require().NotNil(resp.MinPrice)
		s.Require().NotNil(resp.MinDeliveryTime)
		s.Equal(5, *resp.MinDeliveryTime)
	})

	s.Run("error: unknown offer returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, queries.ErrOfferNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *OfferHandlerTestSuite) TestGetDetail() {
	s.Run("success: returns the package body", func() {
		view := builder.NewOfferBuilder().BuildDetailView(1)
		s.mockQueries.EXPECT().GetDetailByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerdetails/"+view.ID.String(), nil, "")

		var resp queries.DetailView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("standard", resp.OfferType)
		s.Equal(5, resp.Revisions)
	})

	s.Run("error: unknown package returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetDetailByID(gomock.Any(), id).
			Return(nil, queries.ErrDetailNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerdetails/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestUpdate / TestDelete
// ================================================================================

func (s *OfferHandlerTestSuite) TestUpdate() {
	offerID := uuid.New()
	url := "/offers/" + offerID.String()
	reqBody := map[string]any{
		"title": "Refreshed Title",
		"details": []map[string]any{
			{"offer_type": "basic", "price": 75},
		},
	}

	s.Run("success: returns the refreshed view", func() {
		view := builder.NewOfferBuilder().WithTitle("Refreshed Title").BuildView()
		s.mockCommands.EXPECT().UpdateOffer(gomock.Any(), offerID, gomock.Any(), s.authedUserID).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), offerID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var resp queries.OfferView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("Refreshed Title", resp.Title)
	})

	s.Run("error: not the owner returns 403", func() {
		s.mockCommands.EXPECT().UpdateOffer(gomock.Any(), offerID, gomock.Any(), s.authedUserID).
			Return(commands.ErrOfferNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: unknown tier in details returns 400", func() {
		s.mockCommands.EXPECT().UpdateOffer(gomock.Any(), offerID, gomock.Any(), s.authedUserID).
			Return(commands.UnknownTierError{Tier: "gold"}).Times(1)

		body := map[string]any{"details": []map[string]any{{"offer_type": "gold"}}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "gold")
	})
}

func (s *OfferHandlerTestSuite) TestDelete() {
	offerID := uuid.New()
	url := "/offers/" + offerID.String()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().DeleteOffer(gomock.Any(), offerID, s.authedUserID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: ordered package blocks deletion with 409", func() {
		s.mockCommands.EXPECT().DeleteOffer(gomock.Any(), offerID, s.authedUserID).
			Return(commands.ErrOfferInUse).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: unknown offer returns 404", func() {
		s.mockCommands.EXPECT().DeleteOffer(gomock.Any(), offerID, s.authedUserID).
			Return(commands.ErrOfferNotFoundWrite).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
