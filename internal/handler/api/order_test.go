//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/handler/api"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/tests/common/builder"
	"marketplace-api/tests/common/httptest"
	commandsmock "marketplace-api/tests/mock/commands"
	queriesmock "marketplace-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
	authedUserID uuid.UUID
	authedRole   user.Role
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)

	s.authedUserID = uuid.New()
	s.authedRole = user.RoleCustomer
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.authedUserID)
		c.Set("user_role", s.authedRole)
		c.Next()
	}

	s.router.POST("/orders", authMiddleware, s.handler.Create)
	s.router.GET("/orders", authMiddleware, s.handler.List)
	s.router.GET("/orders/:id", authMiddleware, s.handler.Get)
	s.router.PATCH("/orders/:id", authMiddleware, s.handler.UpdateStatus)
	s.router.DELETE("/orders/:id", authMiddleware, s.handler.Delete)
	s.router.GET("/order-count/:business_user_id", s.handler.CountInProgress)
	s.router.GET("/completed-order-count/:business_user_id", s.handler.CountCompleted)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *OrderHandlerTestSuite) TestCreate() {
	url := "/orders"
	orderBuilder := builder.NewOrderBuilder()
	reqBody := orderBuilder.BuildCreateRequestDTO()

	s.Run("success: returns 201 with the materialized order", func() {
		view := orderBuilder.BuildView()
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), reqBody.OfferDetailID, s.authedUserID).
			Return(&commands.CreateOrderResult{OrderID: view.ID}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.authedUserID, "customer").
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("in_progress", resp.Status)
		s.Equal(view.Title, resp.Title)
	})

	s.Run("error: unknown package returns 404", func() {
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), reqBody.OfferDetailID, s.authedUserID).
			Return(nil, commands.ErrSourcePackageNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: missing offer_detail_id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestList / TestGet
// ================================================================================

func (s *OrderHandlerTestSuite) TestList() {
	s.Run("success: returns the caller's orders", func() {
		views := []*queries.OrderView{
			builder.NewOrderBuilder().BuildView(),
			builder.NewOrderBuilder().WithStatus("completed").BuildView(),
		}
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.authedUserID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "bearer-token")

		var resp []*queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()

	s.Run("success: party can read the order", func() {
		view := builder.NewOrderBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID, s.authedUserID, "customer").
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: outsider gets 403", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID, s.authedUserID, "customer").
			Return(nil, queries.ErrOrderAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestUpdateStatus / TestDelete
// ================================================================================

func (s *OrderHandlerTestSuite) TestUpdateStatus() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()
	reqBody := map[string]any{"status": "delivered"}

	s.Run("success: business party advances the status", func() {
		view := builder.NewOrderBuilder().WithStatus("delivered").BuildView()
		s.mockCommands.EXPECT().UpdateOrderStatus(gomock.Any(), orderID, "delivered", s.authedUserID, "customer").
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID, s.authedUserID, "customer").
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var resp queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("delivered", resp.Status)
	})

	s.Run("error: non-business actor gets 403", func() {
		s.mockCommands.EXPECT().UpdateOrderStatus(gomock.Any(), orderID, "delivered", s.authedUserID, "customer").
			Return(commands.ErrOrderNotOwnedByBiz).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: unknown status returns 400", func() {
		s.mockCommands.EXPECT().UpdateOrderStatus(gomock.Any(), orderID, "bogus", s.authedUserID, "customer").
			Return(order.ErrInvalidStatus).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "bogus"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: backward transition returns 400", func() {
		s.mockCommands.EXPECT().UpdateOrderStatus(gomock.Any(), orderID, "in_progress", s.authedUserID, "customer").
			Return(order.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "in_progress"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *OrderHandlerTestSuite) TestDelete() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()

	s.Run("success: admin delete returns 204", func() {
		s.mockCommands.EXPECT().DeleteOrder(gomock.Any(), orderID, "customer").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: non-admin gets 403", func() {
		s.mockCommands.EXPECT().DeleteOrder(gomock.Any(), orderID, "customer").
			Return(commands.ErrOrderDeleteForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestCounts
// ================================================================================

func (s *OrderHandlerTestSuite) TestCounts() {
	businessID := uuid.New()

	s.Run("success: in-progress count", func() {
		s.mockQueries.EXPECT().CountInProgress(gomock.Any(), businessID).
			Return(int64(4), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order-count/"+businessID.String(), nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"order_count":4`)
	})

	s.Run("success: completed count", func() {
		s.mockQueries.EXPECT().CountCompleted(gomock.Any(), businessID).
			Return(int64(9), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/completed-order-count/"+businessID.String(), nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"completed_order_count":9`)
	})

	s.Run("error: unknown business user returns 404", func() {
		s.mockQueries.EXPECT().CountInProgress(gomock.Any(), businessID).
			Return(int64(0), queries.ErrBusinessUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order-count/"+businessID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
