//go:build e2e

package order_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"marketplace-api/internal/domain/user"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/pkg/jwt"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/tests/common/builder"
	"marketplace-api/tests/common/httptest"
	"marketplace-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	ordersURL = "/api/orders"
	offersURL = "/api/offers"
)

type orderSuite struct {
	e2e.SharedSuite
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(orderSuite))
}

// registerUser signs up through the API and returns the issued token.
func (s *orderSuite) registerUser(username, email, userType string) (string, uuid.UUID) {
	body := map[string]any{
		"username":          username,
		"email":             email,
		"password":          "password123",
		"repeated_password": "password123",
		"type":              userType,
	}
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/registration", body, "")

	var resp resdto.AuthResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
	require.NotEmpty(s.T(), resp.Token)
	return resp.Token, resp.UserID
}

// adminUser inserts an admin row directly (admin is not a registerable type)
// and mints a matching token.
func (s *orderSuite) adminUser() (string, uuid.UUID) {
	adminID := uuid.New()
	_, err := s.DB.Exec(context.Background(),
		`INSERT INTO users (id, username, email, password_hash, role) VALUES ($1, 'admin', 'admin@example.com', 'x', 'admin')`,
		adminID)
	require.NoError(s.T(), err)

	duration, err := time.ParseDuration(s.Config.JWT.Duration)
	require.NoError(s.T(), err)
	token, err := jwt.NewService(s.Config.JWT.Secret, duration).GenerateToken(adminID, user.RoleAdmin)
	require.NoError(s.T(), err)
	return token, adminID
}

func (s *orderSuite) createOffer(token string) queries.OfferView {
	body := builder.NewOfferBuilder().BuildCreateRequestBody()
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, offersURL, body, token)

	var created resdto.CreateOfferResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, offersURL+"/"+created.ID.String(), nil, "")
	var view queries.OfferView
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
	require.Len(s.T(), view.Details, 3)
	return view
}

// detailByTier walks the offer's package refs until it finds the tier.
func (s *orderSuite) detailByTier(view queries.OfferView, tier string) queries.DetailView {
	for _, ref := range view.Details {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/offerdetails/"+ref.ID.String(), nil, "")
		var detail queries.DetailView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &detail)
		if detail.OfferType == tier {
			return detail
		}
	}
	s.T().Fatalf("offer has no %s package", tier)
	return queries.DetailView{}
}

func (s *orderSuite) placeOrder(token string, detailID uuid.UUID) queries.OrderView {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL,
		map[string]any{"offer_detail_id": detailID.String()}, token)

	var view queries.OrderView
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &view)
	return view
}

func (s *orderSuite) TestOrderLifecycle() {
	s.Run("customer orders a package and the business advances it", func() {
		bizToken, bizID := s.registerUser("designpro", "biz@example.com", "business")
		custToken, custID := s.registerUser("buyer", "cust@example.com", "customer")

		offer := s.createOffer(bizToken)
		pkg := s.detailByTier(offer, "standard")

		order := s.placeOrder(custToken, pkg.ID)
		s.Equal(custID, order.CustomerUserID)
		s.Equal(bizID, order.BusinessUserID)
		s.Equal(pkg.Title, order.Title)
		s.Equal(pkg.Revisions, order.Revisions)
		s.Equal(pkg.DeliveryTimeInDays, order.DeliveryTimeInDays)
		s.True(pkg.Price.Equal(order.Price))
		s.Equal(pkg.OfferType, order.OfferType)
		s.Equal(pkg.Features, order.Features)
		s.Equal("in_progress", order.Status)

		countRec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/order-count/"+bizID.String(), nil, custToken)
		var count resdto.OrderCountResponse
		httptest.AssertSuccessResponse(s.T(), countRec, http.StatusOK, &count)
		s.Equal(int64(1), count.OrderCount)

		orderURL := ordersURL + "/" + order.ID.String()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, orderURL, map[string]any{"status": "delivered"}, bizToken)
		var updated queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &updated)
		s.Equal("delivered", updated.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, orderURL, map[string]any{"status": "completed"}, bizToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &updated)
		s.Equal("completed", updated.Status)

		// completed is terminal
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, orderURL, map[string]any{"status": "delivered"}, bizToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")

		countRec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/completed-order-count/"+bizID.String(), nil, custToken)
		var completed resdto.CompletedOrderCountResponse
		httptest.AssertSuccessResponse(s.T(), countRec, http.StatusOK, &completed)
		s.Equal(int64(1), completed.CompletedOrderCount)

		countRec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/order-count/"+bizID.String(), nil, custToken)
		httptest.AssertSuccessResponse(s.T(), countRec, http.StatusOK, &count)
		s.Equal(int64(0), count.OrderCount)
	})

	s.Run("only the owning business advances the status", func() {
		bizToken, _ := s.registerUser("designpro", "biz@example.com", "business")
		custToken, _ := s.registerUser("buyer", "cust@example.com", "customer")
		otherBizToken, _ := s.registerUser("otherbiz", "other@example.com", "business")
		adminToken, _ := s.adminUser()

		offer := s.createOffer(bizToken)
		pkg := s.detailByTier(offer, "basic")
		order := s.placeOrder(custToken, pkg.ID)

		orderURL := ordersURL + "/" + order.ID.String()
		body := map[string]any{"status": "delivered"}

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, orderURL, body, custToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, orderURL, body, otherBizToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, orderURL, body, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, orderURL, body, bizToken)
		var updated queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &updated)
		s.Equal("delivered", updated.Status)
	})

	s.Run("count endpoints require authentication", func() {
		_, bizID := s.registerUser("designpro", "biz@example.com", "business")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/order-count/"+bizID.String(), nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/completed-order-count/"+bizID.String(), nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *orderSuite) TestFeatureIdentity() {
	s.Run("a label shared by package and order resolves to one feature row", func() {
		bizToken, _ := s.registerUser("designpro", "biz@example.com", "business")
		custToken, _ := s.registerUser("buyer", "cust@example.com", "customer")

		offer := s.createOffer(bizToken)
		pkg := s.detailByTier(offer, "standard")
		order := s.placeOrder(custToken, pkg.ID)

		ctx := context.Background()
		var featureRows int
		err := s.DB.QueryRow(ctx, `SELECT count(*) FROM features WHERE name = 'Logo Design'`).Scan(&featureRows)
		require.NoError(s.T(), err)
		s.Equal(1, featureRows)

		// the order link and the package link point at the same row
		var shared int
		err = s.DB.QueryRow(ctx, `
			SELECT count(*)
			FROM order_features of_
			JOIN offer_detail_features odf ON odf.feature_id = of_.feature_id
			JOIN features f ON f.id = of_.feature_id
			WHERE of_.order_id = $1 AND odf.offer_detail_id = $2 AND f.name = 'Logo Design'`,
			order.ID, pkg.ID).Scan(&shared)
		require.NoError(s.T(), err)
		s.Equal(1, shared)
	})
}

func (s *orderSuite) TestProtectedPackageDelete() {
	s.Run("an offer with an ordered package cannot be deleted", func() {
		bizToken, _ := s.registerUser("designpro", "biz@example.com", "business")
		custToken, _ := s.registerUser("buyer", "cust@example.com", "customer")
		adminToken, _ := s.adminUser()

		offer := s.createOffer(bizToken)
		pkg := s.detailByTier(offer, "premium")
		order := s.placeOrder(custToken, pkg.ID)

		offerURL := offersURL + "/" + offer.ID.String()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, offerURL, nil, bizToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, ordersURL+"/"+order.ID.String(), nil, adminToken)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, offerURL, nil, bizToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *orderSuite) TestCreateRoleGates() {
	s.Run("create endpoints enforce their role gates", func() {
		bizToken, bizID := s.registerUser("designpro", "biz@example.com", "business")
		custToken, _ := s.registerUser("buyer", "cust@example.com", "customer")
		adminToken, _ := s.adminUser()

		offer := s.createOffer(bizToken)
		pkg := s.detailByTier(offer, "basic")

		offerBody := builder.NewOfferBuilder().BuildCreateRequestBody()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, offersURL, offerBody, adminToken)
		s.Equal(http.StatusForbidden, rec.Code)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, offersURL, offerBody, custToken)
		s.Equal(http.StatusForbidden, rec.Code)

		orderBody := map[string]any{"offer_detail_id": pkg.ID.String()}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL, orderBody, adminToken)
		s.Equal(http.StatusForbidden, rec.Code)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL, orderBody, bizToken)
		s.Equal(http.StatusForbidden, rec.Code)

		reviewBody := map[string]any{"business_user_id": bizID.String(), "rating": 5, "description": "Great work"}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", reviewBody, adminToken)
		s.Equal(http.StatusForbidden, rec.Code)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", reviewBody, bizToken)
		s.Equal(http.StatusForbidden, rec.Code)
	})
}
