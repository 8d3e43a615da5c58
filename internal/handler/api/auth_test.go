//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/handler/api"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/pkg/config"
	"marketplace-api/internal/pkg/jwt"
	"marketplace-api/internal/usecase/commands"
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

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockUsers    *queriesmock.MockUserReadStore
	handler      *api.AuthHandler
	authedUserID uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockUsers = queriesmock.NewMockUserReadStore(s.mockCtrl)

	jwtService := jwt.NewService("test-secret", time.Hour)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockUsers, jwtService, config.NewTestConfig())

	s.authedUserID = uuid.New()
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.authedUserID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/registration", s.handler.Register)
	s.router.POST("/login", s.handler.Login)
	s.router.POST("/logout", authMiddleware, s.handler.Logout)
	s.router.GET("/me", authMiddleware, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

// ================================================================================
// TestRegister
// ================================================================================

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/registration"
	reqBody := builder.NewUserBuilder().BuildRegistrationDTO()

	s.Run("success: returns 201 with token and cookie", func() {
		result := &commands.AuthResult{
			Token:    "issued-token",
			UserID:   uuid.New(),
			Username: reqBody.Username,
			Email:    reqBody.Email,
			Role:     user.RoleCustomer,
		}
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal("issued-token", resp.Token)
		s.Equal(reqBody.Username, resp.Username)
		s.NotEmpty(rec.Header().Get("Set-Cookie"))
	})

	s.Run("error: missing required fields return 400", func() {
		for _, field := range []string{"username", "email", "password", "repeated_password", "type"} {
			body := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
			s.Equal(http.StatusBadRequest, rec.Code, "field %s", field)
		}
	})

	s.Run("error: password mismatch returns 400", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrPasswordMismatch).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("repeated_password", "different"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: taken username returns 400", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrUserAlreadyExists).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestLogin
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/login"
	reqBody := builder.NewUserBuilder().BuildLoginDTO()

	s.Run("success: returns 200 with token and cookie", func() {
		result := &commands.AuthResult{
			Token:    "issued-token",
			UserID:   uuid.New(),
			Username: reqBody.Username,
			Email:    "test@example.com",
			Role:     user.RoleCustomer,
		}
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("issued-token", resp.Token)
		s.NotEmpty(rec.Header().Get("Set-Cookie"))
	})

	s.Run("error: wrong credentials return 401", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: inactive account returns 403", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrUserInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: missing password returns 400", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("password", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestMe / TestLogout
// ================================================================================

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success: returns current user", func() {
		view := builder.NewUserBuilder().BuildAuthorizedView()
		view.ID = s.authedUserID
		s.mockUsers.EXPECT().FindAuthorizedByID(gomock.Any(), s.authedUserID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "bearer-token")

		var resp resdto.CurrentUserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.Username, resp.Username)
	})

	s.Run("error: unauthenticated returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: clears the access token cookie", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/logout", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Header().Get("Set-Cookie"), "Max-Age=0")
	})
}
