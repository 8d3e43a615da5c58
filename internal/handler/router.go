package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/handler/api"
	"marketplace-api/internal/handler/middleware"
	"marketplace-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Offer    *api.OfferHandler
	Order    *api.OrderHandler
	Review   *api.ReviewHandler
	Profile  *api.ProfileHandler
	BaseInfo *api.BaseInfoHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/registration", Handler: h.Auth.Register},
			{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			{Method: http.MethodGet, Path: "/base-info", Handler: h.BaseInfo.Get},
		})

		authRequired := apiGroup.Group("")
		authRequired.Use(authMiddleware.RequireAuth())
		addRoutes(authRequired, []route{
			{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			{Method: http.MethodGet, Path: "/order-count/:business_user_id", Handler: h.Order.CountInProgress},
			{Method: http.MethodGet, Path: "/completed-order-count/:business_user_id", Handler: h.Order.CountCompleted},
		})

		profiles := apiGroup.Group("")
		profiles.Use(authMiddleware.RequireAuth())
		addRoutes(profiles, []route{
			{Method: http.MethodGet, Path: "/profile/:user_id", Handler: h.Profile.Get},
			{Method: http.MethodPatch, Path: "/profile/:user_id", Handler: h.Profile.Update},
			{Method: http.MethodGet, Path: "/profiles/business", Handler: h.Profile.ListBusiness},
			{Method: http.MethodGet, Path: "/profiles/customer", Handler: h.Profile.ListCustomer},
		})

		offers := apiGroup.Group("/offers")
		{
			addRoutes(offers, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Offer.List, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Offer.Get, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodPost, Path: "", Handler: h.Offer.Create, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleBusiness)}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Offer.Update, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Offer.Delete, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
			})
		}
		apiGroup.GET("/offerdetails/:id", authMiddleware.OptionalAuth(), h.Offer.GetDetail)

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Order.Create, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleCustomer)}},
				{Method: http.MethodGet, Path: "", Handler: h.Order.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Order.UpdateStatus},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Order.Delete},
			})
		}

		reviews := apiGroup.Group("/reviews")
		reviews.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reviews, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Review.Create, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleCustomer)}},
				{Method: http.MethodGet, Path: "", Handler: h.Review.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Review.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Review.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Review.Delete},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
