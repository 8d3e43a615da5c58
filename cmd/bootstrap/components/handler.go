package components

import (
	"marketplace-api/internal/handler"
	"marketplace-api/internal/handler/api"
	"marketplace-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewOfferHandler,
		api.NewOrderHandler,
		api.NewReviewHandler,
		api.NewProfileHandler,
		api.NewBaseInfoHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	offer *api.OfferHandler,
	order *api.OrderHandler,
	review *api.ReviewHandler,
	profile *api.ProfileHandler,
	baseInfo *api.BaseInfoHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Offer:    offer,
		Order:    order,
		Review:   review,
		Profile:  profile,
		BaseInfo: baseInfo,
	}
}
