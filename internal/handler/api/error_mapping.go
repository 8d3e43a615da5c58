package api

import (
	"errors"
	"net/http"

	"marketplace-api/internal/domain/auth"
	"marketplace-api/internal/domain/offer"
	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/domain/review"
	"marketplace-api/internal/domain/user"
	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/handler/httperr"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var validationSentinels = []error{
	offer.ErrEmptyTitle,
	offer.ErrTitleTooLong,
	offer.ErrUnknownTier,
	offer.ErrDetailCount,
	offer.ErrDuplicateTier,
	offer.ErrInvalidPrice,
	offer.ErrInvalidDeliveryTime,
	offer.ErrInvalidRevisions,
	offer.ErrEmptyFeature,
	order.ErrInvalidStatus,
	order.ErrInvalidTransition,
	review.ErrInvalidRating,
	review.ErrEmptyDescription,
	review.ErrDescriptionTooLong,
	user.ErrInvalidEmail,
	user.ErrInvalidUsername,
	user.ErrInvalidRole,
	user.ErrPasswordTooWeak,
	commands.ErrPasswordMismatch,
	commands.ErrUserAlreadyExists,
	commands.ErrDuplicateReview,
	commands.ErrReviewTargetInvalid,
	queries.ErrInvalidOrdering,
}

var forbiddenSentinels = []error{
	commands.ErrOfferNotOwned,
	commands.ErrOrderNotOwnedByBiz,
	commands.ErrOrderDeleteForbidden,
	commands.ErrReviewNotOwned,
	commands.ErrProfileNotOwned,
	commands.ErrUserInactive,
	queries.ErrOrderAccess,
}

var notFoundSentinels = []error{
	commands.ErrOfferNotFoundWrite,
	commands.ErrSourcePackageNotFound,
	commands.ErrOrderNotFoundWrite,
	commands.ErrReviewNotFoundWrite,
	commands.ErrProfileNotFoundWrite,
	queries.ErrOfferNotFound,
	queries.ErrDetailNotFound,
	queries.ErrOrderNotFound,
	queries.ErrReviewNotFound,
	queries.ErrProfileNotFound,
	queries.ErrBusinessUserNotFound,
}

// respondError translates usecase and domain sentinels into the HTTP
// contract: validation 400, bad credentials 401, ownership 403, missing
// resources 404, protected deletes 409.
func respondError(c *gin.Context, err error) {
	var coercion reqdto.CoercionError
	if errors.As(err, &coercion) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, coercion.Error(), nil)
		return
	}
	var unknownTier commands.UnknownTierError
	if errors.As(err, &unknownTier) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, unknownTier.Error(), nil)
		return
	}

	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, sentinel.Error(), nil)
			return
		}
	}
	if errors.Is(err, commands.ErrInvalidCredentials) || errors.Is(err, auth.ErrInvalidCredentials) {
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid credentials", nil)
		return
	}
	for _, sentinel := range forbiddenSentinels {
		if errors.Is(err, sentinel) {
			httperr.AbortWithError(c, http.StatusForbidden, err, sentinel.Error(), nil)
			return
		}
	}
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			httperr.AbortWithError(c, http.StatusNotFound, err, sentinel.Error(), nil)
			return
		}
	}
	if errors.Is(err, commands.ErrOfferInUse) {
		httperr.AbortWithError(c, http.StatusConflict, err, commands.ErrOfferInUse.Error(), nil)
		return
	}

	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
