package api

import (
	"net/http"

	reqdto "marketplace-api/internal/handler/dto/request"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/handler/httperr"
	"marketplace-api/internal/handler/middleware"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	cmds commands.ProfileCommands
	q    queries.ProfileQueries
}

func NewProfileHandler(cmds commands.ProfileCommands, q queries.ProfileQueries) *ProfileHandler {
	return &ProfileHandler{cmds: cmds, q: q}
}

// @Summary Get profile
// @Description Full profile of one user
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Success 200 {object} queries.ProfileView
// @Failure 404 {object} httperr.Response
// @Router /profile/{user_id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update profile
// @Description Owner-only partial profile update
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Param request body reqdto.UpdateProfileRequest true "Profile patch"
// @Success 200 {object} queries.ProfileView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /profile/{user_id} [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req reqdto.UpdateProfileRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.UpdateProfile(c.Request.Context(), userID, req.ToPatch(), actorID); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.q.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List business profiles
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BusinessProfileResponse
// @Router /profiles/business [get]
func (h *ProfileHandler) ListBusiness(c *gin.Context) {
	views, err := h.q.ListBusiness(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProfileViewsBusiness(views))
}

// @Summary List customer profiles
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CustomerProfileResponse
// @Router /profiles/customer [get]
func (h *ProfileHandler) ListCustomer(c *gin.Context) {
	views, err := h.q.ListCustomer(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProfileViewsCustomer(views))
}
