package api

import (
	"net/http"
	"strconv"

	reqdto "marketplace-api/internal/handler/dto/request"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/handler/httperr"
	"marketplace-api/internal/handler/middleware"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferHandler struct {
	cmds commands.OfferCommands
	q    queries.OfferQueries
}

func NewOfferHandler(cmds commands.OfferCommands, q queries.OfferQueries) *OfferHandler {
	return &OfferHandler{cmds: cmds, q: q}
}

// @Summary Create offer
// @Description Create an offer with its three pricing packages
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOfferRequest true "Create offer request"
// @Success 201 {object} resdto.CreateOfferResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req reqdto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.cmds.CreateOffer(c.Request.Context(), cmd, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateOfferResponse{ID: result.OfferID})
}

// @Summary List offers
// @Description Paginated offer listing with filters and ordering
// @Tags offers
// @Produce json
// @Param creator_id query string false "Filter by creator"
// @Param min_price query number false "Minimum package price"
// @Param max_delivery_time query int false "Maximum delivery time in days"
// @Param search query string false "Free-text search over title and description"
// @Param ordering query string false "updated_at or min_price, '-' prefix for descending"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} resdto.OfferListResponse
// @Failure 400 {object} httperr.Response
// @Router /offers [get]
func (h *OfferHandler) List(c *gin.Context) {
	filters, ordering, page, err := parseOfferListParams(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	items, total, err := h.q.List(c.Request.Context(), filters, ordering, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewOfferListResponse(items, total))
}

// @Summary Get offer
// @Description Single offer with package refs and derived aggregates
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} queries.OfferView
// @Failure 404 {object} httperr.Response
// @Router /offers/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get offer detail
// @Description Full body of one pricing package
// @Tags offers
// @Produce json
// @Param id path string true "Offer detail ID"
// @Success 200 {object} queries.DetailView
// @Failure 404 {object} httperr.Response
// @Router /offerdetails/{id} [get]
func (h *OfferHandler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetDetailByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update offer
// @Description Partial update of an owned offer; details are matched by tier
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param request body reqdto.UpdateOfferRequest true "Update offer request"
// @Success 200 {object} queries.OfferView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /offers/{id} [patch]
func (h *OfferHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req reqdto.UpdateOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.cmds.UpdateOffer(c.Request.Context(), id, cmd, userID); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Delete offer
// @Description Delete an owned offer unless a package is order-referenced
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /offers/{id} [delete]
func (h *OfferHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.cmds.DeleteOffer(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseOfferListParams(c *gin.Context) (queries.OfferFilters, queries.OfferOrdering, queries.Page, error) {
	var filters queries.OfferFilters

	if raw := c.Query("creator_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filters, queries.OfferOrdering{}, queries.Page{}, reqdto.CoercionError{Field: "creator_id", Value: raw}
		}
		filters.CreatorID = &id
	}
	if raw := c.Query("min_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, queries.OfferOrdering{}, queries.Page{}, reqdto.CoercionError{Field: "min_price", Value: raw}
		}
		filters.MinPrice = &d
	}
	if raw := c.Query("max_delivery_time"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filters, queries.OfferOrdering{}, queries.Page{}, reqdto.CoercionError{Field: "max_delivery_time", Value: raw}
		}
		filters.MaxDeliveryTime = &v
	}
	if raw := c.Query("search"); raw != "" {
		filters.Search = &raw
	}

	ordering, err := queries.NewOfferOrdering(c.Query("ordering"))
	if err != nil {
		return filters, queries.OfferOrdering{}, queries.Page{}, err
	}

	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	page := queries.NormalizePage(pageNum, pageSize)

	return filters, ordering, page, nil
}
