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

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Create order
// @Description Buy one pricing package; its fields are frozen into the order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Create order request"
// @Success 201 {object} queries.OrderView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateOrder(c.Request.Context(), req.OfferDetailID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	role, _ := middleware.GetUserRole(c)
	view, err := h.q.GetByID(c.Request.Context(), result.OrderID, userID, role.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary List orders
// @Description Orders where the caller is the customer or the business party
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.OrderView
// @Failure 401 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	views, err := h.q.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get order
// @Description Single order, visible to either party
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
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
	role, _ := middleware.GetUserRole(c)

	view, err := h.q.GetByID(c.Request.Context(), id, userID, role.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update order status
// @Description Advance the order along in_progress -> delivered -> completed
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderRequest true "Status update"
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
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
	role, _ := middleware.GetUserRole(c)

	var req reqdto.UpdateOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.UpdateOrderStatus(c.Request.Context(), id, req.Status, userID, role.String()); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, userID, role.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Delete order
// @Description Admin-only removal of an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	if err := h.cmds.DeleteOrder(c.Request.Context(), id, role.String()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary In-progress order count
// @Description Number of in_progress orders of one business user
// @Tags orders
// @Produce json
// @Param business_user_id path string true "Business user ID"
// @Success 200 {object} resdto.OrderCountResponse
// @Failure 404 {object} httperr.Response
// @Router /order-count/{business_user_id} [get]
func (h *OrderHandler) CountInProgress(c *gin.Context) {
	businessUserID, err := uuid.Parse(c.Param("business_user_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	count, err := h.q.CountInProgress(c.Request.Context(), businessUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.OrderCountResponse{OrderCount: count})
}

// @Summary Completed order count
// @Description Number of completed orders of one business user
// @Tags orders
// @Produce json
// @Param business_user_id path string true "Business user ID"
// @Success 200 {object} resdto.CompletedOrderCountResponse
// @Failure 404 {object} httperr.Response
// @Router /completed-order-count/{business_user_id} [get]
func (h *OrderHandler) CountCompleted(c *gin.Context) {
	businessUserID, err := uuid.Parse(c.Param("business_user_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	count, err := h.q.CountCompleted(c.Request.Context(), businessUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CompletedOrderCountResponse{CompletedOrderCount: count})
}
