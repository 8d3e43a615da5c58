package api

import (
	"net/http"

	"marketplace-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BaseInfoHandler struct {
	q queries.BaseInfoQueries
}

func NewBaseInfoHandler(q queries.BaseInfoQueries) *BaseInfoHandler {
	return &BaseInfoHandler{q: q}
}

// @Summary Platform statistics
// @Description Public review/offer counts and average rating
// @Tags base-info
// @Produce json
// @Success 200 {object} queries.BaseInfoView
// @Router /base-info [get]
func (h *BaseInfoHandler) Get(c *gin.Context) {
	view, err := h.q.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
