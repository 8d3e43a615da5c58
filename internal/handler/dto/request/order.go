package request

import "github.com/google/uuid"

type CreateOrderRequest struct {
	OfferDetailID uuid.UUID `json:"offer_detail_id" binding:"required"`
}

type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}
