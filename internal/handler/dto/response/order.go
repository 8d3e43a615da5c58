package response

import "github.com/google/uuid"

type CreateOrderResponse struct {
	ID uuid.UUID `json:"id"`
}

type OrderCountResponse struct {
	OrderCount int64 `json:"order_count"`
}

type CompletedOrderCountResponse struct {
	CompletedOrderCount int64 `json:"completed_order_count"`
}
