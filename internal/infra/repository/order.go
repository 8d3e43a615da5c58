package repository

import (
	"context"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() shared.OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	const query = `
		INSERT INTO orders (id, customer_user_id, business_user_id, offer_detail_id,
		                    title, revisions, delivery_time_in_days, price, offer_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.UUIDToPgtype(o.CustomerUserID()),
		pgconv.UUIDToPgtype(o.BusinessUserID()),
		pgconv.UUIDToPgtype(o.OfferDetailID()),
		o.Title(),
		o.Revisions(),
		o.DeliveryTimeInDays(),
		pgconv.NumericFromDecimal(o.Price()),
		o.OfferType(),
		o.Status().String(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert order", err)
	}
	return o.ID(), nil
}

func (r *OrderRepository) LinkFeatures(ctx context.Context, tx db.DBTX, orderID uuid.UUID, featureIDs []uuid.UUID) error {
	const query = `
		INSERT INTO order_features (order_id, feature_id, position)
		VALUES ($1, $2, $3)
	`
	for i, fid := range featureIDs {
		if _, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(orderID), pgconv.UUIDToPgtype(fid), i); err != nil {
			return infra.WrapRepoErr("failed to link order feature", err)
		}
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, orderID uuid.UUID, status order.Status) error {
	const query = `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(orderID), status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, tx db.DBTX, orderID uuid.UUID) error {
	const query = `DELETE FROM orders WHERE id = $1`
	tag, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(orderID))
	if err != nil {
		return infra.WrapRepoErr("failed to delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
