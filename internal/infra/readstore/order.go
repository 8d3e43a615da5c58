package readstore

import (
	"context"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

const orderViewQuery = `
	SELECT o.id, o.customer_user_id, o.business_user_id,
	       o.title, o.revisions, o.delivery_time_in_days, o.price, o.offer_type,
	       o.status, o.created_at, o.updated_at,
	       COALESCE(
	           array_agg(f.name ORDER BY ofs.position) FILTER (WHERE f.id IS NOT NULL),
	           '{}'
	       ) AS features
	FROM orders o
	LEFT JOIN order_features ofs ON ofs.order_id = o.id
	LEFT JOIN features f ON f.id = ofs.feature_id
`

func (r *OrderReadStore) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*queries.OrderView, error) {
	query := orderViewQuery + `
	WHERE o.customer_user_id = $1 OR o.business_user_id = $1
	GROUP BY o.id
	ORDER BY o.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	views := make([]*queries.OrderView, 0, 8)
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}
	return views, nil
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	query := orderViewQuery + `
	WHERE o.id = $1
	GROUP BY o.id
	`
	rows, err := r.db.Query(ctx, query, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get order view", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, infra.WrapRepoErr("failed to get order view", err)
		}
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	view, err := scanOrderView(rows)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (r *OrderReadStore) CountByBusinessAndStatus(ctx context.Context, businessUserID uuid.UUID, status string) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE business_user_id = $1 AND status = $2`
	var count int64
	if err := r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(businessUserID), status).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count orders", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderView(row rowScanner) (*queries.OrderView, error) {
	var (
		id, customerID, businessID pgtype.UUID
		title, offerType, status   string
		revisions, days            int
		price                      pgtype.Numeric
		createdAt, updatedAt       pgtype.Timestamptz
		features                   []string
	)
	err := row.Scan(&id, &customerID, &businessID,
		&title, &revisions, &days, &price, &offerType,
		&status, &createdAt, &updatedAt, &features)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan order row", err)
	}
	return &queries.OrderView{
		ID:                 uuid.UUID(id.Bytes),
		CustomerUserID:     uuid.UUID(customerID.Bytes),
		BusinessUserID:     uuid.UUID(businessID.Bytes),
		Title:              title,
		Revisions:          revisions,
		DeliveryTimeInDays: days,
		Price:              pgconv.DecimalFromNumeric(price),
		Features:           features,
		OfferType:          offerType,
		Status:             status,
		CreatedAt:          pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:          pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
