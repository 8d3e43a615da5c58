package readstore

import (
	"context"

	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandReads serves the write side's validation lookups. It runs over
// whatever DBTX the caller is on, so reads inside a transaction see that
// transaction's writes.
type CommandReads struct {
	dbtx db.DBTX
}

func NewCommandReads(dbtx db.DBTX) shared.CommandReads {
	return &CommandReads{dbtx: dbtx}
}

func (r *CommandReads) OfferByID(ctx context.Context, id uuid.UUID) (*shared.OfferSnapshot, error) {
	const query = `SELECT id, user_id FROM offers WHERE id = $1`
	var offerID, ownerID pgtype.UUID
	if err := r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(&offerID, &ownerID); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get offer", err)
	}
	return &shared.OfferSnapshot{
		ID:      uuid.UUID(offerID.Bytes),
		OwnerID: uuid.UUID(ownerID.Bytes),
	}, nil
}

func (r *CommandReads) DetailByID(ctx context.Context, id uuid.UUID) (*shared.DetailSnapshot, error) {
	const query = `
		SELECT d.id, d.offer_id, o.user_id, d.title, d.revisions, d.delivery_time_in_days, d.price, d.offer_type
		FROM offer_details d
		JOIN offers o ON o.id = d.offer_id
		WHERE d.id = $1
	`
	var (
		detailID, offerID, ownerID pgtype.UUID
		title, offerType           string
		revisions, days            int
		price                      pgtype.Numeric
	)
	err := r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&detailID, &offerID, &ownerID, &title, &revisions, &days, &price, &offerType)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer detail not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get offer detail", err)
	}

	features, err := queryDetailFeatureNames(ctx, r.dbtx, uuid.UUID(detailID.Bytes))
	if err != nil {
		return nil, err
	}

	return &shared.DetailSnapshot{
		ID:                 uuid.UUID(detailID.Bytes),
		OfferID:            uuid.UUID(offerID.Bytes),
		OfferOwnerID:       uuid.UUID(ownerID.Bytes),
		Title:              title,
		Revisions:          revisions,
		DeliveryTimeInDays: days,
		Price:              pgconv.DecimalFromNumeric(price),
		OfferType:          offerType,
		Features:           features,
	}, nil
}

func (r *CommandReads) OrderByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	const query = `SELECT id, customer_user_id, business_user_id, status FROM orders WHERE id = $1`
	var (
		orderID, customerID, businessID pgtype.UUID
		status                          string
	)
	err := r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&orderID, &customerID, &businessID, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order", err)
	}
	return &shared.OrderSnapshot{
		ID:             uuid.UUID(orderID.Bytes),
		CustomerUserID: uuid.UUID(customerID.Bytes),
		BusinessUserID: uuid.UUID(businessID.Bytes),
		Status:         status,
	}, nil
}

func (r *CommandReads) ReviewByID(ctx context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	const query = `SELECT id, business_user_id, reviewer_id, rating, description FROM reviews WHERE id = $1`
	var (
		reviewID, businessID, reviewerID pgtype.UUID
		rating                           int
		description                      string
	)
	err := r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&reviewID, &businessID, &reviewerID, &rating, &description)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get review", err)
	}
	return &shared.ReviewSnapshot{
		ID:             uuid.UUID(reviewID.Bytes),
		BusinessUserID: uuid.UUID(businessID.Bytes),
		ReviewerID:     uuid.UUID(reviewerID.Bytes),
		Rating:         rating,
		Description:    description,
	}, nil
}

func (r *CommandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	const query = `SELECT id, username, role, is_active FROM users WHERE id = $1`
	var (
		userID   pgtype.UUID
		username string
		role     string
		isActive bool
	)
	err := r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&userID, &username, &role, &isActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user", err)
	}
	return &shared.UserSnapshot{
		ID:       uuid.UUID(userID.Bytes),
		Username: username,
		Role:     user.Role(role),
		IsActive: isActive,
	}, nil
}

func (r *CommandReads) HasReviewForBusiness(ctx context.Context, reviewerID, businessUserID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM reviews WHERE reviewer_id = $1 AND business_user_id = $2)`
	var exists bool
	err := r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(reviewerID), pgconv.UUIDToPgtype(businessUserID)).
		Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check review existence", err)
	}
	return exists, nil
}

func queryDetailFeatureNames(ctx context.Context, dbtx db.DBTX, detailID uuid.UUID) ([]string, error) {
	const query = `
		SELECT f.name
		FROM offer_detail_features df
		JOIN features f ON f.id = df.feature_id
		WHERE df.offer_detail_id = $1
		ORDER BY df.position
	`
	rows, err := dbtx.Query(ctx, query, pgconv.UUIDToPgtype(detailID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load detail features", err)
	}
	defer rows.Close()

	names := make([]string, 0, 4)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan detail feature", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate detail features", err)
	}
	return names, nil
}
