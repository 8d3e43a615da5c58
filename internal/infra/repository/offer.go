package repository

import (
	"context"

	"marketplace-api/internal/domain/offer"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OfferRepository struct{}

func NewOfferRepository() shared.OfferRepository {
	return &OfferRepository{}
}

func (r *OfferRepository) Create(ctx context.Context, tx db.DBTX, o *offer.Offer) (uuid.UUID, error) {
	const insertOffer = `
		INSERT INTO offers (id, user_id, title, image, description)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.Exec(ctx, insertOffer,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.UUIDToPgtype(o.OwnerID()),
		o.Title().String(),
		pgconv.StringPtrToPgtype(o.Image()),
		o.Description(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert offer", err)
	}

	const insertDetail = `
		INSERT INTO offer_details (id, offer_id, title, revisions, delivery_time_in_days, price, offer_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, d := range o.Details() {
		_, err := tx.Exec(ctx, insertDetail,
			pgconv.UUIDToPgtype(d.ID()),
			pgconv.UUIDToPgtype(o.ID()),
			d.Title().String(),
			d.Revisions().Count(),
			d.DeliveryTime().Days(),
			pgconv.NumericFromDecimal(d.Price().Decimal()),
			d.Tier().String(),
		)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to insert offer detail", err)
		}
	}

	return o.ID(), nil
}

func (r *OfferRepository) UpdateFields(ctx context.Context, tx db.DBTX, offerID uuid.UUID, fields shared.OfferFieldsPatch) error {
	const query = `
		UPDATE offers
		SET title       = COALESCE($2, title),
		    description = COALESCE($3, description),
		    image       = COALESCE($4, image),
		    updated_at  = now()
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(offerID),
		pgconv.StringPtrToPgtype(fields.Title),
		pgconv.StringPtrToPgtype(fields.Description),
		pgconv.StringPtrToPgtype(fields.Image),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

// LockDetail row-locks one package so concurrent tier merges serialize
// on the same row instead of overwriting each other.
func (r *OfferRepository) LockDetail(ctx context.Context, tx db.DBTX, offerID uuid.UUID, tier offer.Tier) (*shared.DetailSnapshot, error) {
	const query = `
		SELECT d.id, d.offer_id, o.user_id, d.title, d.revisions, d.delivery_time_in_days, d.price, d.offer_type
		FROM offer_details d
		JOIN offers o ON o.id = d.offer_id
		WHERE d.offer_id = $1 AND d.offer_type = $2
		FOR UPDATE OF d
	`
	var (
		id, offID, ownerID pgtype.UUID
		title, offerType   string
		revisions, days    int
		price              pgtype.Numeric
	)
	err := tx.QueryRow(ctx, query, pgconv.UUIDToPgtype(offerID), tier.String()).
		Scan(&id, &offID, &ownerID, &title, &revisions, &days, &price, &offerType)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer detail not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock offer detail", err)
	}

	features, err := detailFeatures(ctx, tx, uuid.UUID(id.Bytes))
	if err != nil {
		return nil, err
	}

	return &shared.DetailSnapshot{
		ID:                 uuid.UUID(id.Bytes),
		OfferID:            uuid.UUID(offID.Bytes),
		OfferOwnerID:       uuid.UUID(ownerID.Bytes),
		Title:              title,
		Revisions:          revisions,
		DeliveryTimeInDays: days,
		Price:              pgconv.DecimalFromNumeric(price),
		OfferType:          offerType,
		Features:           features,
	}, nil
}

func (r *OfferRepository) UpdateDetail(ctx context.Context, tx db.DBTX, detailID uuid.UUID, patch shared.DetailPatch) error {
	const query = `
		UPDATE offer_details
		SET title                 = COALESCE($2, title),
		    revisions             = COALESCE($3, revisions),
		    delivery_time_in_days = COALESCE($4, delivery_time_in_days),
		    price                 = COALESCE($5, price)
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(detailID),
		pgconv.StringPtrToPgtype(patch.Title),
		pgconv.IntPtrToPgtype(patch.Revisions),
		pgconv.IntPtrToPgtype(patch.DeliveryTimeInDays),
		pgconv.NumericFromDecimalPtr(patch.Price),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update offer detail", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer detail not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OfferRepository) LinkDetailFeatures(ctx context.Context, tx db.DBTX, detailID uuid.UUID, featureIDs []uuid.UUID) error {
	const query = `
		INSERT INTO offer_detail_features (offer_detail_id, feature_id, position)
		VALUES ($1, $2, $3)
	`
	for i, fid := range featureIDs {
		if _, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(detailID), pgconv.UUIDToPgtype(fid), i); err != nil {
			return infra.WrapRepoErr("failed to link detail feature", err)
		}
	}
	return nil
}

func (r *OfferRepository) ReplaceDetailFeatures(ctx context.Context, tx db.DBTX, detailID uuid.UUID, featureIDs []uuid.UUID) error {
	const clear = `DELETE FROM offer_detail_features WHERE offer_detail_id = $1`
	if _, err := tx.Exec(ctx, clear, pgconv.UUIDToPgtype(detailID)); err != nil {
		return infra.WrapRepoErr("failed to clear detail features", err)
	}
	return r.LinkDetailFeatures(ctx, tx, detailID, featureIDs)
}

func (r *OfferRepository) Touch(ctx context.Context, tx db.DBTX, offerID uuid.UUID) error {
	const query = `UPDATE offers SET updated_at = now() WHERE id = $1`
	if _, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(offerID)); err != nil {
		return infra.WrapRepoErr("failed to touch offer", err)
	}
	return nil
}

// Delete cascades to packages; the restrict constraint on orders turns
// into KindForeignKeyViolated when a package is still ordered.
func (r *OfferRepository) Delete(ctx context.Context, tx db.DBTX, offerID uuid.UUID) error {
	const query = `DELETE FROM offers WHERE id = $1`
	tag, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(offerID))
	if err != nil {
		return infra.WrapRepoErr("failed to delete offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

func detailFeatures(ctx context.Context, tx db.DBTX, detailID uuid.UUID) ([]string, error) {
	const query = `
		SELECT f.name
		FROM offer_detail_features df
		JOIN features f ON f.id = df.feature_id
		WHERE df.offer_detail_id = $1
		ORDER BY df.position
	`
	rows, err := tx.Query(ctx, query, pgconv.UUIDToPgtype(detailID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load detail features", err)
	}
	defer rows.Close()

	features := make([]string, 0, 4)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan detail feature", err)
		}
		features = append(features, name)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate detail features", err)
	}
	return features, nil
}
