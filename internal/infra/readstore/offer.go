package readstore

import (
	"context"
	"fmt"
	"strings"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// detailURLFormat mirrors the public route for a single package.
const detailURLFormat = "/api/offerdetails/%s/"

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(dbtx db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: dbtx}
}

// List runs one grouped query for the page and one count over the same
// filter set. Aggregates come from the packages; offers without packages
// surface nil aggregates.
func (r *OfferReadStore) List(ctx context.Context, filters queries.OfferFilters, ordering queries.OfferOrdering, limit, offset int) ([]*queries.OfferListItem, int64, error) {
	where := make([]string, 0, 2)
	having := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if filters.CreatorID != nil {
		args = append(args, pgconv.UUIDToPgtype(*filters.CreatorID))
		where = append(where, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if filters.Search != nil {
		args = append(args, "%"+*filters.Search+"%")
		where = append(where, fmt.Sprintf("(o.title ILIKE $%d OR o.description ILIKE $%d)", len(args), len(args)))
	}
	if filters.MinPrice != nil {
		args = append(args, pgconv.NumericFromDecimal(*filters.MinPrice))
		having = append(having, fmt.Sprintf("MIN(d.price) >= $%d", len(args)))
	}
	if filters.MaxDeliveryTime != nil {
		args = append(args, *filters.MaxDeliveryTime)
		having = append(having, fmt.Sprintf("MIN(d.delivery_time_in_days) <= $%d", len(args)))
	}

	var core strings.Builder
	core.WriteString(`
		FROM offers o
		JOIN users u ON u.id = o.user_id
		LEFT JOIN profiles p ON p.user_id = o.user_id
		LEFT JOIN offer_details d ON d.offer_id = o.id`)
	if len(where) > 0 {
		core.WriteString("\nWHERE " + strings.Join(where, " AND "))
	}
	core.WriteString("\nGROUP BY o.id, u.username, p.first_name, p.last_name")
	if len(having) > 0 {
		core.WriteString("\nHAVING " + strings.Join(having, " AND "))
	}

	countQuery := "SELECT COUNT(*) FROM (SELECT o.id" + core.String() + ") sub"
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count offers", err)
	}

	orderCol := "o.updated_at"
	if ordering.Field == "min_price" {
		orderCol = "min_price"
	}
	direction := "ASC"
	if ordering.Descending {
		direction = "DESC"
	}

	listQuery := `
		SELECT o.id, o.user_id, o.title, o.image, o.description, o.created_at, o.updated_at,
		       MIN(d.price) AS min_price,
		       MIN(d.delivery_time_in_days) AS min_delivery_time,
		       COALESCE(
		           array_agg(d.id::text ORDER BY array_position(ARRAY['basic','standard','premium'], d.offer_type))
		           FILTER (WHERE d.id IS NOT NULL),
		           '{}'
		       ) AS detail_ids,
		       u.username,
		       COALESCE(p.first_name, ''),
		       COALESCE(p.last_name, '')` +
		core.String() +
		fmt.Sprintf("\nORDER BY %s %s NULLS LAST, o.id\nLIMIT %d OFFSET %d", orderCol, direction, limit, offset)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list offers", err)
	}
	defer rows.Close()

	items := make([]*queries.OfferListItem, 0, limit)
	for rows.Next() {
		var (
			id, userID           pgtype.UUID
			title, description   string
			image                pgtype.Text
			createdAt, updatedAt pgtype.Timestamptz
			minPrice             pgtype.Numeric
			minDelivery          pgtype.Int4
			detailIDs            []string
			username             string
			firstName, lastName  string
		)
		err := rows.Scan(&id, &userID, &title, &image, &description, &createdAt, &updatedAt,
			&minPrice, &minDelivery, &detailIDs, &username, &firstName, &lastName)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan offer row", err)
		}

		refs, err := detailRefs(detailIDs)
		if err != nil {
			return nil, 0, err
		}

		items = append(items, &queries.OfferListItem{
			ID:              uuid.UUID(id.Bytes),
			UserID:          uuid.UUID(userID.Bytes),
			Title:           title,
			Image:           pgconv.StringPtrFromPgtype(image),
			Description:     description,
			CreatedAt:       pgconv.TimeFromPgtype(createdAt),
			UpdatedAt:       pgconv.TimeFromPgtype(updatedAt),
			Details:         refs,
			MinPrice:        pgconv.DecimalPtrFromNumeric(minPrice),
			MinDeliveryTime: intPtrFromInt4(minDelivery),
			UserDetails: queries.CreatorSummary{
				FirstName: firstName,
				LastName:  lastName,
				Username:  username,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate offer rows", err)
	}

	return items, total, nil
}

func (r *OfferReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OfferView, error) {
	const query = `
		SELECT o.id, o.user_id, o.title, o.image, o.description, o.created_at, o.updated_at,
		       MIN(d.price) AS min_price,
		       MIN(d.delivery_time_in_days) AS min_delivery_time,
		       COALESCE(
		           array_agg(d.id::text ORDER BY array_position(ARRAY['basic','standard','premium'], d.offer_type))
		           FILTER (WHERE d.id IS NOT NULL),
		           '{}'
		       ) AS detail_ids
		FROM offers o
		LEFT JOIN offer_details d ON d.offer_id = o.id
		WHERE o.id = $1
		GROUP BY o.id
	`
	var (
		offerID, userID      pgtype.UUID
		title, description   string
		image                pgtype.Text
		createdAt, updatedAt pgtype.Timestamptz
		minPrice             pgtype.Numeric
		minDelivery          pgtype.Int4
		detailIDs            []string
	)
	err := r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&offerID, &userID, &title, &image, &description, &createdAt, &updatedAt,
			&minPrice, &minDelivery, &detailIDs)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get offer view", err)
	}

	refs, err := detailRefs(detailIDs)
	if err != nil {
		return nil, err
	}

	return &queries.OfferView{
		ID:              uuid.UUID(offerID.Bytes),
		UserID:          uuid.UUID(userID.Bytes),
		Title:           title,
		Image:           pgconv.StringPtrFromPgtype(image),
		Description:     description,
		CreatedAt:       pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:       pgconv.TimeFromPgtype(updatedAt),
		Details:         refs,
		MinPrice:        pgconv.DecimalPtrFromNumeric(minPrice),
		MinDeliveryTime: intPtrFromInt4(minDelivery),
	}, nil
}

func (r *OfferReadStore) FindDetailByID(ctx context.Context, id uuid.UUID) (*queries.DetailView, error) {
	const query = `
		SELECT id, title, revisions, delivery_time_in_days, price, offer_type
		FROM offer_details
		WHERE id = $1
	`
	var (
		detailID         pgtype.UUID
		title, offerType string
		revisions, days  int
		price            pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&detailID, &title, &revisions, &days, &price, &offerType)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer detail not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get offer detail view", err)
	}

	features, err := queryDetailFeatureNames(ctx, r.db, uuid.UUID(detailID.Bytes))
	if err != nil {
		return nil, err
	}

	return &queries.DetailView{
		ID:                 uuid.UUID(detailID.Bytes),
		Title:              title,
		Revisions:          revisions,
		DeliveryTimeInDays: days,
		Price:              pgconv.DecimalFromNumeric(price),
		Features:           features,
		OfferType:          offerType,
	}, nil
}

func detailRefs(ids []string) ([]queries.DetailRef, error) {
	refs := make([]queries.DetailRef, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid detail id in aggregate", err)
		}
		refs = append(refs, queries.DetailRef{
			ID:  id,
			URL: fmt.Sprintf(detailURLFormat, id),
		})
	}
	return refs, nil
}

func intPtrFromInt4(pi pgtype.Int4) *int {
	if !pi.Valid {
		return nil
	}
	v := int(pi.Int32)
	return &v
}
