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

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

func (r *ReviewReadStore) List(ctx context.Context, filters queries.ReviewFilters, ordering queries.ReviewOrdering) ([]*queries.ReviewView, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filters.BusinessUserID != nil {
		args = append(args, pgconv.UUIDToPgtype(*filters.BusinessUserID))
		where = append(where, fmt.Sprintf("business_user_id = $%d", len(args)))
	}
	if filters.ReviewerID != nil {
		args = append(args, pgconv.UUIDToPgtype(*filters.ReviewerID))
		where = append(where, fmt.Sprintf("reviewer_id = $%d", len(args)))
	}

	query := `
		SELECT id, business_user_id, reviewer_id, rating, description, created_at, updated_at
		FROM reviews
	`
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	direction := "ASC"
	if ordering.Descending {
		direction = "DESC"
	}
	query += fmt.Sprintf("ORDER BY %s %s, id", ordering.Field, direction)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	defer rows.Close()

	views := make([]*queries.ReviewView, 0, 8)
	for rows.Next() {
		view, err := scanReviewView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate review rows", err)
	}
	return views, nil
}

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	const query = `
		SELECT id, business_user_id, reviewer_id, rating, description, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`
	view, err := scanReviewView(r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return view, nil
}

func scanReviewView(row rowScanner) (*queries.ReviewView, error) {
	var (
		id, businessID, reviewerID pgtype.UUID
		rating                     int
		description                string
		createdAt, updatedAt       pgtype.Timestamptz
	)
	err := row.Scan(&id, &businessID, &reviewerID, &rating, &description, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan review row", err)
	}
	return &queries.ReviewView{
		ID:             uuid.UUID(id.Bytes),
		BusinessUserID: uuid.UUID(businessID.Bytes),
		ReviewerID:     uuid.UUID(reviewerID.Bytes),
		Rating:         rating,
		Description:    description,
		CreatedAt:      pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:      pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
