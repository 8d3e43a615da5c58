package repository

import (
	"context"

	"marketplace-api/internal/domain/review"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReviewRepository struct{}

func NewReviewRepository() shared.ReviewRepository {
	return &ReviewRepository{}
}

// Create relies on the (business_user_id, reviewer_id) unique constraint
// as the final arbiter against duplicate reviews; a conflict surfaces as
// KindDuplicateKey.
func (r *ReviewRepository) Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error) {
	const query = `
		INSERT INTO reviews (id, business_user_id, reviewer_id, rating, description)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(rev.ID()),
		pgconv.UUIDToPgtype(rev.BusinessUserID()),
		pgconv.UUIDToPgtype(rev.ReviewerID()),
		rev.Rating().Value(),
		rev.Description().String(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert review", err)
	}
	return rev.ID(), nil
}

func (r *ReviewRepository) Update(ctx context.Context, tx db.DBTX, reviewID uuid.UUID, rating int, description string) error {
	const query = `
		UPDATE reviews
		SET rating = $2, description = $3, updated_at = now()
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(reviewID), rating, description)
	if err != nil {
		return infra.WrapRepoErr("failed to update review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) error {
	const query = `DELETE FROM reviews WHERE id = $1`
	tag, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(reviewID))
	if err != nil {
		return infra.WrapRepoErr("failed to delete review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}
