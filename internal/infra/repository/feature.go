package repository

import (
	"context"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type FeatureRepository struct{}

func NewFeatureRepository() shared.FeatureRepository {
	return &FeatureRepository{}
}

// GetOrCreate upserts by name. The no-op DO UPDATE makes RETURNING yield
// the existing row's id on conflict, so concurrent callers converge on
// one row per name.
func (r *FeatureRepository) GetOrCreate(ctx context.Context, tx db.DBTX, name string) (uuid.UUID, error) {
	const query = `
		INSERT INTO features (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	var id pgtype.UUID
	if err := tx.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to upsert feature", err)
	}
	return uuid.UUID(id.Bytes), nil
}
