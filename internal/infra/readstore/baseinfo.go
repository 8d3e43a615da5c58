package readstore

import (
	"context"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/usecase/queries"
)

type BaseInfoReadStore struct {
	db db.DBTX
}

func NewBaseInfoReadStore(dbtx db.DBTX) *BaseInfoReadStore {
	return &BaseInfoReadStore{db: dbtx}
}

// GetBaseInfo gathers the public platform statistics in one round trip.
// The average is rounded to one decimal in SQL and zeroed when no reviews
// exist.
func (r *BaseInfoReadStore) GetBaseInfo(ctx context.Context) (*queries.BaseInfoView, error) {
	const query = `
		SELECT (SELECT COUNT(*) FROM reviews),
		       (SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0)::float8 FROM reviews),
		       (SELECT COUNT(*) FROM users WHERE role = 'business'),
		       (SELECT COUNT(*) FROM offers)
	`
	var view queries.BaseInfoView
	err := r.db.QueryRow(ctx, query).
		Scan(&view.ReviewCount, &view.AverageRating, &view.BusinessProfileCount, &view.OfferCount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get base info", err)
	}
	return &view, nil
}
