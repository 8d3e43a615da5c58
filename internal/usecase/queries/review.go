package queries

import (
	"context"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReviewNotFound = errs.New("review not found")

// ReviewOrdering validates the review list ordering expression.
type ReviewOrdering struct {
	Field      string // "updated_at" or "rating"
	Descending bool
}

func NewReviewOrdering(raw string) (ReviewOrdering, error) {
	if raw == "" {
		return ReviewOrdering{Field: "updated_at", Descending: true}, nil
	}
	ordering := ReviewOrdering{Field: raw}
	if raw[0] == '-' {
		ordering.Field = raw[1:]
		ordering.Descending = true
	}
	switch ordering.Field {
	case "updated_at", "rating":
		return ordering, nil
	default:
		return ReviewOrdering{}, ErrInvalidOrdering
	}
}

type ReviewFilters struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
}

type ReviewReadStore interface {
	List(ctx context.Context, filters ReviewFilters, ordering ReviewOrdering) ([]*ReviewView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
}

type ReviewQueries interface {
	List(ctx context.Context, filters ReviewFilters, ordering ReviewOrdering) ([]*ReviewView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
}

type reviewQueriesImpl struct {
	store ReviewReadStore
}

func NewReviewQueries(store ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{store: store}
}

func (q *reviewQueriesImpl) List(ctx context.Context, filters ReviewFilters, ordering ReviewOrdering) ([]*ReviewView, error) {
	views, err := q.store.List(ctx, filters, ordering)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reviews")
	}
	return views, nil
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReviewNotFound)
		}
		return nil, errs.Wrap(err, "failed to get review")
	}
	return view, nil
}
