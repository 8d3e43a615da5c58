package queries

import (
	"context"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOfferNotFound   = errs.New("offer not found")
	ErrDetailNotFound  = errs.New("offer detail not found")
	ErrInvalidOrdering = errs.New("invalid ordering field")
)

// OfferOrdering is the validated ordering expression of an offer listing.
// A leading '-' flips the direction.
type OfferOrdering struct {
	Field      string // "updated_at" or "min_price"
	Descending bool
}

func NewOfferOrdering(raw string) (OfferOrdering, error) {
	if raw == "" {
		return OfferOrdering{Field: "updated_at", Descending: true}, nil
	}
	ordering := OfferOrdering{Field: raw}
	if raw[0] == '-' {
		ordering.Field = raw[1:]
		ordering.Descending = true
	}
	switch ordering.Field {
	case "updated_at", "min_price":
		return ordering, nil
	default:
		return OfferOrdering{}, ErrInvalidOrdering
	}
}

type OfferFilters struct {
	CreatorID       *uuid.UUID
	MinPrice        *decimal.Decimal
	MaxDeliveryTime *int
	Search          *string
}

type OfferReadStore interface {
	List(ctx context.Context, filters OfferFilters, ordering OfferOrdering, limit, offset int) ([]*OfferListItem, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*DetailView, error)
}

type OfferQueries interface {
	List(ctx context.Context, filters OfferFilters, ordering OfferOrdering, page Page) ([]*OfferListItem, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	GetDetailByID(ctx context.Context, id uuid.UUID) (*DetailView, error)
}

type offerQueriesImpl struct {
	store OfferReadStore
}

func NewOfferQueries(store OfferReadStore) OfferQueries {
	return &offerQueriesImpl{store: store}
}

func (q *offerQueriesImpl) List(ctx context.Context, filters OfferFilters, ordering OfferOrdering, page Page) ([]*OfferListItem, int64, error) {
	items, total, err := q.store.List(ctx, filters, ordering, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, errs.Wrap(err, "failed to list offers")
	}
	return items, total, nil
}

func (q *offerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOfferNotFound)
		}
		return nil, errs.Wrap(err, "failed to get offer")
	}
	return view, nil
}

func (q *offerQueriesImpl) GetDetailByID(ctx context.Context, id uuid.UUID) (*DetailView, error) {
	view, err := q.store.FindDetailByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDetailNotFound)
		}
		return nil, errs.Wrap(err, "failed to get offer detail")
	}
	return view, nil
}
