package queries

import (
	"context"

	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errs.New("profile not found")

type ProfileReadStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
	ListByType(ctx context.Context, role string) ([]*ProfileView, error)
}

type ProfileQueries interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
	ListBusiness(ctx context.Context) ([]*ProfileView, error)
	ListCustomer(ctx context.Context) ([]*ProfileView, error)
}

type profileQueriesImpl struct {
	store ProfileReadStore
}

func NewProfileQueries(store ProfileReadStore) ProfileQueries {
	return &profileQueriesImpl{store: store}
}

func (q *profileQueriesImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	view, err := q.store.FindByUserID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrProfileNotFound)
		}
		return nil, errs.Wrap(err, "failed to get profile")
	}
	return view, nil
}

func (q *profileQueriesImpl) ListBusiness(ctx context.Context) ([]*ProfileView, error) {
	views, err := q.store.ListByType(ctx, user.RoleBusiness.String())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list business profiles")
	}
	return views, nil
}

func (q *profileQueriesImpl) ListCustomer(ctx context.Context) ([]*ProfileView, error) {
	views, err := q.store.ListByType(ctx, user.RoleCustomer.String())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list customer profiles")
	}
	return views, nil
}
