package queries

import (
	"context"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound        = errs.New("order not found")
	ErrOrderAccess          = errs.New("order does not belong to the caller")
	ErrBusinessUserNotFound = errs.New("business user not found")
)

type OrderReadStore interface {
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*OrderView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	CountByBusinessAndStatus(ctx context.Context, businessUserID uuid.UUID, status string) (int64, error)
}

type OrderQueries interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*OrderView, error)
	GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*OrderView, error)
	CountInProgress(ctx context.Context, businessUserID uuid.UUID) (int64, error)
	CountCompleted(ctx context.Context, businessUserID uuid.UUID) (int64, error)
}

type orderQueriesImpl struct {
	orders OrderReadStore
	users  UserReadStore
}

func NewOrderQueries(orders OrderReadStore, users UserReadStore) OrderQueries {
	return &orderQueriesImpl{orders: orders, users: users}
}

func (q *orderQueriesImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]*OrderView, error) {
	views, err := q.orders.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list orders")
	}
	return views, nil
}

// GetByID is visible to either order party and to admins.
func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*OrderView, error) {
	view, err := q.orders.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, errs.Wrap(err, "failed to get order")
	}
	if actorRole != user.RoleAdmin.String() && view.CustomerUserID != actorID && view.BusinessUserID != actorID {
		return nil, ErrOrderAccess
	}
	return view, nil
}

func (q *orderQueriesImpl) CountInProgress(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return q.countForBusiness(ctx, businessUserID, order.StatusInProgress)
}

func (q *orderQueriesImpl) CountCompleted(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return q.countForBusiness(ctx, businessUserID, order.StatusCompleted)
}

// countForBusiness rejects ids that are not business accounts so the
// endpoint distinguishes "no such business user" from "zero orders".
func (q *orderQueriesImpl) countForBusiness(ctx context.Context, businessUserID uuid.UUID, status order.Status) (int64, error) {
	u, err := q.users.FindAuthorizedByID(ctx, businessUserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, errs.Mark(err, ErrBusinessUserNotFound)
		}
		return 0, errs.Wrap(err, "failed to look up business user")
	}
	if u.Role != user.RoleBusiness.String() {
		return 0, ErrBusinessUserNotFound
	}

	count, err := q.orders.CountByBusinessAndStatus(ctx, businessUserID, status.String())
	if err != nil {
		return 0, errs.Wrap(err, "failed to count orders")
	}
	return count, nil
}
