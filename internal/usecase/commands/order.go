package commands

import (
	"context"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var (
	ErrSourcePackageNotFound = errs.New("offer detail not found")
	ErrOrderNotFoundWrite    = errs.New("order not found")
	ErrOrderNotOwnedByBiz    = errs.New("order does not belong to this business user")
	ErrOrderDeleteForbidden  = errs.New("only admins may delete orders")
)

type CreateOrderResult struct {
	OrderID uuid.UUID
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, offerDetailID uuid.UUID, customerID uuid.UUID) (*CreateOrderResult, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, rawStatus string, actorID uuid.UUID, actorRole string) error
	DeleteOrder(ctx context.Context, orderID uuid.UUID, actorRole string) error
}

type orderCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewOrderCommands(uow shared.UnitOfWork) OrderCommands {
	return &orderCommandsImpl{uow: uow}
}

// CreateOrder materializes the chosen package into a new order. The
// snapshot fields copy over verbatim and never resync with the package.
func (uc *orderCommandsImpl) CreateOrder(ctx context.Context, offerDetailID uuid.UUID, customerID uuid.UUID) (*CreateOrderResult, error) {
	var createdID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().DetailByID(ctx, offerDetailID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrSourcePackageNotFound)
			}
			return err
		}

		var src order.SourcePackage
		if cerr := copier.Copy(&src, snap); cerr != nil {
			return errs.Wrap(cerr, "failed to copy package snapshot")
		}
		src.DetailID = snap.ID

		agg := order.NewOrder(customerID, src)
		if _, cerr := tx.Orders().Create(ctx, tx.DB(), agg); cerr != nil {
			return cerr
		}

		ids, ferr := resolveFeatureIDs(ctx, tx, snap.Features)
		if ferr != nil {
			return ferr
		}
		if lerr := tx.Orders().LinkFeatures(ctx, tx.DB(), agg.ID(), ids); lerr != nil {
			return lerr
		}

		createdID = agg.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateOrderResult{OrderID: createdID}, nil
}

// UpdateOrderStatus is restricted to the order's own business party and
// to forward transitions along the status chain.
func (uc *orderCommandsImpl) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, rawStatus string, actorID uuid.UUID, actorRole string) error {
	next, err := order.NewStatus(rawStatus)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, rerr := tx.Reads().OrderByID(ctx, orderID)
		if rerr != nil {
			if infra.IsKind(rerr, infra.KindNotFound) {
				return errs.Mark(rerr, ErrOrderNotFoundWrite)
			}
			return rerr
		}
		if actorRole != user.RoleBusiness.String() || snap.BusinessUserID != actorID {
			return ErrOrderNotOwnedByBiz
		}

		current := order.Status(snap.Status)
		if !current.CanTransitionTo(next) {
			return order.ErrInvalidTransition
		}

		return tx.Orders().UpdateStatus(ctx, tx.DB(), orderID, next)
	})
}

func (uc *orderCommandsImpl) DeleteOrder(ctx context.Context, orderID uuid.UUID, actorRole string) error {
	if actorRole != user.RoleAdmin.String() {
		return ErrOrderDeleteForbidden
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Orders().Delete(ctx, tx.DB(), orderID); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrOrderNotFoundWrite)
			}
			return derr
		}
		return nil
	})
}
