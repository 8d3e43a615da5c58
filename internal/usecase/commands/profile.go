package commands

import (
	"context"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProfileNotOwned      = errs.New("profile not owned by user")
	ErrProfileNotFoundWrite = errs.New("profile not found")
)

type ProfileCommands interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, fields shared.ProfileFieldsPatch, actorID uuid.UUID) error
}

type profileCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewProfileCommands(uow shared.UnitOfWork) ProfileCommands {
	return &profileCommandsImpl{uow: uow}
}

func (uc *profileCommandsImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, fields shared.ProfileFieldsPatch, actorID uuid.UUID) error {
	if userID != actorID {
		return ErrProfileNotOwned
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Profiles().UpdateFields(ctx, tx.DB(), userID, fields); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProfileNotFoundWrite)
			}
			return err
		}
		return nil
	})
}
